package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"bill-export-server/internal/domain"
)

// Messenger builds WhatsApp deep links and outbound message bodies from
// order metadata.
type Messenger struct {
	formatter          *BillFormatter
	defaultCountryCode string
	logger             domain.Logger
}

// NewMessenger creates a new messenger
func NewMessenger(formatter *BillFormatter, defaultCountryCode string, logger domain.Logger) *Messenger {
	if defaultCountryCode == "" {
		defaultCountryCode = "91"
	}
	return &Messenger{
		formatter:          formatter,
		defaultCountryCode: defaultCountryCode,
		logger:             logger,
	}
}

// NormalizePhone reduces raw input to digits and canonicalizes it to
// country-code + national number form.
func (m *Messenger) NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()

	switch {
	case len(cleaned) == 10:
		return m.defaultCountryCode + cleaned, nil
	case len(cleaned) == 12 && strings.HasPrefix(cleaned, m.defaultCountryCode):
		return cleaned, nil
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "0"):
		// Drop the trunk prefix.
		return m.defaultCountryCode + cleaned[1:], nil
	case len(cleaned) >= 10:
		return cleaned, nil
	default:
		return "", domain.ErrInvalidPhoneNumber
	}
}

// BuildLink returns a WhatsApp deep link carrying a pre-filled message.
// The web variant opens the browser client; the default opens the app.
func (m *Messenger) BuildLink(phone, text string, web bool) (string, error) {
	normalized, err := m.NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	m.logger.Debug("Built WhatsApp link", "phone", normalized, "web", web)

	encoded := url.QueryEscape(text)
	if web {
		return fmt.Sprintf("https://web.whatsapp.com/send?phone=%s&text=%s", normalized, encoded), nil
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", normalized, encoded), nil
}

// BuildOrderMessage renders the order-confirmation message with the full
// formatted bill embedded.
func (m *Messenger) BuildOrderMessage(order domain.OrderSummary) (string, error) {
	bill, err := m.formatter.FormatForMessaging(order.BillContent)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeOrderHeader(&b, order)
	b.WriteString("\n")
	b.WriteString(bill)
	b.WriteString("\n\n")
	writeMessageFooter(&b)
	return b.String(), nil
}

// BuildPDFHandoffMessage renders the variant sent when the bill travels as an
// attached PDF instead of inline text.
func (m *Messenger) BuildPDFHandoffMessage(order domain.OrderSummary) string {
	var b strings.Builder
	writeOrderHeader(&b, order)
	b.WriteString("\n📎 Your bill PDF has been downloaded. Please attach it to this chat.\n\n")
	writeMessageFooter(&b)
	return b.String()
}

func writeOrderHeader(b *strings.Builder, order domain.OrderSummary) {
	fmt.Fprintf(b, "🧾 *%s*\n\n", order.RestaurantName)
	b.WriteString("✅ *Order Confirmed!*\n\n")
	fmt.Fprintf(b, "📍 Table: %s\n", order.TableNumber)
	fmt.Fprintf(b, "🎫 Order(s): %s\n", strings.Join(order.OrderNumbers, ", "))
	fmt.Fprintf(b, "💰 Total Amount: ₹%.2f\n", order.TotalAmount)
	b.WriteString("✅ Payment: Completed\n")
}

func writeMessageFooter(b *strings.Builder) {
	fmt.Fprintf(b, "📅 Generated on %s\n", time.Now().Format("02 Jan 2006, 3:04 PM"))
	b.WriteString("Thank you for dining with us! 🙏")
}
