package service

import (
	"regexp"
	"strings"

	"bill-export-server/internal/domain"
)

// Composer turns a sanitized bill line sequence into the decorated plain-text
// rendering sent over WhatsApp. Classification is a single forward pass with
// one piece of state: the currently active bill section.
type Composer struct{}

// NewComposer creates a new composer
func NewComposer() *Composer {
	return &Composer{}
}

const separatorWidth = 30

var (
	equalsRule = strings.Repeat("=", separatorWidth)
	dashRule   = strings.Repeat("-", separatorWidth)

	// currencySplitRe separates an item description from its amount.
	currencySplitRe = regexp.MustCompile(`₹|\$|Rs\.`)

	// quantityRe matches an explicit quantity marker (×2, x2).
	quantityRe = regexp.MustCompile(`(?i)[×x]\s*\d`)
)

// Compose renders the line sequence and normalizes spacing in the result.
func (c *Composer) Compose(lines []string) string {
	section := domain.SectionNone
	var out []string

	for i, line := range lines {
		var emitted []string
		section, emitted = composeLine(section, i, line)
		out = append(out, emitted...)
	}

	text := strings.Join(out, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// composeLine classifies one line and returns the new active section plus the
// decorated output lines. Rules are evaluated in priority order; the first
// match wins. An empty string in the returned slice is a blank spacer line.
func composeLine(section domain.Section, index int, line string) (domain.Section, []string) {
	lower := strings.ToLower(line)

	// Rule 1: storefront name near the top of the bill.
	if index < 3 && strings.Contains(lower, "restaurant") {
		return section, []string{"🏪 *" + line + "*"}
	}

	// Rule 2: receipt title.
	if strings.Contains(lower, "bill receipt") {
		return section, []string{"", "📋 *BILL RECEIPT*", equalsRule}
	}

	// Rule 3: table / date / time header lines.
	if strings.Contains(lower, "table:") || strings.Contains(lower, "date:") || strings.Contains(lower, "time:") {
		return section, []string{"📍 " + line}
	}

	// Rule 4: start of the order-number region.
	if strings.Contains(lower, "order numbers") || strings.Contains(lower, "combined bill") {
		return domain.SectionOrders, []string{"", "🎫 *" + line + "*"}
	}

	// Rule 5: individual order numbers (#123) inside the orders region.
	if section == domain.SectionOrders && strings.HasPrefix(line, "#") {
		return section, []string{"   " + line}
	}

	// Rule 6: item-table header.
	if strings.Contains(lower, "item") && strings.Contains(lower, "total") {
		return domain.SectionItems, []string{"", "🍽️ *ITEMS & TOTALS*", dashRule}
	}

	// Rule 7: item rows carry a quantity marker (×2, x2). Inside the items
	// section any marked line counts; elsewhere the marker must be an
	// explicit quantity on a line that also carries an amount, so totals
	// and tax lines fall through to their own rules.
	marked := strings.Contains(line, "×") || strings.Contains(lower, "x")
	if marked && (section == domain.SectionItems ||
		(quantityRe.MatchString(line) && currencySplitRe.MatchString(line))) {
		parts := currencySplitRe.Split(line, -1)
		if len(parts) >= 2 {
			name := strings.TrimSpace(parts[0])
			amount := strings.TrimSpace(parts[len(parts)-1])
			return section, []string{"• " + name + " - ₹" + amount}
		}
		return section, []string{"• " + line}
	}

	// Rule 8: totals region.
	if strings.Contains(lower, "subtotal") || strings.Contains(lower, "tax") ||
		strings.Contains(lower, "total amount") || strings.Contains(lower, "final") ||
		strings.Contains(lower, "grand total") {
		if strings.Contains(lower, "total amount") || strings.Contains(lower, "final") || strings.Contains(lower, "grand total") {
			return domain.SectionTotals, []string{dashRule, "💰 *" + line + "*", equalsRule}
		}
		return domain.SectionTotals, []string{"   " + line}
	}

	// Rule 9: payment details.
	if strings.Contains(lower, "payment details") || strings.Contains(lower, "method:") {
		if strings.Contains(lower, "payment details") {
			return domain.SectionPayment, []string{"", "💳 *" + line + "*", dashRule}
		}
		return domain.SectionPayment, []string{"   " + line}
	}

	// Rule 10: thank-you footer.
	if strings.Contains(lower, "thank you") {
		return section, []string{"", "🙏 *" + line + "*", "Please visit us again! 😊"}
	}

	// Rule 11: generation timestamp. The date:/time: alternatives here are
	// shadowed by rule 3 above and never match.
	if strings.Contains(lower, "generated on") || strings.Contains(lower, "date:") || strings.Contains(lower, "time:") {
		return section, []string{"", "📅 " + line}
	}

	// Rule 12: everything else.
	if len(line) > 3 && !strings.Contains(lower, "restaurant address") && strings.TrimSpace(line) != "" {
		if isContactLine(lower) {
			return section, []string{"📍 " + line}
		}
		if section != domain.SectionNone {
			return section, []string{"   " + line}
		}
		return section, []string{line}
	}

	return section, nil
}

// isContactLine reports whether an unclassified line looks like a phone,
// email, web, or address footer line.
func isContactLine(lower string) bool {
	return strings.Contains(lower, "phone") ||
		strings.Contains(lower, "@") ||
		strings.Contains(lower, "www.") ||
		strings.Contains(lower, ".com") ||
		strings.Contains(lower, "address")
}
