package service

import (
	"strings"
	"testing"

	"bill-export-server/internal/domain"
)

func TestBillFormatter_EndToEnd(t *testing.T) {
	f := NewBillFormatter(newTestLogger())

	html := `<h2>Restaurant ABC</h2><p>BILL RECEIPT</p><p>Table: 5</p>` +
		`<p>Chicken x2 ₹500</p><p>TOTAL AMOUNT ₹500</p><p>THANK YOU</p>`

	text, err := f.FormatForMessaging(html)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Each decorated block must appear, in bill order.
	wantInOrder := []string{
		"🏪 *Restaurant ABC*",
		"📋 *BILL RECEIPT*",
		strings.Repeat("=", 30),
		"📍 Table: 5",
		"• Chicken x2 - ₹500",
		strings.Repeat("-", 30),
		"💰 *TOTAL AMOUNT ₹500*",
		"🙏 *THANK YOU*",
	}

	pos := 0
	for _, want := range wantInOrder {
		idx := strings.Index(text[pos:], want)
		if idx < 0 {
			t.Fatalf("expected %q after position %d in output:\n%s", want, pos, text)
		}
		pos += idx + len(want)
	}
}

func TestBillFormatter_ItemRowNeedsItemsSectionOrAmount(t *testing.T) {
	f := NewBillFormatter(newTestLogger())

	// Without the ITEM/TOTAL header a marked line only counts as an item
	// row when it carries an amount alongside the quantity.
	text, err := f.FormatForMessaging("<p>Chicken x2 special</p>")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(text, "•") {
		t.Fatalf("expected no bullet without an amount outside the items section, got:\n%s", text)
	}

	text, err = f.FormatForMessaging("<p>Chicken x2 ₹500</p>")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(text, "• Chicken x2 - ₹500") {
		t.Fatalf("expected bullet for priced quantity row, got:\n%s", text)
	}
}

func TestBillFormatter_NoBlankRunsForAnyInput(t *testing.T) {
	f := NewBillFormatter(newTestLogger())

	inputs := []string{
		"<p>BILL RECEIPT</p><p>BILL RECEIPT</p><p>BILL RECEIPT</p>",
		"<br><br><br><p>Order Numbers</p><br><br><p>Payment Details</p>",
		"<div>THANK YOU</div><div>Generated on today</div>",
	}
	for _, html := range inputs {
		text, err := f.FormatForMessaging(html)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(text, "\n\n\n") {
			t.Fatalf("output contains a blank-line run:\n%q", text)
		}
		if text != strings.TrimSpace(text) {
			t.Fatalf("output has leading/trailing blank space:\n%q", text)
		}
	}
}

func TestBillFormatter_EmptyBill(t *testing.T) {
	f := NewBillFormatter(newTestLogger())

	if _, err := f.FormatForMessaging("   "); err != domain.ErrEmptyBill {
		t.Fatalf("expected ErrEmptyBill, got %v", err)
	}
}
