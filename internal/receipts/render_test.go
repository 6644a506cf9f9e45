package receipts

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{100, "$1.00"},
		{89900, "$899.00"},
		{129999, "$1,299.99"},
		{123456789, "$1,234,567.89"},
		{-4500, "-$45.00"},
	}

	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestReceiptNumberIsStable(t *testing.T) {
	orderID := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")

	first := ReceiptNumber(orderID)
	second := ReceiptNumber(orderID)

	if first != second {
		t.Fatalf("expected stable receipt numbers, got %q and %q", first, second)
	}
	if first != "RCP-a1b2c3d4" {
		t.Fatalf("unexpected receipt number: %q", first)
	}
}

func TestRenderHTMLContainsOrderDetails(t *testing.T) {
	html, err := renderHTML(templateData{
		CompanyName:   "WoodWorks AI",
		ReceiptNumber: "RCP-a1b2c3d4",
		OrderID:       "a1b2c3d4-0000-0000-0000-000000000000",
		IssuedAt:      "August 31, 2026",
		ProductName:   "Oak Dining Table",
		Quantity:      1,
		UnitPrice:     "$899.00",
		Total:         "$899.00",
		SpecSummary:   "180x90cm solid oak, matte lacquer",
		CustomerName:  "Ada Lovelace",
		CustomerPhone: "+31612345678",
		QRDataURI:     qrDataURI("a1b2c3d4-0000-0000-0000-000000000000"),
	})
	if err != nil {
		t.Fatalf("renderHTML: %v", err)
	}

	doc := string(html)
	for _, want := range []string{"RCP-a1b2c3d4", "Oak Dining Table", "$899.00", "Ada Lovelace", "data:image/png;base64,"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("rendered receipt missing %q", want)
		}
	}
}

func TestGenerateWithoutCollaborators(t *testing.T) {
	svc := New(nil, nil, "", logger.New("development"))

	receipt := svc.Generate(context.Background(), GenerateParams{
		OrderID:        uuid.New(),
		CompanyName:    "WoodWorks AI",
		ProductName:    "Oak Dining Table",
		Quantity:       2,
		UnitPriceCents: 89900,
		TotalCents:     179800,
		SpecSummary:    "solid oak",
		CustomerName:   "Ada",
		CustomerPhone:  "+31612345678",
	})

	if receipt.Number == "" {
		t.Fatal("expected a receipt number even without PDF collaborators")
	}
	if receipt.FileKey != "" {
		t.Fatal("expected no file key without storage")
	}
	for _, want := range []string{"2 x Oak Dining Table", "$1,798.00", "solid oak"} {
		if !strings.Contains(receipt.Text, want) {
			t.Fatalf("receipt text missing %q: %s", want, receipt.Text)
		}
	}
}
