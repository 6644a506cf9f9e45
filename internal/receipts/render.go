package receipts

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"
)

//go:embed templates/receipt.html
var templateFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(templateFS, "templates/receipt.html"))

// templateData is the model rendered into the receipt HTML.
type templateData struct {
	CompanyName   string
	ReceiptNumber string
	OrderID       string
	IssuedAt      string
	ProductName   string
	Quantity      int
	UnitPrice     string
	Total         string
	SpecSummary   string
	CustomerName  string
	CustomerPhone string
	QRDataURI     template.URL
}

// renderHTML produces the receipt HTML document.
func renderHTML(data templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render receipt template: %w", err)
	}
	return buf.Bytes(), nil
}

// qrDataURI encodes the content as a QR code PNG data URI.
// Returns an empty string when encoding fails; the receipt renders without it.
func qrDataURI(content string) template.URL {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

// FormatCents renders an int64 cent amount as a dollar string, e.g. 129999 -> "$1,299.99".
func FormatCents(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	dollars := cents / 100
	remainder := cents % 100

	digits := fmt.Sprintf("%d", dollars)
	var grouped bytes.Buffer
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, grouped.String(), remainder)
}
