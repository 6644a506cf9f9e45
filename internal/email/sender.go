// Package email sends transactional order emails over SMTP.
package email

import "context"

// Attachment is a file attached to an outgoing email.
type Attachment struct {
	FileName string
	Content  []byte
}

// Sender delivers transactional emails. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendOrderConfirmationEmail(ctx context.Context, toEmail string, data OrderConfirmationData, attachments ...Attachment) error
}

// OrderConfirmationData carries the fields rendered into the confirmation email.
type OrderConfirmationData struct {
	CustomerName   string
	CompanyName    string
	OrderID        string
	ReceiptNumber  string
	ProductName    string
	Quantity       int
	TotalFormatted string
}
