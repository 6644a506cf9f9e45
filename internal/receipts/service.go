package receipts

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/internal/storage"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// Receipt describes a generated order receipt.
type Receipt struct {
	Number  string
	Text    string
	FileKey string
}

// GenerateParams contains the order details rendered into a receipt.
type GenerateParams struct {
	OrderID        uuid.UUID
	CompanyName    string
	ProductName    string
	Quantity       int
	UnitPriceCents int64
	TotalCents     int64
	SpecSummary    string
	CustomerName   string
	CustomerPhone  string
}

// Service renders receipts and stores PDF copies in object storage.
// PDF generation and upload are best effort; the formatted receipt text is
// always produced so fulfillment never stalls on a rendering collaborator.
type Service struct {
	gotenberg *GotenbergClient
	store     storage.Service
	bucket    string
	log       *logger.Logger
}

// New creates a receipts service. Both gotenberg and store may be nil when the
// corresponding collaborators are not configured.
func New(gotenberg *GotenbergClient, store storage.Service, bucket string, log *logger.Logger) *Service {
	return &Service{
		gotenberg: gotenberg,
		store:     store,
		bucket:    bucket,
		log:       log,
	}
}

// Generate produces a receipt for the given order. The returned receipt always
// carries a number and formatted text; FileKey is set only when the PDF was
// rendered and uploaded successfully.
func (s *Service) Generate(ctx context.Context, params GenerateParams) Receipt {
	number := ReceiptNumber(params.OrderID)
	issuedAt := time.Now().Format("January 2, 2006")

	receipt := Receipt{
		Number: number,
		Text:   formatText(number, issuedAt, params),
	}

	if s.gotenberg == nil || s.store == nil {
		return receipt
	}

	html, err := renderHTML(templateData{
		CompanyName:   params.CompanyName,
		ReceiptNumber: number,
		OrderID:       params.OrderID.String(),
		IssuedAt:      issuedAt,
		ProductName:   params.ProductName,
		Quantity:      params.Quantity,
		UnitPrice:     FormatCents(params.UnitPriceCents),
		Total:         FormatCents(params.TotalCents),
		SpecSummary:   params.SpecSummary,
		CustomerName:  params.CustomerName,
		CustomerPhone: params.CustomerPhone,
		QRDataURI:     qrDataURI(params.OrderID.String()),
	})
	if err != nil {
		s.log.Warn("receipt html rendering failed", "order_id", params.OrderID, "error", err)
		return receipt
	}

	pdf, err := s.gotenberg.ConvertHTML(ctx, html, ReceiptOpts())
	if err != nil {
		s.log.Warn("receipt pdf conversion failed", "order_id", params.OrderID, "error", err)
		return receipt
	}

	fileName := fmt.Sprintf("%s.pdf", number)
	fileKey, err := s.store.UploadFile(ctx, s.bucket, params.OrderID.String(), fileName, "application/pdf", bytes.NewReader(pdf), int64(len(pdf)))
	if err != nil {
		s.log.Warn("receipt upload failed", "order_id", params.OrderID, "error", err)
		return receipt
	}

	receipt.FileKey = fileKey
	s.log.Info("receipt stored", "order_id", params.OrderID, "file_key", fileKey)
	return receipt
}

// DownloadURL returns a presigned URL for a previously stored receipt PDF.
func (s *Service) DownloadURL(ctx context.Context, fileKey string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("receipt storage is not configured")
	}
	presigned, err := s.store.GenerateDownloadURL(ctx, s.bucket, fileKey)
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}

// ReceiptNumber derives a stable human-readable receipt number from the order ID.
func ReceiptNumber(orderID uuid.UUID) string {
	return "RCP-" + orderID.String()[:8]
}

func formatText(number, issuedAt string, params GenerateParams) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n", params.CompanyName)
	fmt.Fprintf(&buf, "Receipt %s | Order %s | %s\n\n", number, params.OrderID, issuedAt)
	fmt.Fprintf(&buf, "Customer: %s (%s)\n\n", params.CustomerName, params.CustomerPhone)
	fmt.Fprintf(&buf, "%d x %s @ %s\n", params.Quantity, params.ProductName, FormatCents(params.UnitPriceCents))
	if params.SpecSummary != "" {
		fmt.Fprintf(&buf, "\nSpecification:\n%s\n", params.SpecSummary)
	}
	fmt.Fprintf(&buf, "\nTotal: %s\n", FormatCents(params.TotalCents))
	return buf.String()
}
