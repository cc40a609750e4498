package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
	"github.com/kinara-erp/vouchers-api/pkg/printer"
)

// PrinterService handles voucher slip formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	pvRepo      repository.PurchaseVoucherRepository
	tenantRepo  repository.TenantRepository
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	pvRepo repository.PurchaseVoucherRepository,
	tenantRepo repository.TenantRepository,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		pvRepo:      pvRepo,
		tenantRepo:  tenantRepo,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the slip data so the handler can return it as JSON when the printer is disabled.
func (s *PrinterService) TestPrint() (*entity.VoucherSlip, error) {
	slip := &entity.VoucherSlip{
		Header: entity.VoucherSlipHeader{
			CompanyName: "PRINTER TEST",
			GSTIN:       "00TEST0000T0T0",
		},
		Title:     "TEST SLIP",
		VoucherNo: "TEST-001",
		Date:      "Test Date",
		Items: []entity.VoucherSlipItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 11.80},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 11.80},
		},
		Totals: entity.TotalsBreakup{
			Subtotal:   20.00,
			TotalCGST:  1.80,
			TotalSGST:  1.80,
			GrandTotal: 24.00,
			RoundOff:   0.40,
		},
	}

	data := FormatVoucherSlip(slip)
	if err := s.printer.Print(data); err != nil {
		return slip, fmt.Errorf("test print failed: %w", err)
	}

	return slip, nil
}

// PrintPurchaseVoucher fetches a purchase voucher (with items) and
// prints its slip.
func (s *PrinterService) PrintPurchaseVoucher(ctx context.Context, voucherID uuid.UUID) (*entity.VoucherSlip, error) {
	pv, err := s.pvRepo.GetWithDetails(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if pv == nil {
		return nil, apperror.NewNotFoundError("Purchase voucher")
	}

	settings := tenantSettings(ctx, s.tenantRepo, pv.TenantID)

	companyName := settings.LegalName
	if companyName == "" {
		companyName = "Purchase Voucher"
	}

	slip := &entity.VoucherSlip{
		Header: entity.VoucherSlipHeader{
			CompanyName: companyName,
			GSTIN:       settings.GSTIN,
			StateCode:   settings.StateCode,
		},
		Title:     "PURCHASE VOUCHER",
		VoucherNo: pv.VoucherNo,
		Date:      pv.Date.Format("2006-01-02"),
		Totals:    pv.Totals,
	}

	if pv.Vendor != nil {
		slip.Party = pv.Vendor.Name
		if pv.Vendor.GSTIN != nil {
			slip.PartyGST = *pv.Vendor.GSTIN
		}
	}
	if pv.VendorInvoiceNo != nil {
		slip.Reference = *pv.VendorInvoiceNo
	}

	for _, item := range pv.Items {
		slip.Items = append(slip.Items, entity.VoucherSlipItem{
			Name:      item.ProductName,
			HSNCode:   item.HSNCode,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			UnitPrice: item.UnitPrice,
			Total:     item.LineTotal,
		})
	}

	data := FormatVoucherSlip(slip)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (voucher %s): %v", voucherID, err)
		return slip, fmt.Errorf("failed to print voucher slip: %w", err)
	}

	return slip, nil
}

// FormatVoucherSlip converts a VoucherSlip into ESC/POS bytes.
func FormatVoucherSlip(slip *entity.VoucherSlip) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(slip.Header.CompanyName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if slip.Header.GSTIN != "" {
		doc.TextF("GSTIN: %s", slip.Header.GSTIN)
	}

	doc.Text(slip.Title).
		SetAlign(printer.AlignLeft).
		Separator('-')

	// Voucher info
	doc.KeyValue("Voucher:", slip.VoucherNo).
		KeyValue("Date:", slip.Date)

	if slip.Party != "" {
		doc.KeyValue("Vendor:", slip.Party)
	}
	if slip.PartyGST != "" {
		doc.KeyValue("GSTIN:", slip.PartyGST)
	}
	if slip.Reference != "" {
		doc.KeyValue("Inv No:", slip.Reference)
	}

	doc.Separator('-')

	// Items
	for _, item := range slip.Items {
		doc.Text(item.Name)
		doc.QuantityLine(item.Quantity, item.Unit, item.UnitPrice, item.Total)
	}

	doc.Separator('-')

	// Totals with the GST breakup
	t := slip.Totals
	doc.KeyValue("Taxable:", fmt.Sprintf("%.2f", t.Subtotal))
	if t.TotalDiscount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", t.TotalDiscount))
	}
	if t.TotalCGST > 0 {
		doc.KeyValue("CGST:", fmt.Sprintf("%.2f", t.TotalCGST))
	}
	if t.TotalSGST > 0 {
		doc.KeyValue("SGST:", fmt.Sprintf("%.2f", t.TotalSGST))
	}
	if t.TotalIGST > 0 {
		doc.KeyValue("IGST:", fmt.Sprintf("%.2f", t.TotalIGST))
	}
	if t.TotalCharges > 0 {
		doc.KeyValue("Charges:", fmt.Sprintf("%.2f", t.TotalCharges))
	}
	if t.RoundOff != 0 {
		doc.KeyValue("Round off:", fmt.Sprintf("%+.2f", t.RoundOff))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", t.GrandTotal)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Subject to E&OE").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
