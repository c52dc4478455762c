package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/receiptwise/receipt-pipeline/internal/entity"
)

// Service turns reconciled records into XLSX bytes and schema-checked JSON.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// RecordJSON marshals a record and validates it against the record schema
// before handing the bytes out.
func (s *Service) RecordJSON(rec entity.ReceiptRecord) ([]byte, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if err := entity.ValidateRecordJSON(b); err != nil {
		return nil, err
	}
	return b, nil
}

// RecordsXLSX returns an XLSX workbook (as bytes) with one row per record.
func (s *Service) RecordsXLSX(recs []entity.ReceiptRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Date",
		"Merchant",
		"Total",
		"Tax",
		"Items",
		"Payment Method",
		"Receipt #",
		"Confidence",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Date.Format("2006-01-02"))
		write(2, r.MerchantName)
		write(3, fmt.Sprintf("%.2f", r.TotalAmount))
		if r.TaxAmount != nil {
			write(4, fmt.Sprintf("%.2f", *r.TaxAmount))
		} else {
			write(4, "")
		}
		write(5, itemsSummary(r.Items))
		write(6, r.PaymentMethod)
		write(7, r.ReceiptNumber)
		write(8, fmt.Sprintf("%.2f", r.Confidence))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 28) // merchant
	_ = f.SetColWidth(sheet, "C", "D", 12) // amounts
	_ = f.SetColWidth(sheet, "E", "E", 48) // items
	_ = f.SetColWidth(sheet, "F", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func itemsSummary(items []entity.ReceiptItem) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += "; "
		}
		if it.Quantity > 1 {
			out += fmt.Sprintf("%dx %s %.2f", it.Quantity, it.Name, it.TotalPrice)
		} else {
			out += fmt.Sprintf("%s %.2f", it.Name, it.TotalPrice)
		}
	}
	return out
}
