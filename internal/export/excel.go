package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/routeledger/routeledger/internal/ledger"
	"github.com/routeledger/routeledger/internal/settlement"
)

type LedgerPort interface {
	Ledger(ctx context.Context, accountID int64) ([]ledger.LedgerLine, float64, error)
}

type SettlementPort interface {
	ProfitLoss(ctx context.Context, tripID string) (settlement.ProfitLoss, error)
}

// Service renders account statements and trip profit/loss sheets as xlsx
// workbooks.
type Service struct {
	ledger     LedgerPort
	settlement SettlementPort
	printer    *message.Printer
}

func NewService(ledgerPort LedgerPort, settlementPort SettlementPort) *Service {
	return &Service{
		ledger:     ledgerPort,
		settlement: settlementPort,
		printer:    message.NewPrinter(language.English),
	}
}

func (s *Service) amount(v float64) string {
	return s.printer.Sprintf("%.2f", v)
}

const dateLayout = "02-01-2006"

// AccountLedger builds the running-balance statement workbook for one
// account. Closing the returned file is the caller's responsibility.
func (s *Service) AccountLedger(ctx context.Context, accountID int64) (*excelize.File, error) {
	lines, balance, err := s.ledger.Ledger(ctx, accountID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Ledger"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("export: new sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Date", "Description", "Trip", "Credit", "Debit", "Balance"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	row := 2
	for _, line := range lines {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.Date.Format(dateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.Description)
		if line.RelatedTripID != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), *line.RelatedTripID)
		}
		if line.Credit > 0 {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), s.amount(line.Credit))
		}
		if line.Debit > 0 {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), s.amount(line.Debit))
		}
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), s.amount(line.RunningBalance))
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Closing balance")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), s.amount(balance))
	return f, nil
}

// TripProfitLoss builds the per-trip P&L workbook: one line per expense plus
// the synthetic commission/orai rows, footed with the summary figures.
func (s *Service) TripProfitLoss(ctx context.Context, tripID string) (*excelize.File, error) {
	pl, err := s.settlement.ProfitLoss(ctx, tripID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Profit Loss"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("export: new sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Date", "Category", "Description", "Amount", "Effect"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	row := 2
	for _, line := range pl.Lines {
		effect := "cost"
		if line.Addback {
			effect = "revenue"
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.Date.Format(dateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.Category)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), line.Description)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), s.amount(line.Amount))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), effect)
		row++
	}

	row++
	summary := []struct {
		label string
		value float64
	}{
		{"Total freight", pl.TotalFreight},
		{"Revenue addbacks", pl.AddbackSum},
		{"Total revenue", pl.TotalRevenue},
		{"Commission", pl.CommissionAmount},
		{"Orai", pl.OraiAmount},
		{"Deductible expenses", pl.DeductibleSum},
		{"Profit / loss", pl.ProfitLoss},
	}
	for _, item := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.label)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), s.amount(item.value))
		row++
	}
	return f, nil
}
