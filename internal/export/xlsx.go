// Package export serializes a user's ledger view to a spreadsheet artifact.
// Pure serialization: rows and the total are computed by the expense ledger.
package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	apperrors "spendbook/internal/errors"
)

// SheetName is the name of the single sheet in the exported workbook.
const SheetName = "My Expenses"

// headers and columnWidths are fixed per column: ID, Amount, Date, Category, Note.
var (
	headers      = []string{"ID", "Amount", "Date", "Category", "Note"}
	columnWidths = map[string]float64{"A": 8, "B": 12, "C": 15, "D": 20, "E": 40}
)

// Row is one data row of the export artifact.
type Row struct {
	ID       uint
	Amount   decimal.Decimal
	Date     string
	Category string
	Note     string
}

// WriteSpreadsheet writes the rows plus a trailing total row to an .xlsx file
// at dest. The header row is styled distinctly and the total row is bold.
func WriteSpreadsheet(rows []Row, total decimal.Decimal, dest string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return apperrors.Wrap(apperrors.ErrExportFailed, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return apperrors.Wrap(apperrors.ErrExportFailed, err)
		}
	}

	for i, row := range rows {
		n := i + 2
		amount, _ := row.Amount.Float64()
		values := []interface{}{row.ID, amount, row.Date, row.Category, row.Note}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, n)
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return apperrors.Wrap(apperrors.ErrExportFailed, err)
			}
		}
	}

	totalRow := len(rows) + 2
	totalAmount, _ := total.Float64()
	if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", totalRow), "TOTAL"); err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, err)
	}
	if err := f.SetCellValue(SheetName, fmt.Sprintf("B%d", totalRow), totalAmount); err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, err)
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("B%d", totalRow), boldStyle); err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, err)
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return apperrors.Wrap(apperrors.ErrExportFailed, err)
		}
	}

	if err := f.SaveAs(dest); err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, err)
	}
	return nil
}
