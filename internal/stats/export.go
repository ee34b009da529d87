package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Header returns the report's column names. The naming scheme
// ({year}_{category}_ContractOccurrence / _WeightedUnitPrice) is the
// contract with downstream consumers and must not drift.
func (r *Report) Header() []string {
	header := []string{"ItemID", "Description", "Unit"}
	for _, year := range r.Years {
		for _, category := range Categories {
			prefix := strconv.Itoa(year) + "_" + string(category)
			header = append(header, prefix+"_ContractOccurrence", prefix+"_WeightedUnitPrice")
		}
	}
	return header
}

// Rows renders every catalog item as string cells in header order.
// Cells without data stay empty, distinguishing "no priced bids" from
// a zero price or zero count.
func (r *Report) Rows() [][]string {
	out := make([][]string, 0, len(r.Items))
	for _, item := range r.Items {
		row := []string{strconv.FormatInt(item.ItemID, 10), item.Description, item.Unit}
		for _, year := range r.Years {
			for _, category := range Categories {
				cell := r.Cell(item.ItemID, year, category)
				if cell.Occurrence == 0 {
					row = append(row, "", "")
					continue
				}
				price := ""
				if cell.WeightedUnitPrice != nil {
					price = strconv.FormatFloat(*cell.WeightedUnitPrice, 'f', 2, 64)
				}
				row = append(row, strconv.Itoa(cell.Occurrence), price)
			}
		}
		out = append(out, row)
	}
	return out
}

// ExportCSV writes the report in its published delimited form.
func (r *Report) ExportCSV(outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(r.Header()); err != nil {
		return err
	}
	for _, row := range r.Rows() {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportXLSX writes the same report as a spreadsheet.
func (r *Report) ExportXLSX(outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range r.Header() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range r.Rows() {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
