package sheets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"order-tracker/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const sheetName = "Sheet1"

// ExportHeaders is the header row written by Export: the tracked headers, then Remark.
func ExportHeaders() []string {
	headers := make([]string, 0, len(models.Columns)+1)
	for _, col := range models.Columns {
		headers = append(headers, col.Header)
	}
	return append(headers, models.RemarkColumn.Header)
}

func exportRow(o models.Order) []any {
	row := make([]any, 0, len(models.Columns)+1)
	for _, col := range models.Columns {
		row = append(row, o.Value(col.Name))
	}
	return append(row, o.Remark)
}

// Build creates a workbook holding orders in the given order.
func Build(orders []models.Order) (*excelize.File, error) {
	f := excelize.NewFile()

	header := make([]any, 0, len(models.Columns)+1)
	for _, h := range ExportHeaders() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, style); err != nil {
		_ = f.Close()
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 22); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		row := exportRow(o)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// Export writes the whole store, newest first, to w and returns the number of orders written.
func Export(ctx context.Context, db *gorm.DB, w io.Writer) (int, error) {
	var orders []models.Order
	if err := db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error; err != nil {
		return 0, fmt.Errorf("load orders: %w", err)
	}

	f, err := Build(orders)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(orders), nil
}

// ExportFile writes the export to path, creating its directory.
func ExportFile(ctx context.Context, db *gorm.DB, path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := Export(ctx, db, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
