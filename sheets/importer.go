package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"order-tracker/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const insertBatchSize = 100

// ImportResult summarizes a committed import.
type ImportResult struct {
	BatchID   string
	Rows      int
	Headers   []string
	Unmatched []string // file headers that map to no field
	Absent    []string // tracked headers the file does not have
}

// OrdersFromTable maps every row to an order by exact header lookup.
// Headers missing from the table leave the field empty.
func OrdersFromTable(t *Table) []models.Order {
	orders := make([]models.Order, 0, len(t.Rows))
	for i := range t.Rows {
		var o models.Order
		for _, col := range models.Columns {
			o.SetValue(col.Name, t.Get(i, col.Header))
		}
		o.Remark = t.Get(i, models.RemarkColumn.Header)
		orders = append(orders, o)
	}
	return orders
}

func unmatchedHeaders(t *Table) []string {
	known := map[string]bool{models.RemarkColumn.Header: true}
	for _, col := range models.Columns {
		known[col.Header] = true
	}
	out := []string{}
	for _, h := range t.Headers {
		if !known[h] {
			out = append(out, h)
		}
	}
	return out
}

func absentHeaders(t *Table) []string {
	out := []string{}
	for _, col := range models.Columns {
		if !t.Has(col.Header) {
			out = append(out, col.Header)
		}
	}
	return out
}

// ImportReader inserts every row of the workbook read from r, in file order, as one unit.
// If db is already a transaction the work runs in a savepoint, so a failure leaves no rows behind.
func ImportReader(ctx context.Context, db *gorm.DB, r io.Reader, fileName, actor string) (ImportResult, error) {
	table, err := ReadTable(r)
	if err != nil {
		return ImportResult{}, err
	}

	zap.L().Debug("spreadsheet headers", zap.String("file", fileName), zap.Strings("headers", table.Headers))

	if len(table.Headers) == 0 {
		zap.L().Warn("spreadsheet is empty, nothing imported", zap.String("file", fileName))
	}

	orders := OrdersFromTable(table)
	unmatched := unmatchedHeaders(table)
	absent := absentHeaders(table)

	headersJSON, err := json.Marshal(table.Headers)
	if err != nil {
		return ImportResult{}, err
	}
	unmatchedJSON, err := json.Marshal(unmatched)
	if err != nil {
		return ImportResult{}, err
	}

	batch := models.ImportBatch{
		FileName:  fileName,
		Rows:      len(orders),
		Headers:   datatypes.JSON(headersJSON),
		Unmatched: datatypes.JSON(unmatchedJSON),
		Actor:     actor,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(orders) > 0 {
			if err := tx.CreateInBatches(&orders, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert orders: %w", err)
			}
		}
		if err := tx.Create(&batch).Error; err != nil {
			return fmt.Errorf("record import batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	if len(unmatched) > 0 {
		zap.L().Warn("spreadsheet headers not mapped to any field",
			zap.String("file", fileName), zap.Strings("headers", unmatched))
	}
	if len(absent) > 0 && len(table.Headers) > 0 {
		zap.L().Warn("spreadsheet lacks tracked headers, fields left empty",
			zap.String("file", fileName), zap.Strings("headers", absent))
	}

	return ImportResult{
		BatchID:   batch.Id,
		Rows:      len(orders),
		Headers:   table.Headers,
		Unmatched: unmatched,
		Absent:    absent,
	}, nil
}

// Import reads the spreadsheet stored at path and imports it.
func Import(ctx context.Context, db *gorm.DB, path, actor string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	return ImportReader(ctx, db, f, filepath.Base(path), actor)
}
