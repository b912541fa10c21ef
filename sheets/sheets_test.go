package sheets

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"order-tracker/config"
	"order-tracker/database"
	"order-tracker/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.Database{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func header(name string) string {
	for _, col := range models.Columns {
		if col.Name == name {
			return col.Header
		}
	}
	return ""
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	return n
}

func TestReadTableNormalizesHeaders(t *testing.T) {
	data := workbook(t, [][]any{
		{"  " + header("po_number") + " ", header("pol"), header("po_number"), "Extra"},
		{"PO1", "Shanghai", "dup", " x "},
		{"PO2"},
		{},
		{"", "  "},
		{"PO3", "Ningbo", "dup", ""},
	})

	table, err := ReadTable(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{header("po_number"), header("pol"), "Extra"}, table.Headers)
	require.Len(t, table.Rows, 5)
	assert.Equal(t, []string{"PO1", "Shanghai", "x"}, table.Rows[0])
	assert.Equal(t, []string{"PO2", "", ""}, table.Rows[1])
	assert.Equal(t, []string{"", "", ""}, table.Rows[2], "interior blank rows are kept")
	assert.Equal(t, []string{"", "", ""}, table.Rows[3])
	assert.Equal(t, []string{"PO3", "Ningbo", ""}, table.Rows[4])
	assert.True(t, table.Has("Extra"))
	assert.Equal(t, "", table.Get(0, "absent"))
}

func TestReadTableRejectsGarbage(t *testing.T) {
	_, err := ReadTable(strings.NewReader("definitely not a zip archive"))
	assert.Error(t, err)
}

func TestReadTableDropsTrailingBlankRows(t *testing.T) {
	data := workbook(t, [][]any{
		{header("po_number")},
		{"PO1"},
		{""},
		{"PO2"},
		{" "},
		{},
		{""},
	})

	table, err := ReadTable(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"PO1"}, {""}, {"PO2"}}, table.Rows)
}

func TestReadTableEmptySheet(t *testing.T) {
	table, err := ReadTable(bytes.NewReader(workbook(t, nil)))
	require.NoError(t, err)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestImportEmptyWorkbook(t *testing.T) {
	db := newTestDB(t)
	res, err := ImportReader(context.Background(), db, bytes.NewReader(workbook(t, nil)), "empty.xlsx", "admin")
	require.NoError(t, err)
	assert.Zero(t, res.Rows)
	assert.Zero(t, countOrders(t, db))
}

func TestImportMapsHeadersInFileOrder(t *testing.T) {
	db := newTestDB(t)
	data := workbook(t, [][]any{
		{header("po_number"), header("pol"), "Remark", "Notes"},
		{"PO1", "Shanghai", "first", "ignored"},
		{"PO2", "", "", ""},
		{"0", "Ningbo", "", ""},
	})

	res, err := ImportReader(context.Background(), db, bytes.NewReader(data), "material.xlsx", "admin")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, []string{"Notes"}, res.Unmatched)
	assert.NotContains(t, res.Absent, header("po_number"))
	assert.Contains(t, res.Absent, header("supplier_shipper"))
	assert.Len(t, res.Absent, len(models.Columns)-2)
	assert.NotEmpty(t, res.BatchID)

	var orders []models.Order
	require.NoError(t, db.Order("id ASC").Find(&orders).Error)
	require.Len(t, orders, 3)
	assert.Equal(t, "PO1", orders[0].PONumber)
	assert.Equal(t, "Shanghai", orders[0].POL)
	assert.Equal(t, "first", orders[0].Remark)
	assert.Equal(t, "", orders[0].SupplierShipper, "absent header yields empty string")
	assert.Equal(t, "PO2", orders[1].PONumber)
	assert.Equal(t, "0", orders[2].PONumber)
	assert.True(t, orders[2].MissingAny())

	var batch models.ImportBatch
	require.NoError(t, db.First(&batch, "id = ?", res.BatchID).Error)
	assert.Equal(t, 3, batch.Rows)
	assert.Equal(t, "admin", batch.Actor)
	assert.JSONEq(t, `["Notes"]`, string(batch.Unmatched))
}

func TestImportFailureLeavesStoreUnchanged(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Order{PONumber: "existing"}).Error)

	_, err := ImportReader(context.Background(), db, strings.NewReader("garbage"), "bad.xlsx", "admin")
	require.Error(t, err)
	assert.Equal(t, int64(1), countOrders(t, db))

	var batches int64
	require.NoError(t, db.Model(&models.ImportBatch{}).Count(&batches).Error)
	assert.Zero(t, batches)
}

func TestImportInsertErrorRollsBack(t *testing.T) {
	db := newTestDB(t)
	data := workbook(t, [][]any{
		{header("po_number")},
		{"PO1"},
		{"PO2"},
	})

	// Force the second statement of the import to fail.
	require.NoError(t, db.Exec("DROP TABLE import_batches").Error)

	_, err := ImportReader(context.Background(), db, bytes.NewReader(data), "material.xlsx", "admin")
	require.Error(t, err)
	assert.Zero(t, countOrders(t, db))
}

func TestImportMissingFile(t *testing.T) {
	db := newTestDB(t)
	_, err := Import(context.Background(), db, filepath.Join(t.TempDir(), "nope.xlsx"), "admin")
	assert.Error(t, err)
}

func TestExportHeaders(t *testing.T) {
	headers := ExportHeaders()
	require.Len(t, headers, len(models.Columns)+1)
	assert.Equal(t, models.Columns[0].Header, headers[0])
	assert.Equal(t, "Remark", headers[len(headers)-1])
}

func TestExportNewestFirst(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Order{PONumber: "old", CreatedAt: base}).Error)
	require.NoError(t, db.Create(&models.Order{PONumber: "new", CreatedAt: base.Add(time.Hour)}).Error)

	var buf bytes.Buffer
	n, err := Export(context.Background(), db, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, "Sheet1", f.GetSheetName(0))

	po, err := f.GetCellValue("Sheet1", "C2")
	require.NoError(t, err)
	assert.Equal(t, "new", po)
	po, err = f.GetCellValue("Sheet1", "C3")
	require.NoError(t, err)
	assert.Equal(t, "old", po)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestDB(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var want []models.Order
	for i, tag := range []string{"a", "b", "c"} {
		var o models.Order
		for _, col := range models.Columns {
			o.SetValue(col.Name, tag+"-"+col.Name)
		}
		o.Remark = "remark " + tag
		o.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		want = append(want, o)
	}
	want[1].PONumber = ""
	want[1].Quantity = "0"
	want[2].BOMMaterialName = "螺丝\n M6"
	for i := range want {
		require.NoError(t, src.Create(&want[i]).Error)
	}

	path := filepath.Join(t.TempDir(), "out", "exported_orders.xlsx")
	n, err := ExportFile(context.Background(), src, path)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	dst := newTestDB(t)
	res, err := Import(context.Background(), dst, path, "admin")
	require.NoError(t, err)
	assert.Empty(t, res.Unmatched)

	var got []models.Order
	require.NoError(t, dst.Order("id ASC").Find(&got).Error)

	// Export is newest first, so the re-imported file order is reversed.
	reversed := make([]models.Order, len(want))
	for i := range want {
		reversed[len(want)-1-i] = want[i]
	}
	ignore := cmpopts.IgnoreFields(models.Order{}, "ID", "CreatedAt", "UpdatedAt")
	if diff := cmp.Diff(reversed, got, ignore); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportImportKeepsInteriorBlankRecord(t *testing.T) {
	src := newTestDB(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	want := []models.Order{
		{PONumber: "PO1", CreatedAt: base},
		{CreatedAt: base.Add(time.Minute)},
	}
	for i := range want {
		require.NoError(t, src.Create(&want[i]).Error)
	}

	path := filepath.Join(t.TempDir(), "exported_orders.xlsx")
	n, err := ExportFile(context.Background(), src, path)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	dst := newTestDB(t)
	res, err := Import(context.Background(), dst, path, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	var got []models.Order
	require.NoError(t, dst.Order("id ASC").Find(&got).Error)
	ignore := cmpopts.IgnoreFields(models.Order{}, "ID", "CreatedAt", "UpdatedAt")
	if diff := cmp.Diff([]models.Order{want[1], want[0]}, got, ignore); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
