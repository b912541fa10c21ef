package controllers

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"order-tracker/database"
	"order-tracker/middlewares"
	"order-tracker/sheets"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const exportFileName = "exported_orders.xlsx"

// GET /export
// The workbook is kept at the export path and sent from memory.
func Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	n, err := sheets.Export(c.UserContext(), database.GetDB(c), &buf)
	if err != nil {
		return err
	}

	path := settings.ExportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	zap.L().Info("orders exported", zap.Int("rows", n), zap.String("path", path))

	c.Attachment(exportFileName)
	return c.Send(buf.Bytes())
}

func uploadRejected(c *fiber.Ctx, message string) error {
	if err := middlewares.AddFlash(c, middlewares.FlashError, message); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}

// POST /upload (admin only)
func Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return uploadRejected(c, "No file part")
	}
	files := form.File["file"]
	if len(files) == 0 {
		// Browsers send an empty file input as a plain value with no filename.
		if _, ok := form.Value["file"]; ok {
			return uploadRejected(c, "No selected file")
		}
		return uploadRejected(c, "No file part")
	}
	fh := files[0]
	if strings.TrimSpace(fh.Filename) == "" {
		return uploadRejected(c, "No selected file")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return uploadRejected(c, "Invalid file type. Please upload an Excel file.")
	}

	path := settings.ImportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := c.SaveFile(fh, path); err != nil {
		return err
	}

	actor := middlewares.CurrentUsername(c)
	res, err := sheets.Import(c.UserContext(), database.GetDB(c), path, actor)
	if err != nil {
		zap.L().Warn("import failed", zap.String("file", fh.Filename), zap.String("actor", actor), zap.Error(err))
		if ferr := middlewares.AddFlash(c, middlewares.FlashError, "Failed to import data: %s", err.Error()); ferr != nil {
			return ferr
		}
		return c.Redirect("/dashboard")
	}

	zap.L().Info("import committed",
		zap.String("file", fh.Filename),
		zap.String("actor", actor),
		zap.String("batch", res.BatchID),
		zap.Int("rows", res.Rows))
	if err := middlewares.AddFlash(c, middlewares.FlashSuccess, "File uploaded and data imported successfully!"); err != nil {
		return err
	}
	if err := middlewares.AddFlash(c, middlewares.FlashInfo, "Imported %s rows.", strconv.Itoa(res.Rows)); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}
