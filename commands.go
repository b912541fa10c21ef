package main

import (
	"context"
	"fmt"
	"strconv"

	"order-tracker/database"
	"order-tracker/models"
	"order-tracker/queries"
	"order-tracker/sheets"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importCmd loads a spreadsheet into the store without the web UI
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import an .xlsx file (defaults to the upload location)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}
		path := cfg.ImportPath()
		if len(args) == 1 {
			path = args[0]
		}

		res, err := sheets.Import(cmd.Context(), database.DB, path, "cli")
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		zap.L().Info("import committed", zap.String("file", path), zap.String("batch", res.BatchID))
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows from %s\n", res.Rows, path)
		if len(res.Unmatched) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "ignored columns: %v\n", res.Unmatched)
		}
		return nil
	},
}

// exportCmd writes the whole store to a spreadsheet
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export every order to an .xlsx file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}
		path := cfg.ExportPath()
		if len(args) == 1 {
			path = args[0]
		}

		n, err := sheets.ExportFile(cmd.Context(), database.DB, path)
		if err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", n, path)
		return nil
	},
}

// statsCmd prints per-column missing counts for the whole store
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many orders are missing each tracked field",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootstrap(); err != nil {
			return err
		}
		return printStats(cmd.Context(), cmd)
	},
}

func printStats(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var total int64
	if err := database.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return err
	}
	counts, err := queries.CountMissing(ctx, database.DB)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Field", "Missing", "Total")
	for _, col := range models.Columns {
		if err := table.Append([]string{col.Name, strconv.FormatInt(counts[col.Name], 10), strconv.FormatInt(total, 10)}); err != nil {
			return err
		}
	}
	return table.Render()
}
