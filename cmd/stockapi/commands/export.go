package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanlang/stock-api/internal/export"
	"github.com/vanlang/stock-api/internal/stock"
	"github.com/vanlang/stock-api/pkg/logger"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export market data to files",
	Long: `Export market data to csv, json or parquet files.

Subcommands:
  history - OHLCV bars of one symbol

Example:
  go run ./cmd/stockapi export history VNM --from 2024-01-01 --to 2024-06-30 --format csv
  go run ./cmd/stockapi export history FPT --interval 1W --format parquet --out fpt.parquet`,
}

var exportHistoryCmd = &cobra.Command{
	Use:   "history SYMBOL",
	Short: "Export OHLCV bars",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportHistory,
}

var (
	exportFrom     string
	exportTo       string
	exportInterval string
	exportFormat   string
	exportOut      string
	exportSource   string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportHistoryCmd)

	f := exportHistoryCmd.Flags()
	f.StringVar(&exportFrom, "from", "", "start date YYYY-MM-DD (default: 90 days ago)")
	f.StringVar(&exportTo, "to", "", "end date YYYY-MM-DD (default: today)")
	f.StringVar(&exportInterval, "interval", "1D", "bar interval (1m|5m|15m|30m|1H|1D|1W|1M)")
	f.StringVar(&exportFormat, "format", export.FormatCSV, "output format ("+strings.Join(export.Formats, "|")+")")
	f.StringVar(&exportOut, "out", "", "output file (default: SYMBOL_FROM_TO.FORMAT)")
	f.StringVar(&exportSource, "source", "", "data source (VCI|TCBS|YAHOO|MOCK)")
}

func runExportHistory(cmd *cobra.Command, args []string) error {
	if _, err := export.New(exportFormat); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.Nop()
	if verbose {
		log = logger.New(cfg)
	}

	a, err := buildApp(cmd.Context(), cfg, log, exportSource == "")
	if err != nil {
		return err
	}
	defer a.Close()

	p := newPrinter(cmd)
	resp := a.svc.History(cmd.Context(), stock.HistoryRequest{
		Symbol:    args[0],
		Source:    exportSource,
		StartDate: exportFrom,
		EndDate:   exportTo,
		Interval:  exportInterval,
	})
	if resp.Error != "" {
		p.fail(resp.Error)
		return fmt.Errorf("export %s: %s", args[0], resp.Error)
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("%s_%s_%s.%s", resp.Symbol, resp.StartDate, resp.EndDate, strings.ToLower(exportFormat))
	}
	if err := export.Save(out, exportFormat, export.Records(resp.Symbol, resp.Data)); err != nil {
		return err
	}

	p.ok(fmt.Sprintf("%d bars of %s (%s, source %s) written to %s", resp.Count, resp.Symbol, resp.Interval, resp.Source, out))
	if resp.Warning != "" {
		p.warn(resp.Warning)
	}
	return nil
}
