package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vanlang/stock-api/pkg/logger"
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote SYMBOL",
	Short: "Print the latest price of a symbol",
	Long: `Resolve the latest price of one symbol the same way /api/price does.

Example:
  go run ./cmd/stockapi quote VNM
  go run ./cmd/stockapi quote FPT --source TCBS`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

var (
	quoteSource string
)

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&quoteSource, "source", "", "data source (VCI|TCBS|YAHOO|MOCK)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.Nop()
	if verbose {
		log = logger.New(cfg)
	}

	a, err := buildApp(cmd.Context(), cfg, log, quoteSource == "")
	if err != nil {
		return err
	}
	defer a.Close()

	out := newPrinter(cmd)
	resp := a.svc.Price(cmd.Context(), args[0], quoteSource)
	if resp.Price == nil {
		out.fail(fmt.Sprintf("%s: %s", resp.Symbol, resp.Error))
		return fmt.Errorf("no price for %s", resp.Symbol)
	}

	out.title("%s  %s", resp.Symbol, resp.Name)
	out.kv("Price", strconv.FormatFloat(*resp.Price, 'f', -1, 64), 10)
	out.kv("Change", fmt.Sprintf("%+.2f (%+.2f%%)", resp.Change, resp.PctChange), 10)
	out.kv("Volume", strconv.FormatInt(resp.Volume, 10), 10)
	out.kv("Date", resp.Date, 10)
	out.kv("Source", resp.Source, 10)
	out.kv("Strategy", resp.Strategy, 10)
	if resp.Warning != "" {
		out.warn(resp.Warning)
	}
	return nil
}
