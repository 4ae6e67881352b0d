package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vanlang/stock-api/pkg/logger"
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check every enabled source",
	Long: `Probe every enabled source once and print reachability, latency and
the detected response layout.

Example:
  go run ./cmd/stockapi probe`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.Nop()
	if verbose {
		log = logger.New(cfg)
	}

	a, err := buildApp(cmd.Context(), cfg, log, false)
	if err != nil {
		return err
	}
	defer a.Close()

	out := newPrinter(cmd)
	if a.registry.Len() == 0 {
		out.warn("No live source enabled (ENABLED_SOURCES is empty)")
		return nil
	}

	results := a.registry.Probe(cmd.Context(), cfg.Upstream.Timeout)

	out.title("Source probe")
	reachable := 0
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		if res.Reachable {
			reachable++
		}
		rows = append(rows, []string{
			res.Name,
			strconv.FormatBool(res.Reachable),
			fmt.Sprintf("%dms", res.LatencyMS),
			res.Layout,
			res.Error,
		})
	}
	out.table([]int{8, 10, 10, 14, 40}, []string{"SOURCE", "REACHABLE", "LATENCY", "LAYOUT", "ERROR"}, rows)
	out.rule(false)
	out.kv("Default source", a.registry.Default(), 14)

	if reachable == 0 {
		out.fail("No source reachable")
		return fmt.Errorf("no source reachable")
	}
	out.ok(fmt.Sprintf("%d/%d sources reachable", reachable, len(results)))
	return nil
}
