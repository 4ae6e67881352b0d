package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/pkg/config"
	"github.com/vanlang/stock-api/pkg/logger"
)

func offlineConfig() *config.Config {
	return &config.Config{
		Env:            "development",
		AllowedOrigins: config.DefaultOrigins,
		Sources: config.SourcesConfig{
			Default: "VCI",
			Enabled: []string{"VCI", "TCBS", "YAHOO", "MOCK", "BLOOMBERG"},
		},
		Upstream:       config.UpstreamConfig{Timeout: time.Second},
		VCI:            config.VendorConfig{BaseURL: "http://127.0.0.1:1"},
		TCBS:           config.VendorConfig{BaseURL: "http://127.0.0.1:1"},
		MockFallback:   true,
		MockVariation:  0.05,
		BoardBatchSize: 50,
	}
}

func TestNewProvider(t *testing.T) {
	cfg := offlineConfig()
	for _, name := range []string{"VCI", "tcbs", "YAHOO"} {
		p, err := newProvider(name, cfg, logger.Nop(), nil)
		require.NoError(t, err, name)
		assert.NotEmpty(t, p.Name())
	}

	_, err := newProvider("MOCK", cfg, logger.Nop(), nil)
	assert.Error(t, err)
	_, err = newProvider("BLOOMBERG", cfg, logger.Nop(), nil)
	assert.Error(t, err)
}

func TestBuildAppSkipsUnknownSources(t *testing.T) {
	a, err := buildApp(context.Background(), offlineConfig(), logger.Nop(), false)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"VCI", "TCBS", "YAHOO"}, a.registry.Names())
	assert.Equal(t, "VCI", a.registry.Default())

	resp := a.svc.Mock("VNM")
	assert.Equal(t, provider.SourceMock, resp.Source)
	assert.Equal(t, 1, resp.Count)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "probe", "quote", "export"} {
		assert.True(t, names[want], want)
	}
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	out := newPrinter(cmd)
	out.table([]int{4, 3}, []string{"A", "B"}, [][]string{{"VCI", "ok"}})
	out.kv("Default", "VCI", 8)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A     B", lines[0])
	assert.Equal(t, strings.Repeat("─", 9), lines[1])
	assert.Equal(t, "VCI   ok", lines[2])
	assert.Equal(t, "   Default  : VCI", lines[3])
}
