package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// printer renders CLI output in one shared style
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
type printer struct {
	w io.Writer
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout()}
}

// rule draws a full-width line; heavy for section titles
func (p printer) rule(heavy bool) {
	ch := "─"
	if heavy {
		ch = "═"
	}
	fmt.Fprintln(p.w, strings.Repeat(ch, 59))
}

func (p printer) title(format string, args ...interface{}) {
	p.rule(true)
	fmt.Fprintf(p.w, "  "+format+"\n", args...)
	p.rule(false)
}

func (p printer) warn(msg string) { fmt.Fprintf(p.w, "⚠️  %s\n", msg) }
func (p printer) ok(msg string)   { fmt.Fprintf(p.w, "✅ %s\n", msg) }
func (p printer) fail(msg string) { fmt.Fprintf(p.w, "❌ %s\n", msg) }

// table prints a header with an underline sized to the columns, then rows
func (p printer) table(widths []int, header []string, rows [][]string) {
	p.row(widths, header)
	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	fmt.Fprintln(p.w, strings.Repeat("─", total))
	for _, r := range rows {
		p.row(widths, r)
	}
}

func (p printer) row(widths []int, values []string) {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = fmt.Sprintf("%-*s", widths[i], v)
	}
	fmt.Fprintln(p.w, strings.TrimRight(strings.Join(cells, "  "), " "))
}

func (p printer) kv(key, value string, keyWidth int) {
	fmt.Fprintf(p.w, "   %-*s : %s\n", keyWidth, key, value)
}
