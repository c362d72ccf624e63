package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Earnings Straddle Backtest Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Selection: %s | Trades: %d | Trading days: %d\n\n",
		r.Include, r.TradeCount, r.DayCount))

	// Summary Statistics
	sb.WriteString("## Summary Statistics\n\n")
	if len(r.Stats) > 0 {
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		for _, row := range r.Stats {
			if row.Value == nil {
				sb.WriteString(fmt.Sprintf("| %s | |\n", row.Name))
				continue
			}
			sb.WriteString(fmt.Sprintf("| %s | %.4f |\n", row.Name, *row.Value))
		}
	} else {
		sb.WriteString("No statistics available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
