package reporting

import (
	"fmt"
	"strings"

	"earnings-straddle-lab/internal/backtest"
)

// RenderCSV renders summary statistics as CSV string. Undefined values
// render as empty cells.
func RenderCSV(stats []backtest.StatRow) string {
	var sb strings.Builder

	sb.WriteString("metric,value\n")
	for _, row := range stats {
		if row.Value == nil {
			sb.WriteString(fmt.Sprintf("%s,\n", escape(row.Name)))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s,%.6f\n", escape(row.Name), *row.Value))
	}

	return sb.String()
}

func escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
