package journal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"
)

var runOrgFuncs = template.FuncMap{
	"shortID": shortID,
	"stamp": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04:05") },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var runOrg = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// FormatRunOrg renders a run as an Org-mode block. Searchable facts go in
// the PROPERTIES drawer.
func FormatRunOrg(r RunRecord) string {
	var buf bytes.Buffer
	if err := runOrg.Execute(&buf, r); err != nil {
		// Only field references can fail and those are fixed at compile time.
		panic(err)
	}
	return buf.String()
}

// WriteRunOrg writes the block for r to path.
func WriteRunOrg(path string, r RunRecord) error {
	return os.WriteFile(path, []byte(FormatRunOrg(r)), 0644)
}

// FormatFlushesOrg renders flushes as an Org table.
func FormatFlushesOrg(flushes []FlushRecord) string {
	var b strings.Builder
	b.WriteString("| Time                | Profit | Fills |\n")
	b.WriteString("|---------------------+--------+-------|\n")
	for _, f := range flushes {
		fmt.Fprintf(&b, "| %s | %.4f | %d |\n", f.Time.UTC().Format("2006-01-02 15:04:05"), f.Profit, f.Fills)
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

const RunOrgTemplate = `* RUN: {{if .Source}}{{.Source}}{{else}}(source?){{end}} ({{shortID .RunID}})
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:SOURCE:      {{.Source}}
:SCHEMA:      {{.Schema}}
:PROFIT_MODE: {{.ProfitMode}}
:FILL_GAPS:   {{.FillGaps}}
:START:       {{stamp .Start}}
:END_TIME:    {{stamp .End}}
:TICKS:       {{.Ticks}}
:FLUSHES:     {{.Flushes}}
:NET_PROFIT:  {{printf "%.4f" .NetProfit}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Chart
{{- if .ChartPNG }}
[[file:{{.ChartPNG}}]]
{{- else }}
# (optional) render with: pnlchart plot {{.Source}}
{{- end }}
`
