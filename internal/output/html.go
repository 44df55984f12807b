package output

import (
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/selimozcann/safeurl/internal/model"
)

// Summary holds the counters of the HTML summary section.
type Summary struct {
	Total        int
	WithFindings int
	Unsafe       int
	Errors       int
}

// Param is a rendered setting name/value pair.
type Param struct {
	Key   string
	Value string
}

// PageData is the full context of the HTML report.
type PageData struct {
	Title         string
	GeneratedAt   time.Time
	Params        map[string]string
	OrderedParams []Param
	Summary       Summary
	Results       []model.Analysis
}

// BuildSummary derives the summary counters from analyses.
func BuildSummary(results []model.Analysis) Summary {
	sum := Summary{Total: len(results)}
	for _, a := range results {
		if len(a.Evaluation.Findings) > 0 {
			sum.WithFindings++
		}
		if a.Evaluation.Status >= model.StatusUnsafe {
			sum.Unsafe++
		}
		if a.Resolution.Error != "" || a.Evaluation.Error != "" {
			sum.Errors++
		}
	}
	return sum
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"formatTime":   func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"redirectType": DetermineType,
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root { color-scheme: light dark; }
body { font-family: system-ui, -apple-system, Segoe UI, Roboto, sans-serif; margin: 24px; background:#fafafa; color:#111; }
h1 { font-size: 26px; margin: 0 0 8px; }
h2 { font-size:20px; margin:0 0 12px; }
h3 { font-size:16px; margin:12px 0 6px; }
.section { border:1px solid #e5e7eb; border-radius:16px; padding:16px 20px; margin-bottom:18px; background:#fff; }
.summary-grid { display:grid; gap:12px; grid-template-columns: repeat(auto-fit,minmax(180px,1fr)); }
.summary-card { padding:12px; border-radius:12px; border:1px solid #cbd5f5; position:relative; }
.summary-card .badge { position:absolute; top:12px; right:12px; padding:2px 10px; border-radius:999px; background:#4f46e5; color:#fff; font-size:12px; }
.meta { color:#6b7280; font-size:12px; }
.status { display:inline-block; padding:2px 8px; border-radius:999px; font-size:12px; margin-left:6px; background:#e5e7eb; }
.status-safe { background:#bbf7d0; }
.status-suspicious { background:#fde68a; }
.status-unsafe { background:#fecaca; }
.status-malicious { background:#b91c1c; color:#fff; }
.table { width:100%; border-collapse:collapse; font-size:14px; }
.table th, .table td { border-bottom:1px solid #e5e7eb; padding:6px 8px; text-align:left; }
.url { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; font-size:13px; }
.footer { text-align:center; font-size:12px; color:#6b7280; margin-top:24px; }
@media (prefers-color-scheme: dark) {
	body { background:#0f172a; color:#e2e8f0; }
	.section { background:#1e293b; border-color:#334155; }
	.meta { color:#94a3b8; }
}
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p class="meta">Generated at {{formatTime .GeneratedAt}}</p>
</header>
<section id="summary" class="section">
  <h2>Summary</h2>
  <div class="summary-grid">
    <div class="summary-card"><strong>URLs</strong><span class="badge">{{.Summary.Total}}</span></div>
    <div class="summary-card"><strong>With Findings</strong><span class="badge">{{.Summary.WithFindings}}</span></div>
    <div class="summary-card"><strong>Unsafe or Malicious</strong><span class="badge">{{.Summary.Unsafe}}</span></div>
    <div class="summary-card"><strong>Errors</strong><span class="badge">{{.Summary.Errors}}</span></div>
  </div>
</section>
{{- if .OrderedParams }}
<section id="parameters" class="section">
  <h2>Parameters</h2>
  <dl>
  {{- range .OrderedParams }}
    <dt>{{.Key}}</dt>
    <dd><span class="url">{{.Value}}</span></dd>
  {{- end }}
  </dl>
</section>
{{- end }}
{{range .Results}}
<section class="section">
  <h3><span class="url">{{.Resolution.OriginalURL}}</span><span class="status status-{{.Evaluation.Status}}">{{.Evaluation.Status}}</span></h3>
  <p class="meta">Score {{.Evaluation.Score}}/100 &middot; {{redirectType .Resolution}} &middot; {{len .Resolution.Chain}} hops &middot; ID {{.ID}}</p>
  <p>Final URL: <span class="url">{{.Resolution.FinalURL}}</span></p>
  {{if .Resolution.Error}}<p class="meta">Resolve error: {{.Resolution.Error}}</p>{{end}}
  {{if .Evaluation.Error}}<p class="meta">Check error: {{.Evaluation.Error}}</p>{{end}}
  {{if .Resolution.Chain}}
  <table class="table">
    <thead><tr><th>#</th><th>URL</th><th>Status</th></tr></thead>
    <tbody>
    {{range .Resolution.Chain}}
      <tr><td>{{.Step}}</td><td class="url">{{.URL}}</td><td>{{.StatusCode}}</td></tr>
    {{end}}
    </tbody>
  </table>
  {{end}}
  {{if .Evaluation.Findings}}
  <table class="table">
    <thead><tr><th>Rule</th><th>Severity</th><th>Description</th></tr></thead>
    <tbody>
    {{range .Evaluation.Findings}}
      <tr><td>{{.RuleID}}</td><td>{{.Severity}}</td><td>{{.Description}}</td></tr>
    {{end}}
    </tbody>
  </table>
  {{else}}
  <p class="meta">No findings.</p>
  {{end}}
</section>
{{end}}
<footer class="footer">
  SafeUrl report generated at {{formatTime .GeneratedAt}}
</footer>
</body>
</html>
`))

// RenderHTML renders the HTML report. Params are listed sorted by key.
func RenderHTML(w io.Writer, data PageData) error {
	if data.Params != nil {
		keys := make([]string, 0, len(data.Params))
		for k := range data.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := make([]Param, 0, len(keys))
		for _, k := range keys {
			ordered = append(ordered, Param{Key: k, Value: data.Params[k]})
		}
		data.OrderedParams = ordered
	}
	return htmlTemplate.Execute(w, data)
}
