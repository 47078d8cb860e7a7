// internal/report/html.go
package report

import (
	"encoding/json"
	"html/template"
	"io"
)

type htmlView struct {
	Title   string
	Payload template.JS
	Rows    []htmlRow
}

type htmlRow struct {
	Name      string
	Type      string
	Detail    string
	MainScore string
	Languages int
}

// WriteHTMLCatalogue renders the catalogue as a standalone HTML page. The
// raw metadata is embedded as JSON for scripting.
func WriteHTMLCatalogue(w io.Writer, c Catalogue) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	view := htmlView{Title: "mteb: Task Catalogue", Payload: template.JS(payload)}
	for _, m := range c.Tasks {
		detail := string(m.Category)
		if m.IsSuperseded() {
			detail += ", superseded by " + m.SupersededBy
		}
		view.Rows = append(view.Rows, htmlRow{
			Name:      m.Name,
			Type:      string(m.Type),
			Detail:    detail,
			MainScore: m.MainScore,
			Languages: len(m.Languages()),
		})
	}
	return pageTemplate.Execute(w, view)
}

// WriteHTMLSummary renders one task summary as a standalone HTML page.
func WriteHTMLSummary(w io.Writer, s *TaskSummary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	view := htmlView{Title: "mteb: " + s.Task, Payload: template.JS(payload)}
	for _, sp := range s.Splits {
		name := sp.Split
		if sp.Scope != "" {
			name = sp.Scope + "/" + sp.Split
		}
		view.Rows = append(view.Rows, htmlRow{
			Name:      name,
			Type:      string(s.Type),
			Detail:    splitDetail(sp),
			MainScore: s.MainScore,
			Languages: len(s.Languages),
		})
	}
	return pageTemplate.Execute(w, view)
}

func splitDetail(sp SplitSummary) string {
	if sp.Queries > 0 || sp.Documents > 0 {
		return jsonCounts(map[string]int{"queries": sp.Queries, "documents": sp.Documents, "judgments": sp.Judgments})
	}
	return jsonCounts(map[string]int{"rows": sp.Rows, "labels": len(sp.Labels)})
}

func jsonCounts(m map[string]int) string {
	b, _ := json.Marshal(m)
	return string(b)
}

var pageTemplate = template.Must(template.New("mteb-report").Parse(pageTemplateHTML))

const pageTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root { --primary: #334155; --light: #F1F5F9; --text: #0F172A; --border: #E2E8F0; }
    body { background-color: var(--light); color: var(--text); }
    .navbar-dark { background-color: var(--primary) !important; }
    .card { border: 1px solid var(--border); }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark mb-4"><div class="container"><span class="navbar-brand">{{ .Title }}</span></div></nav>
  <div class="container">
    <div class="card"><div class="card-body">
      <table class="table table-striped table-bordered" id="tasksTable">
        <thead><tr><th>Name</th><th>Type</th><th>Detail</th><th>Main score</th><th>Languages</th></tr></thead>
        <tbody>
        {{- range .Rows }}
          <tr><td>{{ .Name }}</td><td>{{ .Type }}</td><td>{{ .Detail }}</td><td>{{ .MainScore }}</td><td>{{ .Languages }}</td></tr>
        {{- end }}
        </tbody>
      </table>
    </div></div>
  </div>
  <script>
    const reportData = {{ .Payload }};
  </script>
</body>
</html>
`
