package main

import (
	"html/template"
	"time"
)

var pageFuncs = template.FuncMap{
	"day": func(ts *time.Time) string {
		if ts == nil {
			return ""
		}
		return ts.Format(dateLayout)
	},
	"stamp": func(ts time.Time) string {
		return ts.Format("2006-01-02 15:04 MST")
	},
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Guest Post Report</title>
  <style>
    :root { --ink: #1d2430; --muted: #5f6b7a; --line: #dde3ea; --accent: #2f6fdf; --bad: #b3261e; }
    body { font-family: system-ui, sans-serif; color: var(--ink); margin: 0; background: #f6f8fb; }
    header { background: #fff; border-bottom: 1px solid var(--line); padding: 18px 28px; }
    main { display: grid; grid-template-columns: 260px minmax(0, 1fr); gap: 24px; padding: 24px 28px; }
    aside, section { background: #fff; border: 1px solid var(--line); border-radius: 8px; padding: 16px 18px; }
    section { margin-bottom: 20px; }
    h1 { font-size: 20px; margin: 0; }
    h2 { font-size: 16px; margin: 0 0 12px; }
    table { border-collapse: collapse; width: 100%; font-size: 13px; }
    th, td { border-bottom: 1px solid var(--line); padding: 6px 8px; text-align: left; vertical-align: top; }
    th { color: var(--muted); font-weight: 600; }
    label { display: block; font-size: 13px; color: var(--muted); margin: 10px 0 4px; }
    select, input { width: 100%; box-sizing: border-box; }
    .error { color: var(--bad); font-weight: 600; }
    .stats { display: grid; grid-template-columns: repeat(3, minmax(0, 1fr)); gap: 12px; }
    .stat { border: 1px solid var(--line); border-radius: 6px; padding: 10px; }
    .stat b { display: block; font-size: 22px; }
    .muted { color: var(--muted); font-size: 13px; }
    .bar { fill: var(--accent); }
    .axis { stroke: var(--muted); }
    .tick { font-size: 10px; fill: var(--muted); }
  </style>
</head>
<body>
<header>
  <h1>Guest Post Report</h1>
  <form method="post" action="/upload" enctype="multipart/form-data">
    <input type="file" name="file" accept=".xlsx,.xlsm,.csv" style="width:auto" />
    <button type="submit">Upload</button>
  </form>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
</header>
{{if .HasData}}
<main>
  <aside>
    <h2>Filters</h2>
    <form method="get" action="/">
      <input type="hidden" name="month" value="{{.Month}}" />
      <label for="keyword">Keyword</label>
      <select id="keyword" name="keyword">
        <option value="">All</option>
        {{range .Keywords}}<option value="{{.}}"{{if eq . $.Form.Keyword}} selected{{end}}>{{.}}</option>{{end}}
      </select>
      <label for="url">URL</label>
      <select id="url" name="url">
        <option value="">All</option>
        {{range .URLs}}<option value="{{.}}"{{if eq . $.Form.URL}} selected{{end}}>{{.}}</option>{{end}}
      </select>
      <label>Date filter</label>
      <select name="date_mode">
        <option value="specific"{{if eq .Form.DateMode "specific"}} selected{{end}}>Specific date</option>
        <option value="range"{{if eq .Form.DateMode "range"}} selected{{end}}>Date range</option>
      </select>
      <label for="date">Date</label>
      <input id="date" type="date" name="date" value="{{.Form.Date}}" />
      <label for="from">From</label>
      <input id="from" type="date" name="from" value="{{.Form.From}}" />
      <label for="to">To</label>
      <input id="to" type="date" name="to" value="{{.Form.To}}" />
      <p><button type="submit">Apply</button></p>
    </form>
    <p class="muted">{{.FileName}} uploaded {{stamp .UploadedAt}}</p>
  </aside>
  <div>
    <section>
      <h2>Data Overview</h2>
      <details>
        <summary>Cleaned sheet ({{len .Rows}} rows)</summary>
        <table>
          <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
          <tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
        </table>
      </details>
      <details open>
        <summary>Keyword and URL pairs ({{len .Pairs}})</summary>
        <table>
          <thead><tr><th>Title</th><th>Publish Date</th><th>Keyword</th><th>URL</th><th>Live Link</th></tr></thead>
          <tbody>{{range .Pairs}}<tr><td>{{.Title}}</td><td>{{day .PublishDate}}</td><td>{{.Keyword}}</td><td>{{.URL}}</td><td>{{.LiveLink}}</td></tr>{{end}}</tbody>
        </table>
      </details>
    </section>

    <section id="filtered">
      <h2>Filtered Results ({{len .Filtered}})</h2>
      {{if .Filtered}}
      <table>
        <thead><tr><th>Title</th><th>Publish Date</th><th>Keyword</th><th>URL</th></tr></thead>
        <tbody>{{range .Filtered}}<tr><td>{{.Title}}</td><td>{{day .PublishDate}}</td><td>{{.Keyword}}</td><td>{{.URL}}</td></tr>{{end}}</tbody>
      </table>
      {{else}}<p class="muted">No rows match the current filters.</p>{{end}}
    </section>

    <section id="summary">
      <h2>Monthly Summary</h2>
      {{if .Months}}
      <form method="get" action="/">
        <select name="month" onchange="this.form.submit()">
          {{range .Months}}<option value="{{.}}"{{if eq . $.Month}} selected{{end}}>{{.}}</option>{{end}}
        </select>
      </form>
      {{end}}
      {{with .Summary}}
      <div class="stats">
        <div class="stat">Total posts<b>{{.TotalPosts}}</b></div>
        <div class="stat">Unique keywords<b>{{.UniqueKeywords}}</b></div>
        <div class="stat">Unique URLs<b>{{.UniqueURLs}}</b></div>
      </div>
      <h2 style="margin-top:16px">URLs without guest posts in {{.Month}}</h2>
      {{if .UnusedURLs}}<ul>{{range .UnusedURLs}}<li>{{.}}</li>{{end}}</ul>
      {{else}}<p>All URLs received guest posts!</p>{{end}}
      {{else}}<p class="muted">No dated rows in this upload.</p>{{end}}
    </section>

    <section id="chart">
      <h2>Guest Posts Over Time</h2>
      {{if .Chart.Empty}}<p class="muted">Nothing to plot for {{.Month}}.</p>{{else}}
      <svg width="{{.Chart.Width}}" height="{{.Chart.Height}}" role="img" aria-label="Guest posts per day">
        <line class="axis" x1="40" y1="{{.Chart.BaseY}}" x2="{{.Chart.Width}}" y2="{{.Chart.BaseY}}" />
        <text class="tick" x="4" y="24">{{.Chart.MaxCount}}</text>
        {{range .Chart.Bars}}
        <rect class="bar" x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}"><title>{{.Label}}: {{.Count}}</title></rect>
        <text class="tick" x="{{.LabelX}}" y="{{.LabelY}}" text-anchor="end" transform="rotate(-45 {{.LabelX}} {{.LabelY}})">{{.Label}}</text>
        {{end}}
      </svg>
      {{end}}
    </section>

    <section id="compare">
      <h2>Compare Two Months</h2>
      {{if .Months}}
      <form method="get" action="/">
        <input type="hidden" name="month" value="{{.Month}}" />
        <select name="a">{{range .Months}}<option value="{{.}}"{{if eq . $.CompareA}} selected{{end}}>{{.}}</option>{{end}}</select>
        <select name="b">{{range .Months}}<option value="{{.}}"{{if eq . $.CompareB}} selected{{end}}>{{.}}</option>{{end}}</select>
        <p><button type="submit">Compare</button></p>
      </form>
      {{end}}
      {{with .Comparison}}
      <table>
        <thead><tr><th>Month</th><th>Total Posts</th><th>Unique Keywords</th><th>Unique URLs</th></tr></thead>
        <tbody>{{range .Rows}}<tr><td>{{.Month}}</td><td>{{.TotalPosts}}</td><td>{{.UniqueKeywords}}</td><td>{{.UniqueURLs}}</td></tr>{{end}}</tbody>
      </table>
      {{else}}<p class="muted">Pick two different months to compare.</p>{{end}}
    </section>
  </div>
</main>
{{else if not .Error}}
<main><section><p>Upload a guest post spreadsheet to see the report.</p></section></main>
{{end}}
</body>
</html>
`))
