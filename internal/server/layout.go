package server

import (
	"html/template"

	"github.com/vk/mathlab/internal/nav"
)

// socketIOClient is the browser client of the live-reload hub. The hub does
// not serve its own client bundle.
const socketIOClient = "https://cdn.socket.io/4.7.5/socket.io.min.js"

// document is the data of one rendered view.
type document struct {
	Title      string
	SiteTitle  string
	Route      string
	Groups     []nav.Group
	Body       template.HTML
	Scroll     template.HTML
	LiveReload bool
	Version    uint64
}

var layout = template.Must(template.New("layout").Funcs(template.FuncMap{
	"socketIOClient": func() string { return socketIOClient },
}).Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if and .Title (ne .Title .SiteTitle)}}{{.Title}} · {{end}}{{.SiteTitle}}</title>
<style>
body { margin: 0; display: flex; font-family: "Noto Sans KR", system-ui, sans-serif; color: #222; }
nav.sidebar { width: 18rem; min-height: 100vh; padding: 1rem; background: #f5f6f8; box-sizing: border-box; }
nav.sidebar ul { list-style: none; padding-left: 0.8rem; margin: 0.2rem 0; }
nav.sidebar li.current > a { font-weight: bold; }
nav.sidebar summary { cursor: pointer; font-weight: bold; margin-top: 0.6rem; }
main { flex: 1; padding: 1.5rem 2rem; max-width: 60rem; }
.diagnostic { border: 2px solid #c0392b; border-radius: 6px; padding: 0.6rem 1rem; margin: 1rem 0; background: #fdf0ef; }
.caption { color: #666; font-size: 0.9em; }
.route-link { display: block; margin: 0.2rem 0; }
.input { display: block; margin: 0.5rem 0; }
.metric { display: inline-block; margin: 0.5rem 1.5rem 0.5rem 0; }
.metric-value { display: block; font-size: 1.6em; }
table.data { border-collapse: collapse; }
table.data td, table.data th { border: 1px solid #ddd; padding: 0.2rem 0.6rem; }
</style>
</head>
<body>
<nav class="sidebar">
<a class="route-link" href="/?route=home"><strong>{{.SiteTitle}}</strong></a>
{{range .Groups}}<details{{if .Open}} open{{end}}>
<summary>{{.Subject.Label}}</summary>
{{if .Outline}}{{template "entries" .Outline}}{{end}}
{{if .Activities}}<p class="caption">활동</p>{{template "entries" .Activities}}{{end}}
</details>
{{end}}</nav>
<main>
{{.Scroll}}
<form method="get" action="/" id="view">
<input type="hidden" name="route" value="{{.Route}}">
{{.Body}}
</form>
</main>
{{if .LiveReload}}<script src="{{socketIOClient}}"></script>
<script>
(function () {
  var version = {{.Version}};
  if (!window.io) { return; }
  var socket = window.io({ transports: ["websocket"] });
  socket.on("refresh", function (msg) {
    if (msg && msg.version !== version) { window.location.reload(); }
  });
})();
</script>{{end}}
</body>
</html>
{{define "entries"}}<ul>{{range .}}<li{{if .Current}} class="current"{{end}}><a href="{{.Href}}">{{.Label}}</a>{{if .Children}}{{template "entries" .Children}}{{end}}</li>{{end}}</ul>{{end}}`))
