package page

import "html/template"

var widgets = template.Must(template.New("widgets").Parse(`
{{define "title"}}<h1 class="title">{{.}}</h1>{{end}}
{{define "header"}}<h2>{{.}}</h2>{{end}}
{{define "subheader"}}<h3>{{.}}</h3>{{end}}
{{define "text"}}<p>{{.}}</p>{{end}}
{{define "caption"}}<p class="caption">{{.}}</p>{{end}}
{{define "svg"}}<figure class="chart">{{.}}</figure>{{end}}
{{define "anchor"}}<a id="{{.}}" class="anchor"></a>{{end}}
{{define "metric"}}<div class="metric"><span class="metric-label">{{.Label}}</span><span class="metric-value">{{.Value}}</span></div>{{end}}
{{define "table"}}<table class="data">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
</table>{{end}}
{{define "linkbutton"}}<a class="button secondary" href="{{.Href}}" target="_blank" rel="noopener" download>{{.Label}}</a>{{end}}
{{define "link"}}<a class="route-link" href="{{.Href}}">{{.Label}}</a>{{end}}
{{define "diagnostic"}}<div class="diagnostic" role="alert"><strong>{{.Title}}</strong>{{range .Details}}<p>{{.}}</p>{{end}}</div>{{end}}
{{define "iframe"}}<iframe class="embed" src="{{.Src}}" title="{{.Title}}" height="{{.Height}}" style="width:100%;height:{{.Height}}px" loading="lazy" allowfullscreen{{if .Sandbox}} sandbox="{{.Sandbox}}"{{end}}{{if .Allow}} allow="{{.Allow}}"{{end}}></iframe>{{end}}
{{define "image"}}<figure class="image"><img src="{{.Src}}" alt="{{.Caption}}"{{if .Width}} width="{{.Width}}"{{else}} style="width:100%"{{end}}>{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>{{end}}
{{define "imagegrid"}}<figure class="image-grid"><div class="grid" style="display:grid;grid-template-columns:repeat({{.Cols}},1fr);gap:8px">{{$w := .Width}}{{range .Rows}}{{range .}}<img src="{{.}}" alt=""{{if $w}} width="{{$w}}"{{else}} style="width:100%"{{end}}>{{end}}{{end}}</div>{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>{{end}}
{{define "slider"}}<label class="input">{{.Label}} <output>{{.Value}}</output><input type="range" name="{{.Key}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}" onchange="this.form.submit()"></label>{{end}}
{{define "number"}}<label class="input">{{.Label}}<input type="number" name="{{.Key}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}" onchange="this.form.submit()"></label>{{end}}
{{define "select"}}<label class="input">{{.Label}}<select name="{{.Key}}" onchange="this.form.submit()">{{$v := .Value}}{{range .Options}}<option value="{{.Value}}"{{if eq .Value $v}} selected{{end}}>{{.Label}}</option>{{end}}</select></label>{{end}}
{{define "checkbox"}}<label class="input checkbox"><input type="hidden" name="{{.Key}}.present" value="1"><input type="checkbox" name="{{.Key}}"{{if .Checked}} checked{{end}} onchange="this.form.submit()"> {{.Label}}</label>{{end}}
{{define "button"}}<button type="submit" name="{{.Key}}" value="1">{{.Label}}</button>{{end}}
`))
