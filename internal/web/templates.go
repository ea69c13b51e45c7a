package web

import (
	"bytes"
	"html/template"
)

type templates struct {
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"markClass": func(m string) string {
			switch m {
			case "X":
				return "mark-x"
			case "O":
				return "mark-o"
			default:
				return "mark-empty"
			}
		},
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic Tac Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>` + styles + `</style>
</head><body>{{template "content" .}}</body></html>`))
	// The board is defined in the page set too so game can include it.
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>Tic Tac Toe</h1>
<p class="subtitle">Choose Mode</p>
<form action="/game" method="post"><input type="hidden" name="mode" value="ai"><button class="primary">Play vs AI</button></form>
<form action="/game" method="post"><input type="hidden" name="mode" value="friend"><button class="friend">Play with Friend</button></form>
<p class="tip">The AI tries win, block, center and corner moves.</p>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h2>{{.Title}}</h2>
{{template "board" .Board}}
<form action="/game/{{.ID}}/leave" method="post"><button class="back">Back</button></form>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const boardTemplate = `
<div id="board">
  <div class="status">{{.Status}}</div>
  {{if .AINote}}<div class="note">{{.AINote}}</div>{{end}}
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{range $row := .Rows}}
  <div class="row">
    {{range $row}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post" action="/game/{{$.ID}}/play">
        <input type="hidden" name="r" value="{{.Row}}">
        <input type="hidden" name="c" value="{{.Col}}">
        <button type="submit" class="cell {{markClass .Mark}}"{{if .Disabled}} disabled{{end}}>{{.Mark}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
  <form hx-post="/game/{{.ID}}/restart" hx-target="#board" hx-swap="outerHTML" method="post" action="/game/{{.ID}}/restart">
    <button class="primary">{{if .Over}}Play Again{{else}}Restart{{end}}</button>
  </form>
</div>
`

const styles = `
body { font-family: sans-serif; background: linear-gradient(#fcfcf7, #e0edff); min-height: 100vh; text-align: center; }
.row { display: flex; justify-content: center; gap: 6px; margin-bottom: 6px; }
.row form { margin: 0; }
.cell { width: 80px; height: 80px; font-size: 38px; background: #fff; border: none; }
.mark-x { color: #0a66e6; }
.mark-o { color: #e61414; }
.primary { background: #3899db; color: #fff; }
.friend { background: #f2d14d; }
.back { background: #db3850; color: #fff; }
.alert { color: #db3850; }
`
