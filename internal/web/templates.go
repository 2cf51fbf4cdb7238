package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/google/uuid"

	"github.com/jaminalder/tic-tac-toe-bot/internal/app"
	"github.com/jaminalder/tic-tac-toe-bot/internal/bot"
	"github.com/jaminalder/tic-tac-toe-bot/internal/domain"
)

type templates struct {
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellSymbol": func(c domain.Cell) string { return c.String() },
		"add":        func(a, b int) int { return a + b },
		"mul":        func(a, b int) int { return a * b },
		"onLine": func(g domain.Game, i int) bool {
			return g.Over && g.Winner != domain.Empty && g.WinLine.Contains(i)
		},
		"difficulties": func() []bot.Difficulty { return bot.Difficulties },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic Tac Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>.win{background:#ffe08a}.cell{width:3em;height:3em}</style>
</head><body>{{template "content" .}}</body></html>`))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic Tac Toe</h1>
<p>Play vs a bot, choose difficulty</p>
<form action="/game" method="post">
  <select name="difficulty">{{range difficulties}}<option value="{{.}}"{{if eq .String "medium"}} selected{{end}}>{{.}}</option>{{end}}</select>
  <button>Create</button>
</form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div hx-sse="swap:board">{{.BoardHTML}}</div>
</div>`))
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, data any) []byte {
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.Bytes()
}

const boardTemplate = `
<div id="board">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="status">{{.Status}}</div>
  <div class="score">Player {{.Score.X}} / Draws {{.Score.Draw}} / Bot {{.Score.O}}</div>
  <form hx-post="/game/{{.ID}}/difficulty" hx-target="#board" hx-swap="outerHTML" method="post">
    {{range difficulties}}<button name="difficulty" value="{{.}}"{{if eq . $.Difficulty}} class="ghost"{{end}}>{{.}}</button>{{end}}
  </form>
  {{range $r := iter 3}}
  <div class="row">
    {{range $c := iter 3}}{{$i := add (mul $r 3) $c}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="i" value="{{$i}}">
        <button type="submit" class="cell{{if onLine $.Game $i}} win{{end}}" aria-label="cell-{{$i}}">{{cellSymbol (index $.Game.Board $i)}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
  <form hx-post="/game/{{.ID}}/reset" hx-target="#board" hx-swap="outerHTML" method="post"><button>Reset</button></form>
  <form hx-post="/game/{{.ID}}/reset-score" hx-target="#board" hx-swap="outerHTML" method="post"><button>Reset Score</button></form>
</div>
`

// boardData is what the board fragment renders.
type boardData struct {
	ID         string
	Game       domain.Game
	Difficulty bot.Difficulty
	Score      app.Score
	Status     string
	Error      string
}

func newBoardData(gs app.GameState, errMsg string) boardData {
	return boardData{
		ID:         gs.ID,
		Game:       gs.Game,
		Difficulty: gs.Difficulty,
		Score:      gs.Score,
		Status:     gs.Status(),
		Error:      errMsg,
	}
}

const playerCookie = "player_id"

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookie); err == nil && c.Value != "" {
		return c.Value
	}
	v := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: playerCookie, Value: v, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	return v
}
