package web

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jaminalder/tic-tac-toe-bot/internal/app"
	"github.com/jaminalder/tic-tac-toe-bot/internal/bot"
	"github.com/jaminalder/tic-tac-toe-bot/internal/domain"
)

type handlers struct {
	svc       *app.Service
	sel       *bot.Selector
	tpl       *templates
	level     bot.Difficulty
	heartbeat time.Duration
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
	return renderTemplate(h.tpl.board, newBoardData(gs, errMsg))
}

func (h *handlers) writeBoard(w http.ResponseWriter, gs app.GameState, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(gs, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	level := h.level
	if v := r.Form.Get("difficulty"); v != "" {
		d, err := bot.ParseDifficulty(v)
		if err != nil {
			http.Error(w, "unknown difficulty", http.StatusBadRequest)
			return
		}
		level = d
	}
	gs, err := h.svc.CreateGame(level)
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// ensure cookie and auto-claim seat
	pid := ensurePlayerCookie(w, r)
	_, _, _ = h.svc.Join(id, pid)

	gs, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := struct {
		ID        string
		BoardHTML template.HTML
	}{ID: gs.ID, BoardHTML: template.HTML(h.renderBoard(*gs, ""))}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, data))
}

func (h *handlers) join(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	_, gs, err := h.svc.Join(id, pid)
	if err != nil || gs == nil {
		http.NotFound(w, r)
		return
	}
	h.writeBoard(w, *gs, "")
}

// cellFromForm reads either "i" (0..8) or the row/column pair "r" and "c".
func cellFromForm(r *http.Request) int {
	if v := r.Form.Get("i"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return -1
		}
		return i
	}
	ri, err1 := strconv.Atoi(r.Form.Get("r"))
	ci, err2 := strconv.Atoi(r.Form.Get("c"))
	if err1 != nil || err2 != nil || ri < 0 || ri > 2 || ci < 0 || ci > 2 {
		return -1
	}
	return ri*3 + ci
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	_ = r.ParseForm()
	gs, err := h.svc.Play(id, pid, cellFromForm(r))
	var errMsg string
	if err != nil {
		if gs == nil {
			if g, ok := h.svc.Get(id); ok {
				gs = g
			}
		}
		switch {
		case errors.Is(err, app.ErrNotYourTurn):
			errMsg = "Not your turn"
		case errors.Is(err, app.ErrNotAPlayer):
			errMsg = "You are a spectator"
		case errors.Is(err, domain.ErrOccupied):
			errMsg = "Cell is occupied"
		case errors.Is(err, domain.ErrOutOfBounds):
			errMsg = "Out of bounds"
		case errors.Is(err, domain.ErrGameOver):
			errMsg = "Game is over"
		default:
			errMsg = "Invalid move"
		}
	}
	if gs == nil {
		http.NotFound(w, r)
		return
	}
	h.writeBoard(w, *gs, errMsg)
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.Reset(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.writeBoard(w, *gs, "")
}

func (h *handlers) resetScore(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.ResetScore(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.writeBoard(w, *gs, "")
}

func (h *handlers) difficulty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	d, err := bot.ParseDifficulty(r.Form.Get("difficulty"))
	if err != nil {
		gs, ok := h.svc.Get(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(h.renderBoard(*gs, "Unknown difficulty"))
		return
	}
	gs, err := h.svc.SetDifficulty(id, d)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.writeBoard(w, *gs, "")
}

// writeEvent emits one SSE event; multi-line payloads become several data lines.
func writeEvent(w io.Writer, event string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(string(payload), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "board", b)
			flusher.Flush()
		}
	}
}
