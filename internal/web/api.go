package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jaminalder/tic-tac-toe-bot/internal/bot"
	"github.com/jaminalder/tic-tac-toe-bot/internal/domain"
)

type evaluateReq struct {
	Board []string `json:"board"`
}

type evaluateResp struct {
	Outcome string `json:"outcome"`
	Winner  string `json:"winner,omitempty"`
	Line    []int  `json:"line,omitempty"`
}

type moveReq struct {
	Board      []string `json:"board"`
	Difficulty string   `json:"difficulty"`
}

type moveResp struct {
	Move int `json:"move"`
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
}

// decodeBoard parses cells and rejects boards no game could produce.
func decodeBoard(cells []string) (domain.Board, error) {
	b, err := domain.ParseBoard(cells)
	if err != nil {
		return b, err
	}
	return b, b.Validate()
}

// apiEvaluate reports the outcome of a board and its winning line. Any
// well-formed board is scored, reachable in play or not.
func (h *handlers) apiEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}
	b, err := domain.ParseBoard(req.Board)
	if err != nil {
		badRequest(w, err)
		return
	}
	res := domain.Evaluate(b)
	resp := evaluateResp{Outcome: res.Outcome.String()}
	if res.Won {
		resp.Winner = res.Outcome.Winner().String()
		resp.Line = res.Line[:]
	}
	writeJSON(w, http.StatusOK, resp)
}

// apiMove returns the bot's move, or -1 when none is possible.
func (h *handlers) apiMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}
	b, err := decodeBoard(req.Board)
	if err != nil {
		badRequest(w, err)
		return
	}
	d := h.level
	if req.Difficulty != "" {
		if d, err = bot.ParseDifficulty(req.Difficulty); err != nil {
			badRequest(w, err)
			return
		}
	}
	move, err := h.sel.Select(b, d)
	switch {
	case errors.Is(err, bot.ErrNoRandom):
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	case err != nil:
		badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moveResp{Move: move})
}
