package rest

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const (
	sessionCookie    = "player_session"
	sessionCookieAge = 30 * 24 * time.Hour
)

type handlers struct {
	logger  *slog.Logger
	manager gameManager
	tpl     *templates
}

func (that *handlers) page(w http.ResponseWriter, r *http.Request) {
	sessionID := ensureSessionCookie(w, r)
	that.render(w, that.tpl.page, that.manager.GetGame(r.Context(), sessionID))
}

func (that *handlers) board(w http.ResponseWriter, r *http.Request) {
	sessionID := ensureSessionCookie(w, r)
	that.render(w, that.tpl.board, that.manager.GetGame(r.Context(), sessionID))
}

func (that *handlers) cell(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "cell")

	cell, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		log.Debug("malformed cell index", "index", chi.URLParam(r, "index"))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sessionID := ensureSessionCookie(w, r)
	that.render(w, that.tpl.board, that.manager.MakeTurn(r.Context(), sessionID, cell))
}

func (that *handlers) reset(w http.ResponseWriter, r *http.Request) {
	sessionID := ensureSessionCookie(w, r)
	that.render(w, that.tpl.board, that.manager.ResetGame(r.Context(), sessionID))
}

func (that *handlers) mode(w http.ResponseWriter, r *http.Request) {
	sessionID := ensureSessionCookie(w, r)
	that.render(w, that.tpl.board, that.manager.ToggleMode(r.Context(), sessionID))
}

func (that *handlers) mute(w http.ResponseWriter, r *http.Request) {
	sessionID := ensureSessionCookie(w, r)
	that.render(w, that.tpl.board, that.manager.ToggleMute(r.Context(), sessionID))
}

func (that *handlers) render(w http.ResponseWriter, tpl *template.Template, snapshot usecase.Snapshot) {
	log := that.logger.With("method", "render")

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, newBoardData(snapshot)); err != nil {
		log.Error("failed to render template", "template", tpl.Name(), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Debug("failed to write response", "error", err)
	}
}

type cellData struct {
	Index   int
	Mark    string
	Enabled bool
}

type boardData struct {
	usecase.Snapshot

	Cells   []cellData
	Status  string
	VsAI    bool
	Polling bool
}

func newBoardData(snapshot usecase.Snapshot) boardData {
	view := snapshot.View

	cells := make([]cellData, entity.BoardSize)
	for i, mark := range view.Board {
		cells[i] = cellData{Index: i, Mark: string(mark), Enabled: view.CellEnabled(i)}
	}

	return boardData{
		Snapshot: snapshot,
		Cells:    cells,
		Status:   view.Status(),
		VsAI:     view.Mode == entity.ModeVsComputer,
		Polling:  view.AIThinking,
	}
}

// ensureSessionCookie returns the session id from the cookie, issuing a new one when the
// cookie is missing or not a uuid.
func ensureSessionCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionCookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}
