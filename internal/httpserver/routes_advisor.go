// internal/httpserver/routes_advisor.go
//
// HTTP routes for the strategic advisor.
// Exposes three endpoints under /advisor:
//   - POST /advisor/tactical → free-text question answered against the current state
//   - POST /advisor/setup    → compare two corporations against a starting hand
//   - GET  /advisor/history  → most recent recorded calls (?limit=N, default 20, max 100)
//
// All three sit behind the optional access gate; the two POSTs are rate limited per IP.
// Missing input answers 204 with no body (nothing was sent to the model), and a
// second call while one is outstanding answers 409.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/terraform-os/internal/advisor"
)

// advisorServer wraps dependencies for /advisor endpoints.
type advisorServer struct {
	srv     *Server
	advisor advisor.Advisor
	history HistoryReader
}

type tacticalReq struct {
	Query string `json:"query"`
}

type setupReq struct {
	CorporationA string `json:"corporationA"`
	CorporationB string `json:"corporationB"`
	Cards        string `json:"cards"`
}

// mountAdvisor registers all /advisor routes. A nil adv disables the advisor
// entirely (every request is answered with fallback text).
func (s *Server) mountAdvisor(adv advisor.Advisor, history HistoryReader, limiter *ipLimiter) {
	if adv == nil {
		adv = advisor.NewService(nil)
	}
	a := &advisorServer{srv: s, advisor: adv, history: history}
	s.r.Route("/advisor", func(r chi.Router) {
		r.Use(s.requireAccess())
		r.With(limiter.middleware).Post("/tactical", a.handleTactical)
		r.With(limiter.middleware).Post("/setup", a.handleSetup)
		r.Get("/history", a.handleHistory)
	})
}

// handleTactical snapshots the tracker and asks for tactical advice.
func (a *advisorServer) handleTactical(w http.ResponseWriter, r *http.Request) {
	var body tacticalReq
	if err := decodeOptional(r, &body); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	st, err := a.srv.store.Snapshot(r.Context())
	if err != nil {
		httpError(w, http.StatusInternalServerError, "snapshot_failed")
		return
	}
	adv, err := a.advisor.TacticalAdvice(r.Context(), body.Query, st)
	a.respond(w, r, adv, err)
}

// handleSetup asks for a corporation/hand comparison.
func (a *advisorServer) handleSetup(w http.ResponseWriter, r *http.Request) {
	var body setupReq
	if err := decodeOptional(r, &body); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	adv, err := a.advisor.SetupAnalysis(r.Context(), body.CorporationA, body.CorporationB, body.Cards)
	a.respond(w, r, adv, err)
}

// decodeOptional decodes a JSON body; an empty body leaves v zeroed.
func decodeOptional(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (a *advisorServer) respond(w http.ResponseWriter, r *http.Request, adv advisor.Advice, err error) {
	switch {
	case errors.Is(err, advisor.ErrMissingInput):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, advisor.ErrBusy):
		httpError(w, http.StatusConflict, "advisor_busy")
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("advisor")
		httpError(w, http.StatusInternalServerError, "advisor_failed")
	default:
		writeJSON(w, http.StatusOK, adv)
	}
}

// handleHistory lists recorded advisory calls, newest first.
func (a *advisorServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := advisor.DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httpError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = min(n, advisor.MaxHistoryLimit)
	}
	if a.history == nil {
		writeJSON(w, http.StatusOK, []advisor.Entry{})
		return
	}
	entries, err := a.history.Recent(r.Context(), limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("advice history")
		httpError(w, http.StatusInternalServerError, "history_failed")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
