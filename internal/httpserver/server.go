// internal/httpserver/server.go
//
// HTTP server wiring for the TerraForm OS backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Tracker endpoints: /state, /state/actions, /projection, /milestones, /catalog, /placement.
//   - Advisor endpoints (optional access gate, rate limited): mounted under /advisor.
//   - Access token endpoints: /auth/token, /auth/logout.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the token cookie works).
//   - Tracker routes run under a request timeout; advisor routes do not, the
//     advisory call is bounded only by the client connection.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/terraform-os/internal/advisor"
	"github.com/robalobadob/terraform-os/internal/catalog"
	"github.com/robalobadob/terraform-os/internal/placement"
	"github.com/robalobadob/terraform-os/internal/store"
	"github.com/robalobadob/terraform-os/internal/tracker"
)

// HistoryReader lists recorded advisory calls.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]advisor.Entry, error)
}

// AuthOptions configures the access gate in front of the advisor routes.
type AuthOptions struct {
	Secret         string // HS256 signing key
	PassphraseHash string // bcrypt hash; empty disables the gate
	TokenDays      int
	CookieName     string
	Secure         bool // Secure + SameSite=None cookies
}

// Deps bundles everything the server needs.
type Deps struct {
	Store          store.Store
	Catalog        *catalog.Catalog
	Advisor        advisor.Advisor
	History        HistoryReader // optional
	Auth           AuthOptions
	ClientOrigin   string
	RequestTimeout time.Duration
	RatePerMinute  int
	RateBurst      int
}

// Server bundles router, state store, catalog and advisor.
type Server struct {
	r       *chi.Mux
	store   store.Store
	catalog *catalog.Catalog
	auth    AuthOptions
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 10 * time.Second
	}
	if d.Auth.CookieName == "" {
		d.Auth.CookieName = "tfos_token"
	}
	if d.Auth.TokenDays <= 0 {
		d.Auth.TokenDays = 14
	}
	s := &Server{r: chi.NewRouter(), store: d.Store, catalog: d.Catalog, auth: d.Auth}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(cors(d.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"terraform-os","endpoints":["/health","/state","POST /state/actions","/projection","/milestones","/catalog","POST /placement","/advisor/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Tracker (bounded handler time)
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(d.RequestTimeout))
		r.Get("/state", s.handleState)
		r.Post("/state/actions", s.handleAction)
		r.Get("/projection", s.handleProjection)
		r.Get("/milestones", s.handleMilestones)
		r.Post("/milestones/{key}/toggle", s.handleToggleMilestone)
		r.Get("/catalog", s.handleCatalog)
		r.Post("/placement", s.handlePlacement)
	})

	s.mountAuthRoutes()
	s.mountAdvisor(d.Advisor, d.History, newIPLimiter(d.RatePerMinute, d.RateBurst))

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one zerolog line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// ------------------------------ TRACKER ------------------------------------

// handleState returns the current snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Snapshot(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("snapshot")
		httpError(w, http.StatusInternalServerError, "snapshot_failed")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// actionError is the 400 body for a malformed action.
type actionError struct {
	Error      string `json:"error"`
	Detail     string `json:"detail"`
	Suggestion string `json:"suggestion,omitempty"`
}

// handleAction applies one Action and returns the new snapshot.
// Out-of-range values are clamped, not rejected; only malformed actions fail.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var a tracker.Action
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		httpError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.applyAndRespond(w, r, a)
}

// handleToggleMilestone flips a milestone's claimed flag.
func (s *Server) handleToggleMilestone(w http.ResponseWriter, r *http.Request) {
	s.applyAndRespond(w, r, tracker.Action{
		Field: tracker.FieldMilestone,
		Key:   chi.URLParam(r, "key"),
		Op:    tracker.OpToggle,
	})
}

func (s *Server) applyAndRespond(w http.ResponseWriter, r *http.Request, a tracker.Action) {
	st, err := s.store.Apply(r.Context(), a)
	if err != nil {
		body := actionError{Detail: err.Error()}
		var uk *tracker.UnknownKeyError
		switch {
		case errors.As(err, &uk):
			body.Error, body.Suggestion = "unknown_key", uk.Suggestion
		case errors.Is(err, tracker.ErrUnknownField):
			body.Error = "unknown_field"
		case errors.Is(err, tracker.ErrInvalidOp):
			body.Error = "invalid_op"
		default:
			log.Error().Err(err).Msg("apply action")
			httpError(w, http.StatusInternalServerError, "apply_failed")
			return
		}
		writeJSON(w, http.StatusBadRequest, body)
		return
	}
	hlog.FromRequest(r).Debug().
		Str("field", string(a.Field)).Str("key", a.Key).Str("op", string(a.Op)).Int("value", a.Value).
		Uint64("revision", st.Revision).Msg("action applied")
	writeJSON(w, http.StatusOK, st)
}

// handleProjection returns the next-generation forecast.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Snapshot(r.Context())
	if err != nil {
		httpError(w, http.StatusInternalServerError, "snapshot_failed")
		return
	}
	writeJSON(w, http.StatusOK, tracker.Project(st))
}

// handleMilestones returns the milestone race monitor.
func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Snapshot(r.Context())
	if err != nil {
		httpError(w, http.StatusInternalServerError, "snapshot_failed")
		return
	}
	writeJSON(w, http.StatusOK, tracker.MilestoneStatuses(st, s.requirements()))
}

func (s *Server) requirements() []tracker.Requirement {
	if s.catalog == nil {
		return tracker.DefaultRequirements()
	}
	return s.catalog.Milestones
}

// catalogRes is the payload of GET /catalog.
type catalogRes struct {
	*catalog.Catalog
	Bounds     map[string]tracker.Bounds `json:"bounds"`
	Resources  []tracker.Resource        `json:"resources"`
	Tags       []string                  `json:"tags"`
	Milestones []tracker.Requirement     `json:"milestones"`
}

// handleCatalog returns reference data plus the bounds of the global tracks.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	res := catalogRes{
		Catalog:    s.catalog,
		Bounds:     make(map[string]tracker.Bounds),
		Resources:  tracker.Resources(),
		Milestones: s.requirements(),
	}
	if res.Catalog == nil {
		res.Catalog = &catalog.Catalog{}
	}
	for _, p := range tracker.GlobalParams() {
		res.Bounds[p.String()] = tracker.BoundsOf(p)
	}
	for _, t := range tracker.Tags() {
		res.Tags = append(res.Tags, t.String())
	}
	writeJSON(w, http.StatusOK, res)
}

// handlePlacement previews the yield of a tile placement.
func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	var in placement.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpError(w, http.StatusBadRequest, "bad_json")
		return
	}
	y, err := placement.Calculate(in)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, actionError{Error: "unknown_bonus", Detail: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, y)
}
