// internal/advisor/advisor.go
//
// Advisory client: sends a question plus a game-state snapshot to a remote
// text-generation model and returns free-form text.
// Responsibilities:
//   - Refuse to submit when required input is missing (ErrMissingInput).
//   - Allow a single outstanding request per Service (ErrBusy).
//   - Replace every remote failure or empty reply with a fixed fallback text.
//   - Record each completed call in an optional Recorder.
//
// Calls are single-shot: no retry, no timeout beyond the caller's context.

package advisor

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/terraform-os/internal/tracker"
)

var (
	// ErrMissingInput means the request was not submitted.
	ErrMissingInput = errors.New("missing input")
	// ErrBusy means another request is still outstanding.
	ErrBusy = errors.New("advisor busy")
)

// Fixed texts returned instead of model output.
const (
	TacticalFailureText = "Error connecting to strategic command. Please check your connection."
	TacticalEmptyText   = "Unable to generate advice at this time."
	SetupFailureText    = "Could not perform analysis."
	SetupEmptyText      = "Analysis failed."
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Kind tells the two advisory operations apart.
type Kind string

const (
	KindTactical Kind = "tactical"
	KindSetup    Kind = "setup"
)

// Advice is the text to display, verbatim.
type Advice struct {
	Kind     Kind   `json:"kind"`
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"` // Text is one of the fixed fallback messages
	Model    string `json:"model"`
}

// Advisor is the narrow interface the HTTP layer depends on.
type Advisor interface {
	TacticalAdvice(ctx context.Context, query string, s tracker.State) (Advice, error)
	SetupAnalysis(ctx context.Context, corpA, corpB, cards string) (Advice, error)
}

// Request is one call to a Generator.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float32
}

// Generator performs the remote text generation.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Recorder receives a transcript entry for every completed call.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Service implements Advisor on top of a Generator.
type Service struct {
	gen   Generator
	model string
	rec   Recorder
	busy  atomic.Bool
	now   func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(s *Service) {
		if model != "" {
			s.model = model
		}
	}
}

// WithRecorder logs every call to rec.
func WithRecorder(rec Recorder) Option {
	return func(s *Service) { s.rec = rec }
}

// NewService builds a Service. A nil gen behaves like a generator that always fails.
func NewService(gen Generator, opts ...Option) *Service {
	if gen == nil {
		gen = Disabled{}
	}
	s := &Service{gen: gen, model: DefaultModel, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Model reports the model name requests are sent to.
func (s *Service) Model() string { return s.model }

// TacticalAdvice answers a free-text question about the current game state.
func (s *Service) TacticalAdvice(ctx context.Context, query string, st tracker.State) (Advice, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Advice{}, ErrMissingInput
	}
	req := Request{
		Model:       s.model,
		System:      TacticalSystemPrompt(st),
		Prompt:      query,
		Temperature: tacticalTemperature,
	}
	return s.run(ctx, KindTactical, query, req, TacticalFailureText, TacticalEmptyText)
}

// SetupAnalysis compares two corporations against a starting hand.
// The card list may be empty; both corporation names are required.
func (s *Service) SetupAnalysis(ctx context.Context, corpA, corpB, cards string) (Advice, error) {
	corpA, corpB, cards = strings.TrimSpace(corpA), strings.TrimSpace(corpB), strings.TrimSpace(cards)
	if corpA == "" || corpB == "" {
		return Advice{}, ErrMissingInput
	}
	prompt := SetupPrompt(corpA, corpB, cards)
	req := Request{
		Model:       s.model,
		System:      setupSystemPrompt,
		Prompt:      prompt,
		Temperature: setupTemperature,
	}
	return s.run(ctx, KindSetup, prompt, req, SetupFailureText, SetupEmptyText)
}

// run performs the single outstanding call and maps failures to fallbacks.
func (s *Service) run(ctx context.Context, kind Kind, input string, req Request, failText, emptyText string) (Advice, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Advice{}, ErrBusy
	}
	defer s.busy.Store(false)

	adv := Advice{Kind: kind, Model: s.model}
	text, err := s.gen.Generate(ctx, req)
	switch {
	case err != nil:
		log.Error().Err(err).Str("kind", string(kind)).Str("model", s.model).Msg("advisor request failed")
		adv.Text, adv.Fallback = failText, true
	case strings.TrimSpace(text) == "":
		log.Warn().Str("kind", string(kind)).Str("model", s.model).Msg("advisor returned empty text")
		adv.Text, adv.Fallback = emptyText, true
	default:
		adv.Text = text
	}

	if s.rec != nil {
		e := Entry{
			Kind:      kind,
			Input:     input,
			Response:  adv.Text,
			Fallback:  adv.Fallback,
			Model:     s.model,
			CreatedAt: s.now().UTC(),
		}
		// Recorded even if the client has already gone away.
		if err := s.rec.Record(context.WithoutCancel(ctx), e); err != nil {
			log.Warn().Err(err).Msg("record advice")
		}
	}
	return adv, nil
}

// Disabled is the Generator used when no API key is configured.
type Disabled struct{}

var errNotConfigured = errors.New("advisor: no API key configured")

func (Disabled) Generate(context.Context, Request) (string, error) { return "", errNotConfigured }
