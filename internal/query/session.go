package query

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"askdata.insights.org/internal/logging"
)

// DefaultDelay is the pause between submission and parsing.
const DefaultDelay = 800 * time.Millisecond

const previewLength = 50

// State is the observable state of a session.
type State struct {
	Processing    bool         `json:"processing"`
	OriginalQuery string       `json:"originalQuery,omitempty"`
	Parsed        *ParsedQuery `json:"parsed,omitempty"`
	Error         string       `json:"error,omitempty"`
	// LastChart is the template of the last non-explain result, used as the
	// chart context for explain-chart queries.
	LastChart TemplateID `json:"lastChart,omitempty"`
}

// Session holds the query the user is currently working on. Later submissions
// supersede earlier ones; a superseded submission never updates the state.
type Session struct {
	processor *Processor
	delay     time.Duration
	logger    *slog.Logger

	mu         sync.Mutex
	generation uint64
	state      State
}

// NewSession returns an idle session. A nil processor uses Default and a
// negative delay is treated as zero.
func NewSession(processor *Processor, delay time.Duration, logger *slog.Logger) *Session {
	if processor == nil {
		processor = Default
	}
	if delay < 0 {
		delay = 0
	}
	return &Session{processor: processor, delay: delay, logger: logger}
}

// State returns a snapshot of the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() State {
	out := s.state
	if out.Parsed != nil {
		parsed := *out.Parsed
		out.Parsed = &parsed
	}
	return out
}

// Clear resets the session and discards any submission still in flight.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = State{}
}

// Submit processes query after the session delay. Blank input returns
// ErrEmptyQuery and leaves the state untouched. When another Submit or Clear
// happens during the delay, Submit returns ErrSuperseded.
func (s *Session) Submit(ctx context.Context, query string) (State, error) {
	if strings.TrimSpace(query) == "" {
		return s.State(), ErrEmptyQuery
	}

	s.mu.Lock()
	s.generation++
	generation := s.generation
	lastChart := s.state.LastChart
	s.state = State{Processing: true, OriginalQuery: query, LastChart: lastChart}
	s.mu.Unlock()

	logging.LogOperation(s.logger, "processing_query",
		slog.String("component", "query_session"),
		slog.String("query_preview", preview(query)))

	if err := wait(ctx, s.delay); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation == generation {
			s.state.Processing = false
			s.state.Error = UserMessage(err)
		}
		return s.snapshot(), err
	}

	parsed, err := s.processor.Process(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return s.snapshot(), ErrSuperseded
	}

	s.state.Processing = false
	if err != nil {
		s.state.Error = UserMessage(err)
		logging.LogError(s.logger, "query_failed", err,
			slog.String("component", "query_session"),
			slog.String("template", string(templateOf(err))))
		return s.snapshot(), err
	}

	s.state.Parsed = parsed
	if parsed.TemplateID != TemplateExplainChart {
		s.state.LastChart = parsed.TemplateID
	}
	return s.snapshot(), nil
}

func templateOf(err error) TemplateID {
	var unresolved *UnresolvedEntityError
	if errors.As(err, &unresolved) {
		return unresolved.Template
	}
	return ""
}

func wait(ctx context.Context, d time.Duration) error {
	if d == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func preview(query string) string {
	runes := []rune(query)
	if len(runes) <= previewLength {
		return query
	}
	return string(runes[:previewLength]) + "..."
}
