package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyQuery is returned for blank input.
	ErrEmptyQuery = errors.New("empty query")
	// ErrSuperseded is returned to a session submission that a newer submission replaced.
	ErrSuperseded = errors.New("query superseded by a newer submission")
)

// NoMatchError reports input that fits none of the templates.
type NoMatchError struct {
	Query       string
	Suggestions []string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("query %q matched no template", e.Query)
}

// Message is the text shown to the user.
func (e *NoMatchError) Message() string {
	return "Query format not recognized. Try one of these formats:\n" + strings.Join(e.Suggestions, "\n")
}

// UnresolvedEntityError reports a structural template match whose entities
// could not be resolved against the static lists.
type UnresolvedEntityError struct {
	Template   TemplateID
	Unresolved []Entity
	Available  []string
	// Closest are fuzzy-ranked indicator names for the raw indicator text.
	Closest []string
}

func (e *UnresolvedEntityError) Error() string {
	kinds := make([]string, 0, len(e.Unresolved))
	for _, entity := range e.Unresolved {
		kinds = append(kinds, fmt.Sprintf("%s %q", entity.Kind, entity.Raw))
	}
	return fmt.Sprintf("template %s: unresolved %s", e.Template, strings.Join(kinds, ", "))
}

// Message is the text shown to the user.
func (e *UnresolvedEntityError) Message() string {
	prefix := "Indicator not found."
	if e.Template == TemplateGapAnalysis {
		prefix = "Missing required data."
	}
	return fmt.Sprintf("%s Available indicators: %s", prefix, strings.Join(e.Available, ", "))
}

const (
	emptyQueryMessage = "Please enter a query to analyze."
	unexpectedMessage = "An unexpected error occurred while processing your query."
	supersededMessage = "This query was replaced by a newer one."
	cancelledMessage  = "Query processing was cancelled."
)

// UserMessage maps an error returned by this package to the text shown to the user.
func UserMessage(err error) string {
	var noMatch *NoMatchError
	var unresolved *UnresolvedEntityError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &noMatch):
		return noMatch.Message()
	case errors.As(err, &unresolved):
		return unresolved.Message()
	case errors.Is(err, ErrEmptyQuery):
		return emptyQueryMessage
	case errors.Is(err, ErrSuperseded):
		return supersededMessage
	case isContextError(err):
		return cancelledMessage
	default:
		return unexpectedMessage
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
