// Package query maps free-text questions onto the fixed query templates and
// resolves the indicator, place and peer-country names they mention.
package query

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	// ResolvedConfidence is reported for every returned match.
	ResolvedConfidence = 0.9
	// InitialConfidence is assigned on a structural match before entities resolve.
	InitialConfidence = 0.8
	closestLimit      = 3
)

// ParsedQuery is a template match with its resolved entities.
type ParsedQuery struct {
	TemplateID  TemplateID `json:"templateId"`
	Indicator   string     `json:"indicator,omitempty"`
	Place       string     `json:"place,omitempty"`
	PeerCountry string     `json:"peerCountry,omitempty"`
	Confidence  float64    `json:"confidence"`
}

type EntityKind string

const (
	EntityIndicator   EntityKind = "indicator"
	EntityPlace       EntityKind = "place"
	EntityPeerCountry EntityKind = "peer-country"
)

// Entity is a raw capture group and the list entry it resolved to, if any.
type Entity struct {
	Kind     EntityKind `json:"kind"`
	Raw      string     `json:"raw"`
	Resolved string     `json:"resolved,omitempty"`
}

// Diagnosis explains why a query produced no result.
type Diagnosis struct {
	// Template is the first template whose pattern matched, empty when none did.
	Template   TemplateID
	Unresolved []Entity
}

// Processor matches queries against templates and entity lists. The zero
// value is not usable; use NewProcessor or Default.
type Processor struct {
	templates     []Template
	indicators    []string
	places        []string
	peerCountries []string
}

// NewProcessor builds a processor over the given entity lists, trying
// templates in the standard order.
func NewProcessor(indicators, places, peerCountries []string) *Processor {
	return &Processor{
		templates:     templates,
		indicators:    indicators,
		places:        places,
		peerCountries: peerCountries,
	}
}

// Default is the processor over the built-in entity lists.
var Default = NewProcessor(Indicators, Places, PeerCountries)

// Parse returns the first template whose pattern matches and whose required
// entities all resolve, or nil.
func (p *Processor) Parse(query string) *ParsedQuery {
	parsed, _ := p.match(query)
	return parsed
}

// Diagnose reports the first structural match and its unresolved entities.
// It returns nil when Parse would succeed.
func (p *Processor) Diagnose(query string) *Diagnosis {
	parsed, diagnosis := p.match(query)
	if parsed != nil {
		return nil
	}
	return diagnosis
}

func (p *Processor) match(query string) (*ParsedQuery, *Diagnosis) {
	clean := strings.ToLower(strings.TrimSpace(query))
	diagnosis := &Diagnosis{}

	for _, template := range p.templates {
		groups := template.Pattern.FindStringSubmatch(clean)
		if groups == nil {
			continue
		}

		result := &ParsedQuery{TemplateID: template.ID, Confidence: InitialConfidence}
		var entities []Entity

		switch template.ID {
		case TemplateGapAnalysis:
			entities = []Entity{
				p.resolve(EntityIndicator, groups[1]),
				p.resolve(EntityPlace, groups[2]),
				p.resolve(EntityPeerCountry, groups[3]),
			}
			result.Indicator = entities[0].Resolved
			result.Place = entities[1].Resolved
			result.PeerCountry = entities[2].Resolved
		case TemplateKPICard, TemplateGapLens:
			entities = []Entity{p.resolve(EntityIndicator, groups[1])}
			result.Indicator = entities[0].Resolved
		case TemplateExplainChart:
		}

		unresolved := unresolvedOf(entities)
		if len(unresolved) == 0 {
			result.Confidence = ResolvedConfidence
			return result, nil
		}
		if diagnosis.Template == "" {
			diagnosis.Template = template.ID
			diagnosis.Unresolved = unresolved
		}
	}

	return nil, diagnosis
}

func (p *Processor) resolve(kind EntityKind, raw string) Entity {
	options := p.indicators
	switch kind {
	case EntityPlace:
		options = p.places
	case EntityPeerCountry:
		options = p.peerCountries
	}
	resolved, _ := FindBestMatch(raw, options)
	return Entity{Kind: kind, Raw: strings.TrimSpace(raw), Resolved: resolved}
}

func unresolvedOf(entities []Entity) []Entity {
	var out []Entity
	for _, e := range entities {
		if e.Resolved == "" {
			out = append(out, e)
		}
	}
	return out
}

// FindBestMatch resolves input against options: an exact case-insensitive
// match wins, otherwise the first option in list order where either string
// contains the other. Blank input never matches.
func FindBestMatch(input string, options []string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	for _, option := range options {
		if strings.ToLower(option) == normalized {
			return option, true
		}
	}

	for _, option := range options {
		lower := strings.ToLower(option)
		if strings.Contains(lower, normalized) || strings.Contains(normalized, lower) {
			return option, true
		}
	}

	return "", false
}

// SuggestedQueries returns the example query of every template.
func (p *Processor) SuggestedQueries() []string {
	out := make([]string, 0, len(p.templates))
	for _, template := range p.templates {
		out = append(out, template.Example)
	}
	return out
}

// AvailableIndicators returns the indicator list in matching order.
func (p *Processor) AvailableIndicators() []string {
	return slices.Clone(p.indicators)
}

// AvailablePlaces returns the place list in matching order.
func (p *Processor) AvailablePlaces() []string {
	return slices.Clone(p.places)
}

// AvailablePeerCountries returns the peer-country list in matching order.
func (p *Processor) AvailablePeerCountries() []string {
	return slices.Clone(p.peerCountries)
}

// Validate checks that a parsed query carries the entities its template needs.
func (p *Processor) Validate(parsed *ParsedQuery) error {
	var missing []Entity
	switch parsed.TemplateID {
	case TemplateGapAnalysis:
		if parsed.Indicator == "" {
			missing = append(missing, Entity{Kind: EntityIndicator})
		}
		if parsed.Place == "" {
			missing = append(missing, Entity{Kind: EntityPlace})
		}
		if parsed.PeerCountry == "" {
			missing = append(missing, Entity{Kind: EntityPeerCountry})
		}
	case TemplateKPICard, TemplateGapLens:
		if parsed.Indicator == "" {
			missing = append(missing, Entity{Kind: EntityIndicator})
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &UnresolvedEntityError{
		Template:   parsed.TemplateID,
		Unresolved: missing,
		Available:  p.AvailableIndicators(),
	}
}

// Process parses and validates a query. Failures are *NoMatchError,
// *UnresolvedEntityError or ErrEmptyQuery.
func (p *Processor) Process(query string) (*ParsedQuery, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	parsed, diagnosis := p.match(query)
	if parsed == nil {
		if diagnosis.Template == "" {
			return nil, &NoMatchError{Query: query, Suggestions: p.SuggestedQueries()}
		}
		return nil, &UnresolvedEntityError{
			Template:   diagnosis.Template,
			Unresolved: diagnosis.Unresolved,
			Available:  p.AvailableIndicators(),
			Closest:    p.closestIndicators(diagnosis.Unresolved),
		}
	}

	if err := p.Validate(parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// closestIndicators ranks indicators against the raw indicator text of the
// unresolved entities.
func (p *Processor) closestIndicators(unresolved []Entity) []string {
	for _, entity := range unresolved {
		if entity.Kind != EntityIndicator || entity.Raw == "" {
			continue
		}
		matches := fuzzy.Find(entity.Raw, p.indicators)
		out := make([]string, 0, closestLimit)
		for _, m := range matches {
			if len(out) == closestLimit {
				break
			}
			out = append(out, m.Str)
		}
		return out
	}
	return nil
}
