// Package explain turns kinship-graph paths into plain-language sentences:
// shortcut labels ("your grandma"), name chains ("your mom's brother"), and
// reunion-style nametag lines.
package explain

import (
	"log/slog"

	"kin/internal/kinship"
)

// PersonSource resolves person ids to records. The directory satisfies this.
type PersonSource interface {
	Person(id string) (kinship.Person, bool)
}

// Options tunes the explanation engine.
type Options struct {
	// MaxDepth is the BFS depth ceiling for the direct perspective-to-target
	// path.
	MaxDepth int
	// ReferenceDepth is the (small) depth ceiling for paths from well-known
	// reference people to the target.
	ReferenceDepth int
	// MaxResults caps the number of sentences returned by Explain.
	MaxResults int
}

// DefaultOptions returns the standard explanation limits.
func DefaultOptions() Options {
	return Options{
		MaxDepth:       5,
		ReferenceDepth: 2,
		MaxResults:     4,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	if o.ReferenceDepth <= 0 {
		o.ReferenceDepth = d.ReferenceDepth
	}
	if o.MaxResults <= 0 {
		o.MaxResults = d.MaxResults
	}
	return o
}

// Explanation is one ranked sentence describing the target.
type Explanation struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// NametagLine is one line of a reunion-style summary: a phrasing label and
// the names it applies to.
type NametagLine struct {
	Label string   `json:"label"`
	Names []string `json:"names"`
}

// Explainer generates explanations and nametags over a kinship graph.
type Explainer struct {
	graph  *kinship.Graph
	people PersonSource
	logger *slog.Logger
	opts   Options
}

// NewExplainer creates an explanation engine over the given graph.
func NewExplainer(graph *kinship.Graph, people PersonSource, logger *slog.Logger, opts Options) *Explainer {
	return &Explainer{
		graph:  graph,
		people: people,
		logger: logger,
		opts:   opts.withDefaults(),
	}
}
