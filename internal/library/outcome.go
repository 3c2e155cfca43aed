package library

import (
	"photoalbum/internal/catalog"
	"photoalbum/internal/services"
)

// Outcome is the result for one file or photo in a batch.
type Outcome struct {
	Path  string
	Album string
	Name  string
	Photo *catalog.Photo
	Err   error
}

func (o Outcome) OK() bool { return o.Err == nil }

// Kind returns the stable error kind, empty on success.
func (o Outcome) Kind() string { return services.Kind(o.Err) }

// Report collects the outcomes of one batch. Skipped holds files LoadLibrary
// passed over because they could not be decoded.
type Report struct {
	RunID    string
	Outcomes []Outcome
	Skipped  []Outcome
}

func (r Report) Succeeded() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.OK() {
			out = append(out, o)
		}
	}
	return out
}

func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}
