package estimate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mangeshk619/memsource-change-app/internal/extract"
)

// Algorithm names a change-estimation strategy.
type Algorithm string

const (
	// AlgorithmEditDistance aggregates per-segment Levenshtein distances.
	AlgorithmEditDistance Algorithm = "levenshtein"
	// AlgorithmRatio compares two whole texts by matched-block similarity.
	AlgorithmRatio Algorithm = "ratio"
)

// ParseAlgorithm maps a user-supplied name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "levenshtein", "edit-distance", "edit", "a":
		return AlgorithmEditDistance, nil
	case "ratio", "similarity", "b":
		return AlgorithmRatio, nil
	}
	return "", fmt.Errorf("unknown algorithm %q (want levenshtein or ratio)", s)
}

// SegmentResult is the edit-distance outcome for one aligned pair.
type SegmentResult struct {
	Index         int     `json:"index"`
	ID            string  `json:"id,omitempty"`
	MT            string  `json:"mt"`
	PE            string  `json:"pe"`
	Distance      int     `json:"distance"`
	Length        int     `json:"length"`
	ChangePercent float64 `json:"change_percent"`
}

// Result is the outcome of one estimation. Distance and PerSegment are only
// filled by the edit-distance algorithm; Matched and Similarity only by the
// ratio algorithm.
type Result struct {
	Algorithm Algorithm `json:"algorithm"`
	// Distance is the summed edit distance over all pairs.
	Distance int `json:"distance"`
	// Length is the denominator: summed max pair length for edit distance,
	// combined length of both texts for ratio.
	Length        int     `json:"length"`
	Matched       int     `json:"matched,omitempty"`
	Similarity    float64 `json:"similarity,omitempty"`
	ChangePercent float64 `json:"change_percent"`
	// Segments is the number of aligned pairs, Changed how many differ.
	Segments   int             `json:"segments"`
	Changed    int             `json:"changed"`
	PerSegment []SegmentResult `json:"per_segment,omitempty"`
}

// TopChanged returns up to n pairs with the highest change percent, ties
// broken by document order. Unchanged pairs are never returned.
func (r Result) TopChanged(n int) []SegmentResult {
	if n <= 0 {
		return nil
	}
	out := make([]SegmentResult, 0, r.Changed)
	for _, s := range r.PerSegment {
		if s.Distance > 0 {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangePercent > out[j].ChangePercent })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Estimator is the strategy interface shared by both algorithms. Mode tells
// the caller which document representation Estimate consumes.
type Estimator interface {
	Algorithm() Algorithm
	Mode() extract.Mode
	Estimate(mt, pe extract.Document) Result
}

// New returns the estimator for the given algorithm.
func New(a Algorithm) (Estimator, error) {
	switch a {
	case AlgorithmEditDistance:
		return EditDistance{}, nil
	case AlgorithmRatio:
		return SimilarityRatio{}, nil
	}
	return nil, fmt.Errorf("unknown algorithm %q", a)
}

// EditDistance aligns MT and PE segments and aggregates their distances.
type EditDistance struct{}

func (EditDistance) Algorithm() Algorithm { return AlgorithmEditDistance }
func (EditDistance) Mode() extract.Mode   { return extract.ModeSegments }

func (EditDistance) Estimate(mt, pe extract.Document) Result {
	return EstimateSegments(extract.Align(mt, pe))
}

// SimilarityRatio compares the MT and PE text blobs as a whole.
type SimilarityRatio struct{}

func (SimilarityRatio) Algorithm() Algorithm { return AlgorithmRatio }
func (SimilarityRatio) Mode() extract.Mode   { return extract.ModeBlob }

func (SimilarityRatio) Estimate(mt, pe extract.Document) Result {
	return EstimateText(mt.Text, pe.Text)
}
