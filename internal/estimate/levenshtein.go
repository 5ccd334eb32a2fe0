package estimate

import (
	"unicode/utf8"

	"github.com/mangeshk619/memsource-change-app/internal/extract"
)

// Distance returns the Levenshtein distance between a and b counted in code
// points, with unit cost for insertion, deletion and substitution.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	return levenshtein([]rune(a), []rune(b))
}

// levenshtein keeps a single pair of rows sized to the shorter operand.
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		return levenshtein(b, a)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ra := range a {
		cur[0] = i + 1
		for j, rb := range b {
			cost := 1
			if ra == rb {
				cost = 0
			}
			cur[j+1] = min(prev[j+1]+1, cur[j]+1, prev[j]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// EstimateSegments computes 100 * sum(distance) / sum(max(len(source), len(target)))
// over all pairs. With a zero denominator the change is exactly 0.
func EstimateSegments(segs []extract.Segment) Result {
	res := Result{Algorithm: AlgorithmEditDistance, Segments: len(segs)}
	if len(segs) > 0 {
		res.PerSegment = make([]SegmentResult, 0, len(segs))
	}
	for i, s := range segs {
		d := Distance(s.Source, s.Target)
		n := max(utf8.RuneCountInString(s.Source), utf8.RuneCountInString(s.Target))
		sr := SegmentResult{Index: i + 1, ID: s.ID, MT: s.Source, PE: s.Target, Distance: d, Length: n}
		if n > 0 {
			sr.ChangePercent = 100 * float64(d) / float64(n)
		}
		if d > 0 {
			res.Changed++
		}
		res.Distance += d
		res.Length += n
		res.PerSegment = append(res.PerSegment, sr)
	}
	if res.Length > 0 {
		res.ChangePercent = 100 * float64(res.Distance) / float64(res.Length)
	}
	return res
}
