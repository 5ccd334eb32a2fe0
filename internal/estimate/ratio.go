package estimate

import "strings"

// Ratio returns the similarity of a and b in [0, 100]: 2*M/T expressed as a
// percentage, where M is the number of code points in matching blocks and T
// the combined length. Two empty strings are 100% similar.
//
// Matching blocks follow the longest-common-substring decomposition: take the
// longest match (earliest on ties), then recurse into the pieces on either
// side of it. Operands are put in a canonical order first so that
// Ratio(a, b) == Ratio(b, a) even where tie-breaking would differ.
func Ratio(a, b string) float64 {
	return EstimateText(a, b).Similarity
}

// EstimateText computes the change between two whole texts as 100 - Ratio.
func EstimateText(a, b string) Result {
	ra, rb := []rune(a), []rune(b)
	res := Result{Algorithm: AlgorithmRatio, Length: len(ra) + len(rb)}
	if res.Length == 0 {
		res.Similarity = 100
		return res
	}
	if len(ra) > len(rb) || (len(ra) == len(rb) && strings.Compare(a, b) > 0) {
		ra, rb = rb, ra
	}
	res.Matched = matchedRunes(ra, rb)
	res.Similarity = 200 * float64(res.Matched) / float64(res.Length)
	res.ChangePercent = 100 - res.Similarity
	if res.ChangePercent < 0 {
		res.ChangePercent = 0
	}
	return res
}

type matcher struct {
	a, b []rune
	b2j  map[rune][]int
	// scratch rows indexed by j+1, zeroed between uses
	prev, cur []int
}

func newMatcher(a, b []rune) *matcher {
	b2j := make(map[rune][]int)
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}
	return &matcher{a: a, b: b, b2j: b2j, prev: make([]int, len(b)+1), cur: make([]int, len(b)+1)}
}

// longest finds the longest block a[i:i+k] == b[j:j+k] within
// a[alo:ahi] x b[blo:bhi], preferring the smallest i and then the smallest j.
func (m *matcher) longest(alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	prev, cur := m.prev, m.cur
	var prevTouched, curTouched []int
	for i := alo; i < ahi; i++ {
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := prev[j] + 1
			cur[j+1] = k
			curTouched = append(curTouched, j+1)
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		for _, x := range prevTouched {
			prev[x] = 0
		}
		prev, cur = cur, prev
		prevTouched, curTouched = curTouched, prevTouched[:0]
	}
	for _, x := range prevTouched {
		prev[x] = 0
	}
	return besti, bestj, bestk
}

// matchedRunes sums the sizes of all matching blocks between a and b.
func matchedRunes(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	m := newMatcher(a, b)
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}
	total := 0
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		i, j, k := m.longest(s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		total += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return total
}
