package extract

// Align pairs the target text of each MT unit with the target text of the
// matching PE unit. Units are matched by ID when every unit on both sides has
// a unique non-empty ID, and by position otherwise. A unit without a partner
// is paired with the empty string.
//
// The returned Segment carries the MT target in Source and the PE target in
// Target.
func Align(mt, pe Document) []Segment {
	if idsUsable(mt.Segments) && idsUsable(pe.Segments) {
		return alignByID(mt.Segments, pe.Segments)
	}
	n := len(mt.Segments)
	if len(pe.Segments) > n {
		n = len(pe.Segments)
	}
	out := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		var s Segment
		if i < len(mt.Segments) {
			s.ID = mt.Segments[i].ID
			s.Source = mt.Segments[i].Target
		}
		if i < len(pe.Segments) {
			if s.ID == "" {
				s.ID = pe.Segments[i].ID
			}
			s.Target = pe.Segments[i].Target
		}
		out = append(out, s)
	}
	return out
}

func idsUsable(segs []Segment) bool {
	if len(segs) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(segs))
	for _, s := range segs {
		if s.ID == "" {
			return false
		}
		if _, dup := seen[s.ID]; dup {
			return false
		}
		seen[s.ID] = struct{}{}
	}
	return true
}

// alignByID keeps MT order, then appends PE-only units in PE order.
func alignByID(mt, pe []Segment) []Segment {
	peByID := make(map[string]string, len(pe))
	for _, s := range pe {
		peByID[s.ID] = s.Target
	}
	out := make([]Segment, 0, len(mt))
	matched := make(map[string]struct{}, len(mt))
	for _, s := range mt {
		out = append(out, Segment{ID: s.ID, Source: s.Target, Target: peByID[s.ID]})
		matched[s.ID] = struct{}{}
	}
	for _, s := range pe {
		if _, ok := matched[s.ID]; ok {
			continue
		}
		out = append(out, Segment{ID: s.ID, Target: s.Target})
	}
	return out
}
