package extract

import "testing"

func TestAlign_ByID(t *testing.T) {
	mt := Document{Segments: []Segment{{ID: "a", Target: "A1"}, {ID: "b", Target: "B1"}, {ID: "c", Target: "C1"}}}
	pe := Document{Segments: []Segment{{ID: "b", Target: "B2"}, {ID: "a", Target: "A2"}, {ID: "d", Target: "D2"}}}
	got := Align(mt, pe)
	want := []Segment{
		{ID: "a", Source: "A1", Target: "A2"},
		{ID: "b", Source: "B1", Target: "B2"},
		{ID: "c", Source: "C1", Target: ""},
		{ID: "d", Source: "", Target: "D2"},
	}
	if len(got) != len(want) {
		t.Fatalf("len=%d, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pair %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAlign_PositionalWhenIDsMissingOrDuplicated(t *testing.T) {
	mt := Document{Segments: []Segment{{ID: "x", Target: "one"}, {ID: "x", Target: "two"}}}
	pe := Document{Segments: []Segment{{ID: "x", Target: "uno"}, {ID: "x", Target: "dos"}, {Target: "tres"}}}
	got := Align(mt, pe)
	if len(got) != 3 {
		t.Fatalf("len=%d, want 3", len(got))
	}
	if got[0].Source != "one" || got[0].Target != "uno" || got[1].Source != "two" || got[1].Target != "dos" {
		t.Fatalf("unexpected pairs %+v", got)
	}
	if got[2].Source != "" || got[2].Target != "tres" {
		t.Fatalf("unmatched tail = %+v", got[2])
	}
}

func TestAlign_Empty(t *testing.T) {
	if got := Align(Document{}, Document{}); len(got) != 0 {
		t.Fatalf("expected no pairs, got %+v", got)
	}
}
