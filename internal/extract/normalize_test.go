package extract

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "Hello", "Hello"},
		{"collapse", "  a \t b\n\n c  ", "a b c"},
		{"tags", `<ph id="1"/>Click <b>here</b>`, "Click here"},
		{"tags leave spaces", "one<br/>two", "onetwo"},
		{"unclosed angle kept", "a < b", "a < b"},
		{"nfc", "Cafe\u0301", "Caf\u00e9"},
		{"only whitespace", " \n\t ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDocumentNormalized_DoesNotMutateOriginal(t *testing.T) {
	doc := Document{Segments: []Segment{{ID: "1", Source: " a  b ", Target: "<x/>c"}}, Text: " t "}
	n := doc.Normalized()
	if n.Segments[0].Source != "a b" || n.Segments[0].Target != "c" || n.Text != "t" {
		t.Fatalf("normalized=%+v", n)
	}
	if doc.Segments[0].Source != " a  b " {
		t.Fatalf("original mutated: %+v", doc.Segments[0])
	}
}
