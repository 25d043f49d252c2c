package cache

import (
	"reflect"
	"testing"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name         string
		docIDs       []string
		analysisType string
		want         string
	}{
		{
			name:         "single document",
			docIDs:       []string{"doc-a"},
			analysisType: "insights",
			want:         "insights:doc-a",
		},
		{
			name:         "ids sorted before joining",
			docIDs:       []string{"doc-b", "doc-a"},
			analysisType: "validation_across",
			want:         "validation_across:doc-a,doc-b",
		},
		{
			name:         "empty ids dropped",
			docIDs:       []string{"doc-b", "", "doc-a"},
			analysisType: "insights",
			want:         "insights:doc-a,doc-b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.docIDs, tt.analysisType); got != tt.want {
				t.Errorf("Key(%v, %q) = %q, want %q", tt.docIDs, tt.analysisType, got, tt.want)
			}
		})
	}
}

func TestKey_OrderIndependent(t *testing.T) {
	a := Key([]string{"x", "y", "z"}, "insights")
	b := Key([]string{"z", "x", "y"}, "insights")
	if a != b {
		t.Errorf("keys differ across orderings: %q vs %q", a, b)
	}
}

func TestSortedIDs_DefensiveCopy(t *testing.T) {
	in := []string{"b", "a"}
	got := SortedIDs(in)

	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("SortedIDs(%v) = %v, want [a b]", in, got)
	}
	if !reflect.DeepEqual(in, []string{"b", "a"}) {
		t.Errorf("SortedIDs mutated its input: %v", in)
	}
}
