package analysis

import (
	"testing"

	"documind/internal/retriever"
)

func TestLexicalGrounder_Ground(t *testing.T) {
	g := NewLexicalGrounder()

	chunks := []retriever.RetrievedChunk{
		{ChunkIndex: 0, Content: "The deployment pipeline runs nightly and publishes artifacts."},
		{ChunkIndex: 1, Content: "Revenue grew twelve percent in the fourth quarter."},
		{ChunkIndex: 2, Content: "Quarterly revenue growth accelerated; twelve percent year over year."},
	}

	tests := []struct {
		name    string
		excerpt string
		want    int
	}{
		{
			name:    "best overlap wins",
			excerpt: "revenue grew twelve percent",
			want:    1,
		},
		{
			name:    "unrelated excerpt matches nothing",
			excerpt: "zebra xylophone quantum",
			want:    -1,
		},
		{
			name:    "short words ignored",
			excerpt: "the and a in of",
			want:    -1,
		},
		{
			name:    "case insensitive",
			excerpt: "DEPLOYMENT PIPELINE ARTIFACTS",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Ground(tt.excerpt, chunks); got != tt.want {
				t.Errorf("Ground(%q) = %d, want %d", tt.excerpt, got, tt.want)
			}
		})
	}
}

func TestLexicalGrounder_Ground_TieKeepsEarliest(t *testing.T) {
	g := NewLexicalGrounder()

	chunks := []retriever.RetrievedChunk{
		{ChunkIndex: 0, Content: "latency budget exceeded during rollout"},
		{ChunkIndex: 1, Content: "latency budget exceeded during rollout"},
	}

	if got := g.Ground("latency budget exceeded", chunks); got != 0 {
		t.Errorf("Ground() tie = %d, want earliest index 0", got)
	}
}

func TestLexicalGrounder_Ground_EmptyInputs(t *testing.T) {
	g := NewLexicalGrounder()

	if got := g.Ground("", []retriever.RetrievedChunk{{Content: "text"}}); got != -1 {
		t.Errorf("Ground(empty excerpt) = %d, want -1", got)
	}
	if got := g.Ground("meaningful excerpt", nil); got != -1 {
		t.Errorf("Ground(no chunks) = %d, want -1", got)
	}
}

func TestSignificantWords(t *testing.T) {
	got := significantWords("The quick-brown Fox, 12345 jumps!")
	want := []string{"quick", "brown", "12345", "jumps"}

	if len(got) != len(want) {
		t.Fatalf("significantWords() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("significantWords()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
