package analysis

import "testing"

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no fence untouched",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "plain fence",
			in:   "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "json language tag",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "uppercase language tag",
			in:   "```JSON\n[1,2]\n```",
			want: "[1,2]",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  \n```json\n{}\n```  \n",
			want: "{}",
		},
		{
			name: "fence opening followed by content on same line",
			in:   "```{\"a\":1}\n```",
			want: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInsights(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCount int
	}{
		{
			name:      "bare array",
			raw:       `[{"category":"pattern","title":"T","description":"D","confidence":"high"}]`,
			wantCount: 1,
		},
		{
			name:      "insights wrapper object",
			raw:       `{"insights":[{"category":"risk","title":"T","description":"D","confidence":0.7}]}`,
			wantCount: 1,
		},
		{
			name:      "fenced payload",
			raw:       "```json\n[{\"category\":\"anomaly\",\"title\":\"T\",\"description\":\"D\"}]\n```",
			wantCount: 1,
		},
		{
			name:      "correlation category dropped",
			raw:       `[{"category":"correlation","title":"T","description":"D"},{"category":"pattern","title":"T2","description":"D2"}]`,
			wantCount: 1,
		},
		{
			name:      "entries without title or description dropped",
			raw:       `[{"category":"pattern"},{"category":"risk","title":"kept"}]`,
			wantCount: 1,
		},
		{
			name:      "garbage yields zero insights",
			raw:       "the model rambled instead of returning JSON",
			wantCount: 0,
		},
		{
			name:      "empty payload",
			raw:       "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInsights(tt.raw)
			if len(got) != tt.wantCount {
				t.Errorf("parseInsights() returned %d insights, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestParseInsights_NormalizesFields(t *testing.T) {
	got := parseInsights(`[{"category":" Pattern ","title":"Growth","description":"Steady","confidence":"high"}]`)
	if len(got) != 1 {
		t.Fatalf("parseInsights() returned %d insights, want 1", len(got))
	}
	if got[0].Category != "pattern" {
		t.Errorf("Category = %q, want lowercased pattern", got[0].Category)
	}
	if got[0].Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %v, want %v", got[0].Confidence, ConfidenceHigh)
	}
}

func TestParseInsights_MissingConfidenceNeutral(t *testing.T) {
	got := parseInsights(`[{"category":"pattern","title":"T","description":"D"}]`)
	if len(got) != 1 {
		t.Fatalf("parseInsights() returned %d insights, want 1", len(got))
	}
	if got[0].Confidence != 0.5 {
		t.Errorf("Confidence = %v, want neutral 0.5", got[0].Confidence)
	}
}
