package report

import (
	"testing"

	"github.com/spigell/cv-ranker/internal/ranking"
)

func rankingOf(scores ...int) *ranking.Ranking {
	r := &ranking.Ranking{}
	for i, score := range scores {
		r.Items = append(r.Items, &ranking.ScoredCandidate{CandidateID: int64(i + 1), Score: score})
	}
	return r
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  *ranking.Ranking
		expect Summary
	}{
		{name: "nil ranking", input: nil, expect: Summary{}},
		{name: "empty ranking", input: rankingOf(), expect: Summary{}},
		{
			name:   "sample batch",
			input:  rankingOf(100, 63, 36),
			expect: Summary{Total: 3, Excellent: 1, Good: 1, Average: 66, Highest: 100, Lowest: 36},
		},
		{
			name:   "boundaries",
			input:  rankingOf(80, 79, 60, 59),
			expect: Summary{Total: 4, Excellent: 1, Good: 2, Average: 70, Highest: 80, Lowest: 59},
		},
		{
			name:   "average rounds half up",
			input:  rankingOf(50, 51),
			expect: Summary{Total: 2, Average: 51, Highest: 51, Lowest: 50},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Summarize(tt.input); got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestSummarizeCountsFallbacks(t *testing.T) {
	t.Parallel()

	r := rankingOf(70, 50, 50)
	r.Items[1].Fallback = true
	r.Items[2].Fallback = true

	if got := Summarize(r).Fallbacks; got != 2 {
		t.Fatalf("expected 2 fallbacks, got %d", got)
	}
}

func TestTier(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		100: "outstanding",
		90:  "outstanding",
		89:  "excellent",
		80:  "excellent",
		79:  "good",
		70:  "good",
		69:  "fair",
		60:  "fair",
		59:  "weak",
		0:   "weak",
	}

	for score, expect := range tests {
		if got := Tier(score); got != expect {
			t.Fatalf("score %d: expected %q, got %q", score, expect, got)
		}
	}
}

func TestMedal(t *testing.T) {
	t.Parallel()

	if Medal(0) != "🥇" || Medal(1) != "🥈" || Medal(2) != "🥉" {
		t.Fatalf("unexpected podium medals")
	}
	if Medal(3) != "" || Medal(-1) != "" {
		t.Fatalf("expected no medal outside the podium")
	}
}
