// Package report computes the aggregate figures shown next to a ranking.
package report

import (
	"math"

	"github.com/spigell/cv-ranker/internal/ranking"
)

const (
	ExcellentScore = 80
	GoodScore      = 60
)

// Summary holds aggregate statistics of a ranking.
type Summary struct {
	Total     int `json:"total"`
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Highest   int `json:"highest"`
	Lowest    int `json:"lowest"`
	Fallbacks int `json:"fallbacks"`
}

// Summarize counts candidates scoring at least 80 as excellent and those in
// [60, 80) as good. The average is rounded; an empty ranking yields zeros.
func Summarize(r *ranking.Ranking) Summary {
	var s Summary
	if r == nil || r.Len() == 0 {
		return s
	}

	s.Total = r.Len()
	s.Lowest = math.MaxInt
	sum := 0
	for _, item := range r.Items {
		switch {
		case item.Score >= ExcellentScore:
			s.Excellent++
		case item.Score >= GoodScore:
			s.Good++
		}
		if item.Fallback {
			s.Fallbacks++
		}
		s.Highest = max(s.Highest, item.Score)
		s.Lowest = min(s.Lowest, item.Score)
		sum += item.Score
	}
	s.Average = int(math.Round(float64(sum) / float64(s.Total)))

	return s
}

// Tier names the colour band of a score.
func Tier(score int) string {
	switch {
	case score >= 90:
		return "outstanding"
	case score >= 80:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "weak"
	}
}

var medals = []string{"🥇", "🥈", "🥉"}

// Medal returns the badge for a zero-based rank position, or "" past the podium.
func Medal(index int) string {
	if index < 0 || index >= len(medals) {
		return ""
	}
	return medals[index]
}
