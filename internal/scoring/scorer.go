// Package scoring rates a candidate against a job description with a fixed set
// of text rules and explains the result.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/cv-ranker/internal/candidate"
	"github.com/spigell/cv-ranker/internal/similarity"
)

// Sub-score caps. They add up to 100.
const (
	MaxSkills     = 50.0
	MaxExperience = 35.0
	MaxProfile    = 15.0
)

const (
	exactSkillPoints   = 10.0
	partialSkillPoints = 5.0
	skillBonus         = 20.0
	partialThreshold   = 0.1
	minSkillLength     = 2
)

// Breakdown holds the sub-scores of one candidate.
type Breakdown struct {
	Skills     float64
	Experience float64
	Profile    float64
	Total      int
}

// Scorer is the rule-based candidate scorer. It is stateless and safe for
// concurrent use.
type Scorer struct{}

func New() *Scorer {
	return &Scorer{}
}

// Score computes the breakdown for c. Candidates that could not be decoded are refused.
func (s *Scorer) Score(c candidate.Candidate, jobDescription string) (Breakdown, error) {
	if c.Malformed != nil {
		return Breakdown{}, fmt.Errorf("candidate %d is malformed: %w", c.CandidateID, c.Malformed)
	}

	b := Breakdown{
		Skills:     SkillScore(c.Skills, jobDescription),
		Experience: ExperienceScore(c.TotalExperience, c.RelevantExperience, jobDescription),
		Profile:    ProfileScore(c, jobDescription),
	}
	b.Total = int(math.Round(b.Skills + b.Experience + b.Profile))

	return b, nil
}

// SkillTokens splits a comma separated skills field into trimmed, lower-cased tokens.
func SkillTokens(skills string) []string {
	parts := strings.Split(strings.ToLower(skills), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// SkillScore awards points per skill found in the job description, either
// literally or through token similarity, plus a bonus proportional to the share
// of matched skills. The result is capped at MaxSkills.
func SkillScore(skills, jobDescription string) float64 {
	tokens := SkillTokens(skills)
	jd := strings.ToLower(jobDescription)

	score := 0.0
	matched := 0
	for _, skill := range tokens {
		if len(skill) < minSkillLength {
			continue
		}

		switch {
		case strings.Contains(jd, skill):
			score += exactSkillPoints
			matched++
		case similarity.Score(skill, jobDescription) > partialThreshold:
			score += partialSkillPoints
			matched++
		}
	}

	if len(tokens) > 0 {
		score += float64(matched) / float64(len(tokens)) * skillBonus
	}

	return min(score, MaxSkills)
}

// ProfileScore compares profile, designation and desired role with the job description.
func ProfileScore(c candidate.Candidate, jobDescription string) float64 {
	text := fmt.Sprintf("%s %s %s", c.Profile, c.CurrentDesignation, c.InterestedRole)
	return min(similarity.Score(text, jobDescription)*100, MaxProfile)
}
