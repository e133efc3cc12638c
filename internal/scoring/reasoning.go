package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spigell/cv-ranker/internal/candidate"
)

// FallbackReasoning explains a score that was substituted after a scoring failure.
const FallbackReasoning = "Analysis completed with basic scoring due to processing constraints."

const maxKeySkills = 3

// Explain builds the reasoning text for a breakdown. Tier thresholds are
// exclusive: a skill score of exactly 30 is "Good", not "Strong".
func (s *Scorer) Explain(c candidate.Candidate, b Breakdown, jobDescription string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Score: %d/100. ", b.Total)

	skills := int(math.Round(b.Skills))
	switch {
	case b.Skills > 30:
		fmt.Fprintf(&sb, "Strong skill match (%d/50). ", skills)
	case b.Skills > 15:
		fmt.Fprintf(&sb, "Good skill alignment (%d/50). ", skills)
	default:
		fmt.Fprintf(&sb, "Limited skill match (%d/50). ", skills)
	}

	if matched := KeySkills(c.Skills, jobDescription); len(matched) > 0 {
		fmt.Fprintf(&sb, "Key matching skills: %s. ", strings.Join(matched, ", "))
	}

	years := strconv.FormatFloat(ExtractYears(c.TotalExperience), 'f', -1, 64)
	switch {
	case b.Experience > 25:
		fmt.Fprintf(&sb, "Excellent experience fit (%s years). ", years)
	case b.Experience > 15:
		fmt.Fprintf(&sb, "Good experience level (%s years). ", years)
	default:
		fmt.Fprintf(&sb, "Developing experience (%s years). ", years)
	}

	switch {
	case b.Profile > 10:
		sb.WriteString("Strong profile alignment with role requirements.")
	case b.Profile > 5:
		sb.WriteString("Moderate profile fit for the position.")
	default:
		sb.WriteString("Profile shows potential for growth in this role.")
	}

	return sb.String()
}

// KeySkills returns up to three skills, in source order, that occur literally
// in the job description.
func KeySkills(skills, jobDescription string) []string {
	jd := strings.ToLower(jobDescription)

	var matched []string
	for _, skill := range SkillTokens(skills) {
		if skill == "" || !strings.Contains(jd, skill) {
			continue
		}
		matched = append(matched, skill)
		if len(matched) == maxKeySkills {
			break
		}
	}
	return matched
}
