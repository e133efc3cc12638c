package scoring

import (
	"regexp"
	"strconv"
)

// DefaultRequiredYears is used when the job description names no year count.
const DefaultRequiredYears = 3

var (
	heldYearsRe     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:years?|yrs?)`)
	requiredYearsRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)`)
)

// ExtractYears reads the first "<number> years" figure from text.
// "5 years" is 5, "3.5 yrs" is 3.5 and text without a figure is 0.
func ExtractYears(text string) float64 {
	m := heldYearsRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	years, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return years
}

// RequiredYears reads the first "<integer>[+] years" figure from a job
// description, defaulting to DefaultRequiredYears.
func RequiredYears(jobDescription string) float64 {
	m := requiredYearsRe.FindStringSubmatch(jobDescription)
	if m == nil {
		return DefaultRequiredYears
	}

	years, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultRequiredYears
	}
	return float64(years)
}

// ExperienceScore rates total and relevant experience against the requirement.
// The result is capped at MaxExperience.
func ExperienceScore(totalExperience, relevantExperience, jobDescription string) float64 {
	total := ExtractYears(totalExperience)
	relevant := ExtractYears(relevantExperience)
	required := RequiredYears(jobDescription)

	score := 0.0
	if total >= required {
		score += 20
		if total > required*1.5 {
			score += 10
		}
	} else {
		score += total / required * 15
	}

	if relevant >= required*0.8 {
		score += 15
	} else {
		score += relevant / (required * 0.8) * 10
	}

	return min(score, MaxExperience)
}
