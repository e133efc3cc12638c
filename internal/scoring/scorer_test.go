package scoring

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/spigell/cv-ranker/internal/candidate"
)

const fullStackJD = "We are looking for a Full stack developer skilled in React, Node.js and AWS. " +
	"You should have 4+ years of experience building web applications."

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func fullStackCandidate() candidate.Candidate {
	return candidate.Candidate{
		CandidateID:        1,
		FirstName:          "John",
		LastName:           "Doe",
		Skills:             "React, Node.js, AWS",
		TotalExperience:    "5 years",
		RelevantExperience: "4 years",
		Profile:            "Full stack developer",
		CurrentDesignation: "Software Engineer",
		InterestedRole:     "Full Stack Developer",
	}
}

func TestScoreFullStackCandidate(t *testing.T) {
	s := New()

	b, err := s.Score(fullStackCandidate(), fullStackJD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(b.Skills, 50) {
		t.Fatalf("expected skills 50, got %v", b.Skills)
	}
	if !almostEqual(b.Experience, 35) {
		t.Fatalf("expected experience 35, got %v", b.Experience)
	}
	if b.Profile <= 10 {
		t.Fatalf("expected profile above 10, got %v", b.Profile)
	}
	if b.Total != 100 {
		t.Fatalf("expected total 100, got %d", b.Total)
	}

	reasoning := s.Explain(fullStackCandidate(), b, fullStackJD)
	expected := "Score: 100/100. Strong skill match (50/50). Key matching skills: react, node.js, aws. " +
		"Excellent experience fit (5 years). Strong profile alignment with role requirements."
	if reasoning != expected {
		t.Fatalf("unexpected reasoning:\n got: %q\nwant: %q", reasoning, expected)
	}
}

func TestScoreRefusesMalformedCandidate(t *testing.T) {
	c := fullStackCandidate()
	c.Malformed = errors.New("'skills' expected type 'string'")

	if _, err := New().Score(c, fullStackJD); err == nil {
		t.Fatalf("expected error for malformed candidate")
	}
}

func TestScoreTotalIsBounded(t *testing.T) {
	t.Parallel()

	candidates := []candidate.Candidate{
		{},
		{Skills: ",,,", TotalExperience: "none"},
		{Skills: "go, rust, react, node.js, aws, docker, kubernetes", TotalExperience: "30 years", RelevantExperience: "30 years",
			Profile: "full stack developer react node aws", InterestedRole: "full stack developer"},
	}

	for _, jd := range []string{"", fullStackJD, "0 years"} {
		for _, c := range candidates {
			b, err := New().Score(c, jd)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.Total < 0 || b.Total > 100 {
				t.Fatalf("total %d out of range for %+v / %q", b.Total, c, jd)
			}
			if b.Skills > MaxSkills || b.Experience > MaxExperience || b.Profile > MaxProfile {
				t.Fatalf("sub-score above cap: %+v", b)
			}
		}
	}
}

func TestSkillScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		skills string
		jd     string
		expect float64
	}{
		{name: "all exact with bonus", skills: "React, Node.js, AWS", jd: fullStackJD, expect: 50},
		{name: "single verbatim skill", skills: "golang", jd: "Senior golang engineer", expect: 30},
		{name: "capped", skills: "React, Node.js, AWS, Docker, Kubernetes, Go", jd: "react node.js aws docker kubernetes go", expect: 50},
		{name: "partial credit through similarity", skills: "Machine Learning", jd: "Learning platform team", expect: 25},
		{name: "short tokens skipped but counted", skills: "C, Go, Rust", jd: "We write Rust and Go", expect: 20 + 2.0/3.0*20},
		{name: "nothing matches", skills: "Cobol, Fortran", jd: "Frontend engineer", expect: 0},
		{name: "empty skills", skills: "", jd: fullStackJD, expect: 0},
		{name: "substring false positive preserved", skills: "Java", jd: "Strong JavaScript knowledge", expect: 30},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SkillScore(tt.skills, tt.jd); !almostEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestProfileScore(t *testing.T) {
	t.Parallel()

	c := candidate.Candidate{Profile: "Mobile engineer", InterestedRole: "iOS lead"}
	if got := ProfileScore(c, "Backend developer for payments"); got != 0 {
		t.Fatalf("expected 0 for unrelated profile, got %v", got)
	}

	c = candidate.Candidate{Profile: "Backend developer", CurrentDesignation: "Engineer"}
	if got := ProfileScore(c, "Backend developer for payments"); got != MaxProfile {
		t.Fatalf("expected capped profile score, got %v", got)
	}
}

func TestExplainTierBoundaries(t *testing.T) {
	t.Parallel()

	s := New()
	c := candidate.Candidate{Skills: "Cobol", TotalExperience: "3.5 yrs"}

	tests := []struct {
		name     string
		b        Breakdown
		contains []string
	}{
		{
			name: "upper bounds are exclusive",
			b:    Breakdown{Skills: 30, Experience: 25, Profile: 10, Total: 65},
			contains: []string{
				"Score: 65/100. ",
				"Good skill alignment (30/50). ",
				"Good experience level (3.5 years). ",
				"Moderate profile fit for the position.",
			},
		},
		{
			name: "lowest tiers",
			b:    Breakdown{Skills: 15, Experience: 15, Profile: 5, Total: 35},
			contains: []string{
				"Limited skill match (15/50). ",
				"Developing experience (3.5 years). ",
				"Profile shows potential for growth in this role.",
			},
		},
		{
			name: "highest tiers",
			b:    Breakdown{Skills: 30.5, Experience: 25.5, Profile: 10.5, Total: 67},
			contains: []string{
				"Strong skill match (31/50). ",
				"Excellent experience fit (3.5 years). ",
				"Strong profile alignment with role requirements.",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reasoning := s.Explain(c, tt.b, "Java developer")
			for _, part := range tt.contains {
				if !strings.Contains(reasoning, part) {
					t.Fatalf("expected %q in %q", part, reasoning)
				}
			}
			if strings.Contains(reasoning, "Key matching skills") {
				t.Fatalf("did not expect key skills in %q", reasoning)
			}
		})
	}
}

func TestKeySkills(t *testing.T) {
	t.Parallel()

	got := KeySkills("Go, , SQL, Docker, Kafka, Redis", "go sql docker kafka redis")
	want := []string{"go", "sql", "docker"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := KeySkills("Cobol", "Java developer"); len(got) != 0 {
		t.Fatalf("expected no key skills, got %v", got)
	}
}
