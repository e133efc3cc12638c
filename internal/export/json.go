// Package export writes rankings to files: a JSON projection and an Excel report.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/cv-ranker/internal/ranking"
)

const DefaultJSONFile = "candidate_rankings.json"

// Options selects the optional fields of the JSON projection.
type Options struct {
	IncludeReasoning  bool `mapstructure:"include-reasoning"`
	IncludeSkills     bool `mapstructure:"include-skills"`
	IncludeExperience bool `mapstructure:"include-experience"`
}

// Entry is one exported ranking record.
type Entry struct {
	CandidateID int64   `json:"candidateId"`
	Name        string  `json:"name"`
	Score       int     `json:"score"`
	Reasoning   *string `json:"reasoning,omitempty"`
	Skills      *string `json:"skills,omitempty"`
	Experience  *string `json:"experience,omitempty"`
}

// Project reduces a ranking to exported entries, keeping its order.
func Project(r *ranking.Ranking, opts Options) []Entry {
	entries := make([]Entry, 0, r.Len())
	for _, item := range r.Items {
		entry := Entry{
			CandidateID: item.CandidateID,
			Name:        item.Name,
			Score:       item.Score,
		}
		if opts.IncludeReasoning {
			entry.Reasoning = &item.Reasoning
		}
		if opts.IncludeSkills {
			entry.Skills = &item.Skills
		}
		if opts.IncludeExperience {
			entry.Experience = &item.Experience
		}
		entries = append(entries, entry)
	}
	return entries
}

// WriteJSON writes the projection of r as an indented JSON array.
func WriteJSON(w io.Writer, r *ranking.Ranking, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(Project(r, opts))
}

// ToJSONFile writes the projection to path, or DefaultJSONFile when path is
// blank, and returns the path written.
func ToJSONFile(path string, r *ranking.Ranking, opts Options) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultJSONFile
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create rankings file: %w", err)
	}
	defer file.Close()

	if err := WriteJSON(file, r, opts); err != nil {
		return "", fmt.Errorf("write rankings to %s: %w", path, err)
	}

	return path, nil
}
