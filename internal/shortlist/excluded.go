package shortlist

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/spigell/cv-ranker/internal/ranking"
)

// ExcludedCandidates is the content of an exclude file.
type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	CandidateID int64
	Name        string
	ExcludedAt  time.Time
}

// ToExcluded converts every entry of r into an exclude record stamped with now.
func ToExcluded(r *ranking.Ranking, now time.Time) *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	for _, item := range r.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			CandidateID: item.CandidateID,
			Name:        item.Name,
			ExcludedAt:  now.UTC(),
		})
	}
	return excluded
}

// GetExcludedCandidatesFromFile reads an exclude file. A missing or empty
// file yields an empty list.
func GetExcludedCandidatesFromFile(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedCandidates{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds the records of s whose candidate is not listed yet.
func (e *ExcludedCandidates) Append(s *ExcludedCandidates) {
	for _, item := range s.Items {
		if slices.Contains(e.IDs(), item.CandidateID) {
			continue
		}
		e.Items = append(e.Items, item)
	}
}

func (e *ExcludedCandidates) IDs() []int64 {
	ids := make([]int64, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.CandidateID)
	}
	return ids
}

func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
