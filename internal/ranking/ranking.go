package ranking

import (
	"slices"

	"github.com/spigell/cv-ranker/internal/candidate"
)

// ScoredCandidate is one entry of a ranking.
type ScoredCandidate struct {
	CandidateID int64  `json:"candidateId"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Skills      string `json:"skills"`
	Experience  string `json:"experience"`
	Reasoning   string `json:"reasoning"`
	// Fallback is set when the score was substituted after a scoring failure.
	Fallback  bool                `json:"fallback,omitempty"`
	Candidate candidate.Candidate `json:"candidate"`
}

// Ranking is the ordered result of one analysis run, best score first.
type Ranking struct {
	RunID string
	Items []*ScoredCandidate
}

func (r *Ranking) Len() int {
	return len(r.Items)
}

func (r *Ranking) FindByID(id int64) *ScoredCandidate {
	for _, item := range r.Items {
		if item.CandidateID == id {
			return item
		}
	}
	return nil
}

func (r *Ranking) IDs() []int64 {
	ids := make([]int64, 0, len(r.Items))
	for _, item := range r.Items {
		ids = append(ids, item.CandidateID)
	}
	return ids
}

// Clone returns a ranking that shares entries with r but can be narrowed
// without touching r.
func (r *Ranking) Clone() *Ranking {
	return &Ranking{RunID: r.RunID, Items: slices.Clone(r.Items)}
}

// Exclude removes the entries with the given candidate ids and returns the
// removed ids. Order of the remaining entries is preserved.
func (r *Ranking) Exclude(ids []int64) []int64 {
	var excluded []int64
	r.Items = slices.DeleteFunc(r.Items, func(item *ScoredCandidate) bool {
		if slices.Contains(ids, item.CandidateID) {
			excluded = append(excluded, item.CandidateID)
			return true
		}
		return false
	})
	return excluded
}

// Below removes the entries scoring under minimum and returns their ids.
func (r *Ranking) Below(minimum int) []int64 {
	var excluded []int64
	r.Items = slices.DeleteFunc(r.Items, func(item *ScoredCandidate) bool {
		if item.Score < minimum {
			excluded = append(excluded, item.CandidateID)
			return true
		}
		return false
	})
	return excluded
}

// Truncate keeps the first n entries and returns the ids of the rest.
// n <= 0 keeps everything.
func (r *Ranking) Truncate(n int) []int64 {
	if n <= 0 || n >= len(r.Items) {
		return nil
	}

	excluded := make([]int64, 0, len(r.Items)-n)
	for _, item := range r.Items[n:] {
		excluded = append(excluded, item.CandidateID)
	}
	r.Items = r.Items[:n]
	return excluded
}

func (r *Ranking) Fallbacks() int {
	count := 0
	for _, item := range r.Items {
		if item.Fallback {
			count++
		}
	}
	return count
}
