// Package ranking applies a candidate evaluator to a whole batch, isolates
// per-candidate failures and orders the batch by score.
package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/cv-ranker/internal/candidate"
	"github.com/spigell/cv-ranker/internal/logger"
	"github.com/spigell/cv-ranker/internal/scoring"
	"github.com/spigell/cv-ranker/internal/utils"
)

const (
	// FallbackScore replaces the score of a candidate that could not be scored.
	FallbackScore = 50

	maxLogLength = 120
)

// ErrBatchFailed is reported by RankAsync when a run aborts as a whole.
var ErrBatchFailed = errors.New("ranking batch failed")

// Evaluator scores a single candidate and explains the result.
type Evaluator interface {
	Score(c candidate.Candidate, jobDescription string) (scoring.Breakdown, error)
	Explain(c candidate.Candidate, b scoring.Breakdown, jobDescription string) string
}

// Outcome is delivered once by RankAsync.
type Outcome struct {
	Ranking *Ranking
	Err     error
}

type Ranker struct {
	evaluator Evaluator
	logger    *zap.Logger
	source    string
}

// New creates a ranker. source names where the batch came from and is only
// used for logging.
func New(evaluator Evaluator, source string, log *zap.Logger) *Ranker {
	if log == nil {
		log = zap.NewNop()
	}

	return &Ranker{
		evaluator: evaluator,
		logger:    log.Named("ranking"),
		source:    source,
	}
}

// Rank scores every candidate and returns them sorted by descending score.
// Candidates with equal scores keep their input order. A candidate whose
// scoring fails or panics is kept with FallbackScore and
// scoring.FallbackReasoning.
func (r *Ranker) Rank(candidates []candidate.Candidate, jobDescription string) *Ranking {
	started := time.Now()
	runID := uuid.NewString()
	log := logger.WithRunFields(r.logger, runID, r.source)

	log.Info("ranking candidates",
		zap.Int("count", len(candidates)),
		zap.String("job_description", utils.TruncateForLog(jobDescription, maxLogLength)),
	)

	ranking := &Ranking{
		RunID: runID,
		Items: make([]*ScoredCandidate, 0, len(candidates)),
	}
	for _, c := range candidates {
		ranking.Items = append(ranking.Items, r.scoreOne(log, c, jobDescription))
	}

	slices.SortStableFunc(ranking.Items, func(a, b *ScoredCandidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	log.Info("ranking completed",
		zap.Int("ranked", ranking.Len()),
		zap.Int("fallbacks", ranking.Fallbacks()),
		zap.Duration("took", time.Since(started)),
	)

	return ranking
}

// RankAsync runs Rank on its own goroutine. The returned channel delivers
// exactly one Outcome and is then closed.
func (r *Ranker) RankAsync(candidates []candidate.Candidate, jobDescription string) <-chan Outcome {
	out := make(chan Outcome, 1)

	go func() {
		defer close(out)
		defer func() {
			if rec := recover(); rec != nil {
				out <- Outcome{Err: fmt.Errorf("%w: %v", ErrBatchFailed, rec)}
			}
		}()

		out <- Outcome{Ranking: r.Rank(candidates, jobDescription)}
	}()

	return out
}

func (r *Ranker) scoreOne(log *zap.Logger, c candidate.Candidate, jobDescription string) (scored *ScoredCandidate) {
	scored = &ScoredCandidate{
		CandidateID: c.CandidateID,
		Name:        c.Name(),
		Skills:      c.Skills,
		Experience:  c.TotalExperience,
		Candidate:   c,
	}

	defer func() {
		if rec := recover(); rec != nil {
			fallback(log, scored, fmt.Errorf("panic while scoring: %v", rec))
		}
	}()

	b, err := r.evaluator.Score(c, jobDescription)
	if err != nil {
		fallback(log, scored, err)
		return scored
	}

	scored.Score = b.Total
	scored.Reasoning = r.evaluator.Explain(c, b, jobDescription)

	log.Debug("candidate scored",
		zap.Int64("candidate_id", c.CandidateID),
		zap.Float64("skills", b.Skills),
		zap.Float64("experience", b.Experience),
		zap.Float64("profile", b.Profile),
		zap.Int("score", b.Total),
	)

	return scored
}

func fallback(log *zap.Logger, scored *ScoredCandidate, err error) {
	scored.Score = FallbackScore
	scored.Reasoning = scoring.FallbackReasoning
	scored.Fallback = true

	log.Warn("scoring failed, using fallback score",
		zap.Int64("candidate_id", scored.CandidateID),
		zap.Int("score", FallbackScore),
		zap.Error(err),
	)
}
