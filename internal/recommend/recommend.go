// Package recommend attaches the best matching job to every member.
package recommend

import (
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/board"
	"github.com/spigell/job-recommender/internal/scoring"
	"github.com/spigell/job-recommender/internal/textnorm"
)

// Observer receives per member outcomes, e.g. for metrics.
type Observer interface {
	ObserveMember(recommended bool, duration time.Duration)
	ObserveCatalog(jobs int)
}

type Engine struct {
	cfg        *scoring.Config
	normalizer *textnorm.Normalizer
	scorer     *scoring.Scorer
	logger     *zap.Logger
	observer   Observer
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// New builds an engine around a validated config. A nil config means defaults.
func New(cfg *scoring.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = scoring.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		normalizer: textnorm.New(cfg.StopWords),
		scorer:     scoring.NewScorer(cfg),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Recommend sets JobScores and RecommendedJob on every member. The recommended job
// points to the original catalog entry, not to its normalized copy.
// Previous results on the members are overwritten.
func (e *Engine) Recommend(members *board.Members, jobs *board.Jobs) {
	normalized := textnorm.NormalizeJobs(jobs.Items)
	if e.observer != nil {
		e.observer.ObserveCatalog(len(normalized))
	}

	for _, member := range members.Items {
		e.recommendMember(member, jobs.Items, normalized)
	}

	e.logger.Info("recommendations done",
		zap.Int("members", members.Len()),
		zap.Int("jobs", jobs.Len()),
		zap.Int("recommended", members.Recommended()),
	)
}

// RecommendMember scores a single member against the catalog.
func (e *Engine) RecommendMember(member *board.Member, jobs *board.Jobs) {
	e.recommendMember(member, jobs.Items, textnorm.NormalizeJobs(jobs.Items))
}

func (e *Engine) recommendMember(member *board.Member, jobs []*board.Job, normalized []board.Job) {
	start := time.Now()

	tokens := e.normalizer.NormalizeBio(member.Bio)
	result := e.scorer.Score(tokens, normalized)

	member.JobScores = result.Scores
	member.RecommendedJob = nil
	if result.Matched() {
		member.RecommendedJob = jobs[result.Best]
	}

	if e.observer != nil {
		e.observer.ObserveMember(result.Matched(), time.Since(start))
	}

	recommended := "none"
	if member.RecommendedJob != nil {
		recommended = member.RecommendedJob.Label()
	}
	e.logger.Debug("member scored",
		zap.String("member", member.Name),
		zap.Strings("tokens", tokens),
		zap.String("recommended", recommended),
	)
}
