package scoring

import (
	"strings"

	"github.com/spigell/job-recommender/internal/board"
)

// NoMatch is returned as the best index when no job scored above zero.
const NoMatch = -1

// Result of scoring one bio against the catalog.
type Result struct {
	// Scores is aligned with the normalized job catalog.
	Scores []float64
	// Best is the index of the best job or NoMatch.
	Best int
}

func (r Result) Matched() bool {
	return r.Best != NoMatch
}

type Scorer struct {
	cfg *Config
}

func NewScorer(cfg *Config) *Scorer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

func (s *Scorer) Config() *Config {
	return s.cfg
}

// Score accumulates title and location credit of every token for every job and
// tracks the job with the strictly highest running total.
// Unless CompareFirstToken is set, totals are compared from the second token on.
func (s *Scorer) Score(tokens []string, jobs []board.Job) Result {
	scores := make([]float64, len(jobs))
	best := NoMatch
	maxScore := 0.0

	for i, token := range tokens {
		compare := i > 0 || s.cfg.CompareFirstToken
		for j := range jobs {
			scores[j] += s.TitleCredit(token, jobs[j].Title) + s.LocationCredit(tokens, i, jobs[j].Location)

			if compare && scores[j] > maxScore {
				maxScore = scores[j]
				best = j
			}
		}
	}

	return Result{Scores: scores, Best: best}
}

// TitleCredit rewards a token found anywhere inside the title, proportionally
// to how much of the title it covers.
func (s *Scorer) TitleCredit(token, title string) float64 {
	if title == "" || !strings.Contains(title, token) {
		return 0
	}
	return float64(len(token)) / float64(len(title)) * s.cfg.JobScoreMultiplier
}

// LocationCredit is the context score when the token at pos is exactly the location.
func (s *Scorer) LocationCredit(tokens []string, pos int, location string) float64 {
	if tokens[pos] != location {
		return 0
	}
	return s.cfg.Classify(tokens, pos, s.cfg.K)
}
