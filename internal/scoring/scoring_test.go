package scoring

import (
	"math"
	"testing"

	"github.com/spigell/job-recommender/internal/board"
	"github.com/spigell/job-recommender/internal/textnorm"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	tests := []struct {
		name   string
		tokens []string
		pos    int
		k      int
		expect float64
	}{
		{name: "positive", tokens: []string{"relocate", "london"}, pos: 1, k: 2, expect: 1.5},
		{name: "negative", tokens: []string{"outside", "london"}, pos: 1, k: 2, expect: -1},
		{name: "neutral", tokens: []string{"living", "in", "london"}, pos: 1, k: 2, expect: 1},
		{name: "nearest negative wins", tokens: []string{"relocate", "outside", "london"}, pos: 2, k: 2, expect: -1},
		{name: "nearest positive wins", tokens: []string{"outside", "relocate", "london"}, pos: 2, k: 2, expect: 1.5},
		{name: "beyond k is ignored", tokens: []string{"relocate", "x", "y", "london"}, pos: 3, k: 2, expect: 1},
		{name: "start of sequence", tokens: []string{"london"}, pos: 0, k: 2, expect: 1},
		{name: "zero k", tokens: []string{"relocate", "london"}, pos: 1, k: 0, expect: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cfg.Classify(tt.tokens, tt.pos, tt.k); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestContextString(t *testing.T) {
	if Positive.String() != "positive" || Negative.String() != "negative" || Neutral.String() != "neutral" {
		t.Fatalf("unexpected context names")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}

	var nilCfg *Config
	if err := nilCfg.Validate(); err == nil {
		t.Fatalf("expected error for nil config")
	}

	cfg := DefaultConfig()
	cfg.K = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for negative k")
	}

	cfg = DefaultConfig()
	cfg.JobScoreMultiplier = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero multiplier")
	}

	cfg = DefaultConfig()
	cfg.PositiveNeighbours = textnorm.NewWordSet("moving", "outside")
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for overlapping neighbour sets")
	}
}

func TestLowercaseWords(t *testing.T) {
	got := LowercaseWords([]string{" Relocate ", "", "  ", "MOVING"})
	if len(got) != 2 || got[0] != "relocate" || got[1] != "moving" {
		t.Fatalf("unexpected words %q", got)
	}
}

func TestTitleCredit(t *testing.T) {
	s := NewScorer(DefaultConfig())

	if got := s.TitleCredit("chef", "sushi chef"); math.Abs(got-1.2) > 1e-9 {
		t.Fatalf("expected 1.2, got %v", got)
	}
	if got := s.TitleCredit("zoo", "zoologist"); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected partial word credit 1.0, got %v", got)
	}
	if got := s.TitleCredit("dentist", "waiter"); got != 0 {
		t.Fatalf("expected no credit, got %v", got)
	}
	if got := s.TitleCredit("", ""); got != 0 {
		t.Fatalf("expected no credit for empty title, got %v", got)
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	jobs := []board.Job{
		{Title: "waiter", Location: "london"},
		{Title: "sushi chef", Location: "london"},
		{Title: "project manager", Location: "manchester"},
	}

	tests := []struct {
		name   string
		tokens []string
		expect int
	}{
		{name: "empty bio", tokens: nil, expect: NoMatch},
		{name: "single token never compared", tokens: []string{"waiter"}, expect: NoMatch},
		{name: "title match", tokens: []string{"experienced", "waiter"}, expect: 0},
		{name: "multi word title", tokens: []string{"sushi", "chef"}, expect: 1},
		{name: "first token still accumulates", tokens: []string{"sushi", "restaurants"}, expect: 1},
		{name: "positive location", tokens: []string{"chef", "moving", "manchester"}, expect: 2},
		{name: "negative location", tokens: []string{"outside", "manchester"}, expect: NoMatch},
		{name: "no match", tokens: []string{"dentist", "newcastle"}, expect: NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := NewScorer(DefaultConfig()).Score(tt.tokens, jobs)
			if result.Best != tt.expect {
				t.Fatalf("expected best %d, got %d (scores %v)", tt.expect, result.Best, result.Scores)
			}
			if len(result.Scores) != len(jobs) {
				t.Fatalf("expected %d scores, got %d", len(jobs), len(result.Scores))
			}
		})
	}
}

func TestScoreTieKeepsFirstJob(t *testing.T) {
	jobs := []board.Job{
		{Title: "legal internship", Location: "london"},
		{Title: "sales internship", Location: "london"},
	}

	result := NewScorer(nil).Score([]string{"looking", "internship", "london"}, jobs)
	if result.Best != 0 {
		t.Fatalf("expected first of equal jobs, got %d", result.Best)
	}
	if result.Scores[0] != result.Scores[1] {
		t.Fatalf("expected equal scores, got %v", result.Scores)
	}
}

func TestScoreCompareFirstToken(t *testing.T) {
	jobs := []board.Job{{Title: "waiter", Location: "london"}}

	cfg := DefaultConfig()
	cfg.CompareFirstToken = true

	result := NewScorer(cfg).Score([]string{"waiter"}, jobs)
	if result.Best != 0 {
		t.Fatalf("expected single token bio to match, got %d", result.Best)
	}
	if result.Scores[0] != 3 {
		t.Fatalf("expected score 3, got %v", result.Scores[0])
	}
}
