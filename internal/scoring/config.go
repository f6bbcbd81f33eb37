// Package scoring holds the lexical job scorer and its fixed configuration bundle.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/job-recommender/internal/textnorm"
)

const (
	DefaultK                     = 2
	DefaultJobScoreMultiplier    = 3.0
	DefaultPositiveLocationScore = 1.5
	DefaultNegativeLocationScore = -1.0
	DefaultNeutralLocationScore  = 1.0
)

// DefaultStopWords are removed from bios before scoring.
var DefaultStopWords = []string{
	"a", "about", "after", "all", "also", "am", "an", "and", "any", "are", "as", "at",
	"be", "been", "being", "by", "can", "could", "did", "do", "does", "had", "has",
	"have", "he", "her", "him", "his", "i", "if", "im", "is", "it", "its", "me", "my",
	"of", "on", "or", "our", "she", "so", "than", "that", "the", "their", "them",
	"then", "there", "they", "this", "those", "to", "too", "us", "very", "was", "we",
	"were", "what", "which", "who", "will", "with", "would", "you", "your", "in",
	"for",
}

// DefaultPositiveNeighbours mark a location the member wants to move to.
var DefaultPositiveNeighbours = []string{
	"relocate", "relocating", "moving", "move", "looking", "seeking", "want", "wants",
}

// DefaultNegativeNeighbours mark a location the member wants to avoid.
var DefaultNegativeNeighbours = []string{
	"outside", "ouside", "except", "not", "avoid", "avoiding", "leaving",
}

// Config is the process wide, read-only scoring configuration.
type Config struct {
	// K is how many preceding tokens are scanned around a location match.
	K int

	JobScoreMultiplier    float64
	PositiveLocationScore float64
	NegativeLocationScore float64
	NeutralLocationScore  float64

	StopWords          textnorm.WordSet
	PositiveNeighbours textnorm.WordSet
	NegativeNeighbours textnorm.WordSet

	// CompareFirstToken lets the first bio token compete for the best job.
	// Disabled, a single token bio never gets a recommendation.
	CompareFirstToken bool
}

func DefaultConfig() *Config {
	return &Config{
		K:                     DefaultK,
		JobScoreMultiplier:    DefaultJobScoreMultiplier,
		PositiveLocationScore: DefaultPositiveLocationScore,
		NegativeLocationScore: DefaultNegativeLocationScore,
		NeutralLocationScore:  DefaultNeutralLocationScore,
		StopWords:             textnorm.NewWordSet(DefaultStopWords...),
		PositiveNeighbours:    textnorm.NewWordSet(DefaultPositiveNeighbours...),
		NegativeNeighbours:    textnorm.NewWordSet(DefaultNegativeNeighbours...),
	}
}

// LowercaseWords trims and lowercases configured words, dropping empty ones.
func LowercaseWords(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		result = append(result, w)
	}
	return result
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("scoring config is required")
	}
	if c.K < 0 {
		return fmt.Errorf("k must not be negative, got %d", c.K)
	}
	if c.JobScoreMultiplier <= 0 {
		return fmt.Errorf("job score multiplier must be positive, got %v", c.JobScoreMultiplier)
	}
	if common := c.PositiveNeighbours.Intersect(c.NegativeNeighbours); len(common) > 0 {
		return fmt.Errorf("neighbour words are both positive and negative: %s", strings.Join(common, ", "))
	}
	return nil
}
