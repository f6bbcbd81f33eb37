// Package textnorm turns free text bios into the token sequences used for scoring.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/spigell/job-recommender/internal/board"
)

const tokenSeparator = " "

// Normalizer strips, lowercases, tokenizes and removes stop words from bios.
type Normalizer struct {
	stopWords WordSet
}

func New(stopWords WordSet) *Normalizer {
	if stopWords == nil {
		stopWords = WordSet{}
	}
	return &Normalizer{stopWords: stopWords}
}

// NormalizeBio runs RemovePunctuation, lowercasing, Tokenize and RemoveStopWords in that order.
func (n *Normalizer) NormalizeBio(bio string) []string {
	clean := strings.ToLower(RemovePunctuation(bio))
	return n.RemoveStopWords(Tokenize(clean))
}

// RemoveStopWords keeps the order of the remaining tokens. Matching is exact, so
// tokens are expected to be lowercased already.
func (n *Normalizer) RemoveStopWords(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if n.stopWords.Has(token) {
			continue
		}
		kept = append(kept, token)
	}
	return kept
}

// RemovePunctuation drops every rune that is neither an ASCII letter nor whitespace.
// Nothing is put in place of a dropped rune.
func RemovePunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if isASCIILetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)
}

// Tokenize splits on every single space. Repeated spaces produce empty tokens.
func Tokenize(text string) []string {
	return strings.Split(text, tokenSeparator)
}

// NormalizeJob returns a lowercased copy of the job used only for matching.
func NormalizeJob(job board.Job) board.Job {
	job.Title = strings.ToLower(job.Title)
	job.Location = strings.ToLower(job.Location)
	return job
}

// NormalizeJobs keeps the catalog order.
func NormalizeJobs(jobs []*board.Job) []board.Job {
	normalized := make([]board.Job, 0, len(jobs))
	for _, job := range jobs {
		normalized = append(normalized, NormalizeJob(*job))
	}
	return normalized
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
