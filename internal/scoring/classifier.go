package scoring

// Context is the sentiment found around a location mention.
type Context int

const (
	Neutral Context = iota
	Positive
	Negative
)

func (c Context) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// ClassifyContext scans up to k tokens before pos, nearest first. The first
// neighbour found in either word set decides; negative is checked before positive.
func (c *Config) ClassifyContext(tokens []string, pos, k int) Context {
	for i := 1; i <= k; i++ {
		idx := pos - i
		if idx < 0 {
			break
		}
		if idx >= len(tokens) {
			continue
		}
		if c.NegativeNeighbours.Has(tokens[idx]) {
			return Negative
		}
		if c.PositiveNeighbours.Has(tokens[idx]) {
			return Positive
		}
	}
	return Neutral
}

// Classify returns the location score for the context around pos.
func (c *Config) Classify(tokens []string, pos, k int) float64 {
	return c.LocationScore(c.ClassifyContext(tokens, pos, k))
}

func (c *Config) LocationScore(ctx Context) float64 {
	switch ctx {
	case Positive:
		return c.PositiveLocationScore
	case Negative:
		return c.NegativeLocationScore
	default:
		return c.NeutralLocationScore
	}
}
