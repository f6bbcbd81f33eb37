// Package ai describes optional LLM written explanations of recommendations.
package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/board"
)

type Explanation struct {
	Summary string
	Message string
	Raw     string
}

type Explainer interface {
	Explain(ctx context.Context, member *board.Member, job *board.Job) (*Explanation, error)
}

// Annotate asks the explainer about every member that has a recommendation.
// Failures are recorded on the member and do not stop the loop. It returns how
// many explanations succeeded.
func Annotate(ctx context.Context, logger *zap.Logger, explainer Explainer, members *board.Members) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	explained := 0
	for _, member := range members.Items {
		if member.RecommendedJob == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return explained, err
		}

		explanation, err := explainer.Explain(ctx, member, member.RecommendedJob)
		if err != nil {
			logger.Warn("AI explanation failed",
				zap.String("member", member.Name),
				zap.Error(err),
			)
			member.Explanation = &board.Explanation{Error: err.Error()}
			continue
		}

		member.Explanation = &board.Explanation{
			Summary: explanation.Summary,
			Message: explanation.Message,
			Raw:     explanation.Raw,
		}
		explained++
	}

	logger.Info("AI explanations completed",
		zap.Int("recommended_members", members.Recommended()),
		zap.Int("explained", explained),
	)

	return explained, nil
}
