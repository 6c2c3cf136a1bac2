package views

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/quiz"
)

// path prefixes a route with the base path stored in the request context.
func path(ctx context.Context, p string) string {
	return model.BasePathFromContext(ctx) + p
}

// scoreLabel formats a graded score as "N/8".
func scoreLabel(score int) string {
	return fmt.Sprintf("%d/%d", score, quiz.NumQuestions)
}

func qName(i int) string {
	return fmt.Sprintf("q_%d", i)
}

// answerVals builds the hx-vals payload for one radio option.
func answerVals(index int, option string) string {
	b, _ := json.Marshal(map[string]any{"index": index, "option": option})
	return string(b)
}
