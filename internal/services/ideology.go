package services

import (
	"github.com/mroshb/debate_arena/internal/models"
)

// Onboarding answer levels (5-point agree/disagree scale).
const (
	AnswerStronglyDisagree = "Strongly Disagree"
	AnswerDisagree         = "Disagree"
	AnswerNeutral          = "Neutral"
	AnswerAgree            = "Agree"
	AnswerStronglyAgree    = "Strongly Agree"
)

// InferIdeology scores onboarding answers into the three ideology
// buckets and returns the dominant one plus the per-bucket totals.
// Unrecognized answers contribute nothing. Ties go to the
// earliest-declared bucket in models.IdeologyBuckets.
func InferIdeology(answers map[string]string) (string, map[string]int) {
	score := map[string]int{
		models.IdeologyLiberal:      0,
		models.IdeologyModerate:     0,
		models.IdeologyConservative: 0,
	}

	for _, answer := range answers {
		switch answer {
		case AnswerStronglyDisagree:
			score[models.IdeologyConservative] += 2
		case AnswerDisagree:
			score[models.IdeologyConservative]++
		case AnswerNeutral:
			score[models.IdeologyModerate]++
		case AnswerAgree:
			score[models.IdeologyLiberal]++
		case AnswerStronglyAgree:
			score[models.IdeologyLiberal] += 2
		}
	}

	dominant := models.IdeologyBuckets[0]
	for _, bucket := range models.IdeologyBuckets[1:] {
		if score[bucket] > score[dominant] {
			dominant = bucket
		}
	}

	return dominant, score
}
