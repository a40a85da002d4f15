package services

import (
	"testing"

	"github.com/mroshb/debate_arena/internal/models"
)

func TestInferIdeology(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
		want    string
	}{
		{
			name: "Strong agreement leans liberal",
			answers: map[string]string{
				"q1": AnswerStronglyAgree,
				"q2": AnswerAgree,
				"q3": AnswerNeutral,
			},
			want: models.IdeologyLiberal,
		},
		{
			name: "Strong disagreement leans conservative",
			answers: map[string]string{
				"q1": AnswerStronglyDisagree,
				"q2": AnswerDisagree,
				"q3": AnswerNeutral,
			},
			want: models.IdeologyConservative,
		},
		{
			name: "Neutral answers lean moderate",
			answers: map[string]string{
				"q1": AnswerNeutral,
				"q2": AnswerNeutral,
				"q3": AnswerAgree,
			},
			want: models.IdeologyModerate,
		},
		{
			name: "Liberal wins three-way tie",
			answers: map[string]string{
				"q1": AnswerAgree,
				"q2": AnswerNeutral,
				"q3": AnswerDisagree,
			},
			want: models.IdeologyLiberal,
		},
		{
			name: "Moderate beats conservative on tie",
			answers: map[string]string{
				"q1": AnswerNeutral,
				"q2": AnswerDisagree,
			},
			want: models.IdeologyModerate,
		},
		{
			name: "Unrecognized answers score nothing",
			answers: map[string]string{
				"q1": "Maybe",
				"q2": AnswerStronglyDisagree,
			},
			want: models.IdeologyConservative,
		},
		{
			name:    "Empty answers fall to first bucket",
			answers: map[string]string{},
			want:    models.IdeologyLiberal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := InferIdeology(tt.answers)
			if got != tt.want {
				t.Errorf("InferIdeology() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferIdeology_ScoreWeights(t *testing.T) {
	answers := map[string]string{
		"q1": AnswerStronglyDisagree, // +2 Conservative
		"q2": AnswerDisagree,         // +1 Conservative
		"q3": AnswerNeutral,          // +1 Moderate
		"q4": AnswerAgree,            // +1 Liberal
		"q5": AnswerStronglyAgree,    // +2 Liberal
	}

	_, score := InferIdeology(answers)

	if score[models.IdeologyConservative] != 3 {
		t.Errorf("Conservative = %d, want 3", score[models.IdeologyConservative])
	}
	if score[models.IdeologyModerate] != 1 {
		t.Errorf("Moderate = %d, want 1", score[models.IdeologyModerate])
	}
	if score[models.IdeologyLiberal] != 3 {
		t.Errorf("Liberal = %d, want 3", score[models.IdeologyLiberal])
	}
}
