package event

import (
	"time"

	"github.com/kk-code-lab/quizmark/internal/grade"
)

const TypeMarkupGraded = "quiz.markup.graded"

// Graded is the payload of TypeMarkupGraded.
type Graded struct {
	DocumentID string    `json:"document_id"`
	LearnerID  string    `json:"learner_id,omitempty"`
	Score      int       `json:"score"`
	Max        int       `json:"max"`
	Percent    float64   `json:"percent"`
	Answered   int       `json:"answered"`
	Units      int       `json:"units"`
	GradedAt   time.Time `json:"graded_at"`
}

func NewGraded(report grade.Report, learnerID string, at time.Time) Graded {
	return Graded{
		DocumentID: report.DocumentID,
		LearnerID:  learnerID,
		Score:      report.Score,
		Max:        report.Max,
		Percent:    report.Percent(),
		Answered:   report.Answered,
		Units:      report.Units,
		GradedAt:   at.UTC(),
	}
}
