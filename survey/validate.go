package survey

import "github.com/gradlink/gradlink-cli/model"

// FirstUnmet scans the normalized questions left to right and returns the
// first required question whose stored answer does not count as present, or
// nil when every requirement is met. The scan short-circuits, so when several
// questions are unanswered the earliest one in order is the one reported.
//
// A rating of 0 counts as unanswered: the scale runs 1..ScaleMax.
func FirstUnmet(questions []model.Question, answers *Answers) *model.Question {
	for i := range questions {
		q := &questions[i]
		if !q.Required {
			continue
		}
		v := answers.Get(q.ID)
		switch q.Type {
		case model.KindMultiChoice:
			if len(v.Selected) == 0 {
				return q
			}
		case model.KindRating:
			if v.Rating <= 0 {
				return q
			}
		default:
			if v.Text == "" {
				return q
			}
		}
	}
	return nil
}
