package survey

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gradlink/gradlink-cli/model"
)

// kindAliases maps every type string the backend has ever emitted onto the
// canonical vocabulary. Canonical values map to themselves so normalization
// is idempotent.
var kindAliases = map[string]model.QuestionKind{
	"text":       model.KindShortText,
	"short":      model.KindShortText,
	"short_text": model.KindShortText,

	"textarea":    model.KindLongText,
	"essay":       model.KindLongText,
	"paragraph":   model.KindLongText,
	"short_essay": model.KindLongText,
	"long_text":   model.KindLongText,

	"radio":           model.KindSingleChoice,
	"choice":          model.KindSingleChoice,
	"single":          model.KindSingleChoice,
	"multiple_choice": model.KindSingleChoice,

	"checkbox": model.KindMultiChoice,
	"multi":    model.KindMultiChoice,

	"rating": model.KindRating,
}

// CanonicalKind resolves a raw type string to its canonical kind.
// Unrecognized or empty types render as short text.
func CanonicalKind(raw string) model.QuestionKind {
	if kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return kind
	}
	return model.KindShortText
}

const defaultScaleMax = 5

// Normalize turns raw survey questions into a canonical ordered list:
// questions sorted by their order field (stable, missing order sorts as 0),
// every question with a non-empty identifier, display text, canonical type,
// non-nil options and a positive rating scale. The input is not modified.
// Normalizing an already normalized list yields an identical list.
func Normalize(raw []model.Question) []model.Question {
	qs := make([]model.Question, len(raw))
	copy(qs, raw)
	sort.SliceStable(qs, func(i, j int) bool {
		return qs[i].Order < qs[j].Order
	})

	for i := range qs {
		q := &qs[i]

		switch {
		case q.ID != "":
		case q.AltID != "":
			q.ID = q.AltID
		case q.Key != "":
			q.ID = q.Key
		default:
			q.ID = fmt.Sprintf("q%d", i)
		}

		q.Type = CanonicalKind(string(q.Type))

		if q.Text == "" {
			q.Text = q.Label
		}
		if q.Text == "" {
			q.Text = fmt.Sprintf("Question %d", i+1)
		}

		if q.Options == nil {
			q.Options = []string{}
		}
		if q.ScaleMax <= 0 {
			q.ScaleMax = defaultScaleMax
		}
	}
	return qs
}
