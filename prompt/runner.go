package prompt

import (
	"context"

	"github.com/gradlink/gradlink-cli/log"
	"github.com/gradlink/gradlink-cli/model"
)

// SurveyFetcher loads the full survey record for a selected eligibility
// stub. Implemented by api.SurveysService.
type SurveyFetcher interface {
	Get(ctx context.Context, surveyID string) (*model.Survey, error)
}

// Runner is the self-driven mode: it probes for an eligible survey and, on
// the first qualifying result, opens the controller with the full record.
// Hosts that want to stay in charge skip the Runner and call
// Controller.OpenSurvey themselves.
type Runner struct {
	prober  *Prober
	surveys SurveyFetcher
	ctrl    *Controller
}

func NewRunner(prober *Prober, surveys SurveyFetcher, ctrl *Controller) *Runner {
	return &Runner{prober: prober, surveys: surveys, ctrl: ctrl}
}

// Check runs one probe and reports whether a prompt was opened. Failures to
// load the selected survey are logged and treated like an empty probe; the
// survey stays marked as prompted either way, so the user is not nagged
// about a record the backend cannot serve.
func (r *Runner) Check(ctx context.Context) bool {
	stub := r.prober.Probe(ctx)
	if stub == nil {
		return false
	}

	sv, err := r.surveys.Get(ctx, stub.ID)
	if err != nil {
		log.Warnf("prompt.runner.get_survey: %s", err)
		return false
	}
	r.ctrl.OpenSurvey(sv)
	return true
}
