package prompt

import (
	"context"
	"time"

	"github.com/gradlink/gradlink-cli/log"
	"github.com/gradlink/gradlink-cli/model"
)

// DefaultThrottle is the minimum interval between two eligibility probes.
const DefaultThrottle = 60 * time.Minute

// EligibilityClient fetches the surveys the current user may answer.
// Implemented by api.SurveysService.
type EligibilityClient interface {
	Eligible(ctx context.Context) ([]model.SurveySummary, error)
}

// Session is the slice of the auth session the prober gates on.
type Session interface {
	IsAuthenticated() bool
	IsStudentOrAlumni() bool
}

// Prober decides whether to surface one new survey prompt. It only ever acts
// for authenticated students and alumni, probes the eligibility endpoint at
// most once per throttle window, and never offers the same survey twice.
type Prober struct {
	client   EligibilityClient
	history  History
	session  Session
	throttle time.Duration

	now func() time.Time // test hook
}

func NewProber(client EligibilityClient, history History, session Session, throttle time.Duration) *Prober {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	return &Prober{
		client:   client,
		history:  history,
		session:  session,
		throttle: throttle,
		now:      time.Now,
	}
}

// Probe runs one eligibility check and returns the survey to prompt, or nil
// when there is nothing to surface this run: user not eligible to be asked,
// probe throttled, no results, or everything already prompted. The selected
// survey is marked prompted before Probe returns, so a rerun never offers it
// again. Fetch failures are logged and swallowed; they never reach the host.
func (p *Prober) Probe(ctx context.Context) *model.SurveySummary {
	if !p.session.IsAuthenticated() || !p.session.IsStudentOrAlumni() {
		return nil
	}

	last, err := p.history.LastChecked()
	if err != nil {
		log.Warnf("prompt.probe.last_checked: %s", err)
	}
	now := p.now()
	if now.Sub(last) < p.throttle {
		return nil
	}

	list, fetchErr := p.client.Eligible(ctx)

	// the window starts at the attempt, not at success: a failing endpoint
	// must not be hammered on every page visit
	if err := p.history.SetLastChecked(p.now()); err != nil {
		log.Warnf("prompt.probe.set_last_checked: %s", err)
	}

	if fetchErr != nil {
		log.Warnf("prompt.probe.eligible: %s", fetchErr)
		return nil
	}

	for i := range list {
		s := &list[i]
		seen, err := p.history.Prompted(s.ID)
		if err != nil {
			log.Warnf("prompt.probe.prompted: %s", err)
			continue
		}
		if seen {
			continue
		}
		if err := p.history.MarkPrompted(s.ID); err != nil {
			log.Warnf("prompt.probe.mark_prompted: %s", err)
		}
		return s
	}
	return nil
}
