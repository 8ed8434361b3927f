package prompt

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/gradlink/gradlink-cli/log"
	"github.com/gradlink/gradlink-cli/model"
	"github.com/gradlink/gradlink-cli/survey"
)

type State int

const (
	Closed State = iota
	Open
	Submitting
)

// Submitter sends a finished response to the backend. Implemented by
// api.SurveysService.
type Submitter interface {
	SubmitResponse(ctx context.Context, surveyID string, req model.SubmitRequest) error
}

// UnmetError reports the first required question that is still unanswered.
type UnmetError struct {
	Question model.Question
}

func (e *UnmetError) Error() string {
	return "please answer: " + e.Question.Text
}

var ErrSubmitting = errors.New("a submission is in progress")

var errNoSurvey = errors.New("no survey is open")

// Controller owns the prompt lifecycle: closed, open with a survey and its
// in-progress answers, or submitting. It does not know who drives it; the
// host opens and dismisses it directly, or a Runner feeds it from the
// Prober. Either way validation and serialization are the same.
type Controller struct {
	mu        sync.Mutex
	state     State
	survey    *model.Survey
	questions []model.Question
	answers   *survey.Answers

	submitter   Submitter
	onSubmitted func(surveyID string)
}

func NewController(submitter Submitter) *Controller {
	return &Controller{submitter: submitter}
}

// OnSubmitted registers a notification fired after a successful submit,
// once the prompt has closed.
func (c *Controller) OnSubmitted(fn func(surveyID string)) {
	c.onSubmitted = fn
}

// OpenSurvey opens the prompt with the given survey, normalizing its
// questions and resetting all answers. Opening a different survey while one
// is already open replaces it and discards its answers.
func (c *Controller) OpenSurvey(sv *model.Survey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.survey = sv
	c.questions = survey.Normalize(sv.Questions)
	c.answers = survey.NewAnswers(c.questions)
	c.state = Open
}

// Dismiss closes the prompt and discards the entered answers. It is refused
// while a submission is in flight.
func (c *Controller) Dismiss() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Submitting {
		return ErrSubmitting
	}
	c.reset()
	return nil
}

func (c *Controller) reset() {
	c.state = Closed
	c.survey = nil
	c.questions = nil
	c.answers = nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Survey() *model.Survey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.survey
}

// Questions returns the normalized question list of the open survey.
func (c *Controller) Questions() []model.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.questions
}

// Answers exposes the in-progress answer store of the open survey,
// or nil while closed.
func (c *Controller) Answers() *survey.Answers {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answers
}

// Submit validates the entered answers and sends them to the backend.
//
// A missing required answer returns *UnmetError naming the earliest unmet
// question and leaves the prompt open. A failed submit call returns the
// error (with the server's message intact) and also leaves the prompt open
// with every answer preserved, so the user retries without re-entering
// anything. On success the prompt closes, the answers are discarded and the
// OnSubmitted notification fires.
//
// If the open survey changed while the call was in flight, the outcome is
// stale and silently discarded.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != Open {
		c.mu.Unlock()
		return errNoSurvey
	}
	if miss := survey.FirstUnmet(c.questions, c.answers); miss != nil {
		c.mu.Unlock()
		return &UnmetError{Question: *miss}
	}

	surveyID := c.survey.ID
	req := model.SubmitRequest{Answers: make([]model.ResponseAnswer, 0, len(c.questions))}
	for _, q := range c.questions {
		req.Answers = append(req.Answers, model.ResponseAnswer{
			QuestionID: q.ID,
			Type:       q.Type,
			Label:      q.Text,
			Value:      c.answers.Get(q.ID),
		})
	}
	c.state = Submitting
	c.mu.Unlock()

	err := c.submitter.SubmitResponse(ctx, surveyID, req)

	c.mu.Lock()
	if c.survey == nil || c.survey.ID != surveyID {
		// survey changed under us: drop the outcome
		c.mu.Unlock()
		log.Debugf("prompt.submit.stale: %s", surveyID)
		return nil
	}
	if err != nil {
		c.state = Open
		c.mu.Unlock()
		return err
	}
	c.reset()
	c.mu.Unlock()

	if c.onSubmitted != nil {
		c.onSubmitted(surveyID)
	}
	return nil
}
