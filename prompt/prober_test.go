package prompt

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/gradlink/gradlink-cli/model"
)

type fakeEligibility struct {
	calls int
	list  []model.SurveySummary
	err   error
}

func (f *fakeEligibility) Eligible(ctx context.Context) ([]model.SurveySummary, error) {
	f.calls++
	return f.list, f.err
}

type fakeSession struct {
	authed  bool
	student bool
}

func (s fakeSession) IsAuthenticated() bool   { return s.authed }
func (s fakeSession) IsStudentOrAlumni() bool { return s.student }

func TestProber_Throttle(t *testing.T) {
	client := &fakeEligibility{}
	p := NewProber(client, NewMemoryHistory(), fakeSession{true, true}, time.Hour)

	p.Probe(context.Background())
	p.Probe(context.Background())

	if client.calls != 1 {
		t.Errorf("two probes within the window: got %d network calls, want 1", client.calls)
	}
}

func TestProber_ThrottleExpires(t *testing.T) {
	client := &fakeEligibility{}
	p := NewProber(client, NewMemoryHistory(), fakeSession{true, true}, time.Hour)

	now := time.Now()
	p.now = func() time.Time { return now }
	p.Probe(context.Background())

	p.now = func() time.Time { return now.Add(61 * time.Minute) }
	p.Probe(context.Background())

	if client.calls != 2 {
		t.Errorf("expired window should probe again: got %d calls, want 2", client.calls)
	}
}

func TestProber_RequiresStudentOrAlumniSession(t *testing.T) {
	cases := []struct {
		name string
		s    fakeSession
	}{
		{"anonymous", fakeSession{false, false}},
		{"admin", fakeSession{true, false}},
	}
	for _, c := range cases {
		client := &fakeEligibility{}
		p := NewProber(client, NewMemoryHistory(), c.s, time.Hour)
		if got := p.Probe(context.Background()); got != nil {
			t.Errorf("%s: expected no prompt, got %+v", c.name, got)
		}
		if client.calls != 0 {
			t.Errorf("%s: expected no network call, got %d", c.name, client.calls)
		}
	}
}

func TestProber_DedupesPromptedSurveys(t *testing.T) {
	client := &fakeEligibility{list: []model.SurveySummary{{ID: "s1"}, {ID: "s2"}}}
	history := NewMemoryHistory()
	if err := history.MarkPrompted("s1"); err != nil {
		t.Fatal(err)
	}
	p := NewProber(client, history, fakeSession{true, true}, time.Hour)

	got := p.Probe(context.Background())
	if got == nil || got.ID != "s2" {
		t.Fatalf("expected s2, got %+v", got)
	}

	for _, id := range []string{"s1", "s2"} {
		seen, err := history.Prompted(id)
		if err != nil {
			t.Fatal(err)
		}
		if !seen {
			t.Errorf("%s should be in the prompted set", id)
		}
	}
}

func TestProber_AllPromptedMeansNoPrompt(t *testing.T) {
	client := &fakeEligibility{list: []model.SurveySummary{{ID: "s1"}}}
	history := NewMemoryHistory()
	if err := history.MarkPrompted("s1"); err != nil {
		t.Fatal(err)
	}
	p := NewProber(client, history, fakeSession{true, true}, time.Hour)
	if got := p.Probe(context.Background()); got != nil {
		t.Errorf("expected nothing, got %+v", got)
	}
}

func TestProber_FetchFailureSwallowedAndWindowStillStarts(t *testing.T) {
	client := &fakeEligibility{err: errors.New("boom")}
	history := NewMemoryHistory()
	p := NewProber(client, history, fakeSession{true, true}, time.Hour)

	if got := p.Probe(context.Background()); got != nil {
		t.Errorf("failure must look like no eligible survey, got %+v", got)
	}

	last, err := history.LastChecked()
	if err != nil {
		t.Fatal(err)
	}
	if last.IsZero() {
		t.Error("last-checked must be recorded even when the call fails")
	}

	// and the throttle now applies
	p.Probe(context.Background())
	if client.calls != 1 {
		t.Errorf("got %d calls, want 1", client.calls)
	}
}
