package api_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gradlink/gradlink-cli/api"
	"github.com/gradlink/gradlink-cli/fakeapi"
	"github.com/gradlink/gradlink-cli/model"
	"github.com/gradlink/gradlink-cli/prompt"
	"github.com/gradlink/gradlink-cli/session"
	"github.com/gradlink/gradlink-cli/survey"
)

func newTestClient(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(fakeapi.New("test-secret").Handler())
	t.Cleanup(srv.Close)
	return api.New(srv.URL+"/api", api.WithClientID("test-client"))
}

func login(t *testing.T, c *api.Client, email, password string) *model.User {
	t.Helper()
	res, err := c.Auth.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	c.SetToken(res.Token)
	return res.User
}

func TestAuth_LoginAndMe(t *testing.T) {
	c := newTestClient(t)

	user := login(t, c, "student@gradlink.edu", "student123")
	if user.UserType != model.RoleStudent {
		t.Errorf("role = %q, want student", user.UserType)
	}

	me, err := c.Auth.Me(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if me.Email != "student@gradlink.edu" {
		t.Errorf("me = %q", me.Email)
	}
}

func TestAuth_BadPasswordSurfacesServerMessage(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Auth.Login(context.Background(), "student@gradlink.edu", "nope")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !api.IsUnauthorized(err) {
		t.Errorf("expected 401, got %v", err)
	}
	if err.Error() != "Invalid email or password" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestAuth_MissingTokenIsUnauthorized(t *testing.T) {
	c := newTestClient(t)
	_, err := c.Auth.Me(context.Background())
	if !api.IsUnauthorized(err) {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestAuth_RegisterVerifyFlow(t *testing.T) {
	c := newTestClient(t)

	reg, err := c.Auth.Register(context.Background(), api.RegisterRequest{
		FirstName: "Nia",
		LastName:  "New",
		Email:     "nia@gradlink.edu",
		Password:  "hunter22",
		UserType:  model.RoleAlumni,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reg.RequiresVerification {
		t.Error("registration should require verification")
	}

	// logging in before verifying is refused
	if _, err := c.Auth.Login(context.Background(), "nia@gradlink.edu", "hunter22"); err == nil {
		t.Error("unverified login should fail")
	}

	if err := c.Auth.ResendOTP(context.Background(), "nia@gradlink.edu"); err != nil {
		t.Fatal(err)
	}
	res, err := c.Auth.VerifyOTP(context.Background(), "nia@gradlink.edu", "123456")
	if err != nil {
		t.Fatal(err)
	}
	if res.Token == "" || res.User.UserType != model.RoleAlumni {
		t.Errorf("verify result: %+v", res)
	}
}

func TestSurveys_EligibleSubmitCycle(t *testing.T) {
	c := newTestClient(t)
	login(t, c, "student@gradlink.edu", "student123")
	ctx := context.Background()

	stubs, err := c.Surveys.Eligible(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stubs) != 1 {
		t.Fatalf("eligible: got %d, want 1", len(stubs))
	}

	sv, err := c.Surveys.Get(ctx, stubs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sv.Questions) != 5 {
		t.Fatalf("questions: got %d, want 5", len(sv.Questions))
	}

	qs := survey.Normalize(sv.Questions)
	answers := survey.NewAnswers(qs)
	for _, q := range qs {
		switch q.Type {
		case model.KindMultiChoice:
			answers.Toggle(q.ID, q.Options[0])
		case model.KindRating:
			answers.SetRating(q.ID, 4)
		case model.KindSingleChoice:
			answers.SetText(q.ID, q.Options[0])
		default:
			answers.SetText(q.ID, "Initech")
		}
	}

	req := model.SubmitRequest{}
	for _, q := range qs {
		req.Answers = append(req.Answers, model.ResponseAnswer{
			QuestionID: q.ID, Type: q.Type, Label: q.Text, Value: answers.Get(q.ID),
		})
	}
	if err := c.Surveys.SubmitResponse(ctx, sv.ID, req); err != nil {
		t.Fatal(err)
	}

	// answered surveys drop out of the eligibility window
	stubs, err = c.Surveys.Eligible(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stubs) != 0 {
		t.Errorf("eligible after submit: got %d, want 0", len(stubs))
	}

	// and a second submission is refused with a readable message
	err = c.Surveys.SubmitResponse(ctx, sv.ID, req)
	if err == nil || err.Error() != "You have already answered this survey" {
		t.Errorf("duplicate submit: %v", err)
	}
}

// TestPromptFlow_EndToEnd drives the whole prompt stack against the dev
// server: probe, open, answer, submit, and verify the response landed.
func TestPromptFlow_EndToEnd(t *testing.T) {
	c := newTestClient(t)
	user := login(t, c, "student@gradlink.edu", "student123")
	ctx := context.Background()

	sess := session.New()
	sess.Adopt("ignored", user)

	history := prompt.NewMemoryHistory()
	prober := prompt.NewProber(c.Surveys, history, sess, time.Hour)
	ctrl := prompt.NewController(c.Surveys)

	var submittedID string
	ctrl.OnSubmitted(func(surveyID string) { submittedID = surveyID })

	runner := prompt.NewRunner(prober, c.Surveys, ctrl)
	if !runner.Check(ctx) {
		t.Fatal("expected the seeded survey to open")
	}

	sv := ctrl.Survey()
	answers := ctrl.Answers()
	for _, q := range ctrl.Questions() {
		if !q.Required {
			continue
		}
		switch q.Type {
		case model.KindRating:
			answers.SetRating(q.ID, 5)
		case model.KindSingleChoice:
			answers.SetText(q.ID, q.Options[0])
		default:
			answers.SetText(q.ID, "Initech")
		}
	}
	if err := ctrl.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submittedID != sv.ID {
		t.Errorf("submitted callback got %q, want %q", submittedID, sv.ID)
	}
	if ctrl.State() != prompt.Closed {
		t.Errorf("state = %v after submit", ctrl.State())
	}

	// the survey is now answered, so a fresh probe finds nothing
	if runner2 := prompt.NewRunner(
		prompt.NewProber(c.Surveys, prompt.NewMemoryHistory(), sess, time.Hour),
		c.Surveys, prompt.NewController(c.Surveys),
	); runner2.Check(ctx) {
		t.Error("answered survey should no longer be eligible")
	}
}

func TestSurveys_AdminCRUDAndResponses(t *testing.T) {
	c := newTestClient(t)
	login(t, c, "admin@gradlink.edu", "admin123")
	ctx := context.Background()

	created, err := c.Surveys.Create(ctx, &model.Survey{
		Title:    "Internship feedback",
		Audience: model.AudienceStudents,
		Status:   model.SurveyDraft,
		Questions: []model.Question{
			{Text: "Company name", Type: "short_text", Required: true},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Questions[0].ID == "" {
		t.Fatalf("ids not assigned: %+v", created)
	}

	created.Status = model.SurveyActive
	updated, err := c.Surveys.Update(ctx, created.ID, created)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != model.SurveyActive {
		t.Errorf("status = %q", updated.Status)
	}

	responses, err := c.Surveys.Responses(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(responses) != 0 {
		t.Errorf("fresh survey has %d responses", len(responses))
	}

	if err := c.Surveys.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Surveys.Get(ctx, created.ID); !api.IsNotFound(err) {
		t.Errorf("expected 404 after delete, got %v", err)
	}
}

func TestSurveys_AdminEndpointsRefuseStudents(t *testing.T) {
	c := newTestClient(t)
	login(t, c, "student@gradlink.edu", "student123")

	_, err := c.Surveys.List(context.Background())
	if err == nil || api.IsUnauthorized(err) || api.IsNotFound(err) {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestJobs_ListFiltersAndCRUD(t *testing.T) {
	c := newTestClient(t)
	login(t, c, "admin@gradlink.edu", "admin123")
	ctx := context.Background()

	companies, err := c.Companies.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(companies) == 0 {
		t.Fatal("expected seeded company")
	}

	job, err := c.Jobs.Create(ctx, model.JobRequest{
		Title:      "QA Intern",
		Company:    companies[0].ID,
		JobType:    "internship",
		Categories: []string{"Quality"},
		Status:     model.JobActive,
	})
	if err != nil {
		t.Fatal(err)
	}
	if job.IsApproved {
		t.Error("new job should start unapproved")
	}

	all, err := c.Jobs.List(ctx, api.ListJobsOptions{})
	if err != nil {
		t.Fatal(err)
	}
	approved, err := c.Jobs.List(ctx, api.ListJobsOptions{ApprovedOnly: true, Status: model.JobActive})
	if err != nil {
		t.Fatal(err)
	}
	if len(approved) != len(all)-1 {
		t.Errorf("approvedOnly filter: all=%d approved=%d", len(all), len(approved))
	}

	yes := true
	job, err = c.Jobs.Update(ctx, job.ID, model.JobRequest{IsApproved: &yes})
	if err != nil {
		t.Fatal(err)
	}
	if !job.IsApproved {
		t.Error("approval flip lost")
	}

	cats, err := c.Jobs.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, cat := range cats {
		if cat == "Quality" {
			found = true
		}
	}
	if !found {
		t.Errorf("categories = %v", cats)
	}

	if err := c.Jobs.Delete(ctx, job.ID); err != nil {
		t.Fatal(err)
	}
}

func TestUsers_AdminManagement(t *testing.T) {
	c := newTestClient(t)
	login(t, c, "admin@gradlink.edu", "admin123")
	ctx := context.Background()

	created, err := c.Users.Create(ctx, api.CreateUserRequest{
		FirstName: "Lee",
		LastName:  "Lecturer",
		Email:     "lee@gradlink.edu",
		Password:  "s3cret99",
		UserType:  model.RoleAlumni,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !created.IsActive || !created.IsVerified {
		t.Errorf("admin-created user should be active and verified: %+v", created)
	}

	off := false
	updated, err := c.Users.Update(ctx, created.ID, api.UpdateUserRequest{IsActive: &off})
	if err != nil {
		t.Fatal(err)
	}
	if updated.IsActive {
		t.Error("deactivation lost")
	}

	// deactivated users cannot log in
	if _, err := c.Auth.Login(ctx, "lee@gradlink.edu", "s3cret99"); err == nil {
		t.Error("deactivated login should fail")
	}

	if err := c.Users.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
}
