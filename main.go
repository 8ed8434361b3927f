package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gradlink/gradlink-cli/api"
	"github.com/gradlink/gradlink-cli/config"
	"github.com/gradlink/gradlink-cli/fakeapi"
	"github.com/gradlink/gradlink-cli/log"
	"github.com/gradlink/gradlink-cli/model"
	"github.com/gradlink/gradlink-cli/prompt"
	"github.com/gradlink/gradlink-cli/session"
	"github.com/gradlink/gradlink-cli/store"
	"github.com/gradlink/gradlink-cli/term"
)

const usage = `usage: gradlink <command> [flags]

commands:
  login      authenticate and persist the session token
  logout     drop the persisted session token
  whoami     show the account behind the current token
  register   create an account and verify the emailed code
  jobs       list job postings
  companies  list companies
  users      list accounts (admin)
  surveys    list surveys (admin), or "surveys pending" for your own queue
  prompt     check for an eligible survey and answer it
  serve      run the in-memory dev API server
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command, args := os.Args[1], os.Args[2:]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	cfg, err := config.ParseFlags(fs, args)
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	ctx := context.Background()
	switch command {
	case "login":
		err = runLogin(ctx, cfg)
	case "logout":
		err = runLogout(cfg)
	case "whoami":
		err = runWhoami(ctx, cfg)
	case "register":
		err = runRegister(ctx, cfg)
	case "jobs":
		err = runJobs(ctx, cfg, fs.Args())
	case "companies":
		err = runCompanies(ctx, cfg)
	case "users":
		err = runUsers(ctx, cfg)
	case "surveys":
		err = runSurveys(ctx, cfg, fs.Args())
	case "prompt":
		err = runPrompt(ctx, cfg)
	case "serve":
		err = runServe(cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("main."+command+":", err)
	}
}

// app bundles the pieces every online command needs: the persisted local
// state, the API client, and the session restored from the stored token.
type app struct {
	store   *store.Store
	client  *api.Client
	session *session.Session
}

func setup(ctx context.Context, cfg config.Config) (*app, error) {
	st, err := store.Open(cfg.StatePath)
	if err != nil {
		return nil, err
	}

	clientID := cfg.ClientID
	if clientID == "" {
		if clientID, err = st.ClientID(); err != nil {
			st.Close()
			return nil, err
		}
	}

	a := &app{
		store:   st,
		client:  api.New(cfg.APIURL, api.WithClientID(clientID)),
		session: session.New(),
	}

	token, ok, err := st.Get(store.TokenKey)
	if err != nil {
		st.Close()
		return nil, err
	}
	if ok {
		if session.Expired(token, time.Now()) {
			log.Debug("main.session: stored token expired, dropping it")
			_ = st.Delete(store.TokenKey)
			return a, nil
		}
		a.client.SetToken(token)
		user, err := a.client.Auth.Me(ctx)
		if err != nil {
			if api.IsUnauthorized(err) {
				_ = st.Delete(store.TokenKey)
				return a, nil
			}
			st.Close()
			return nil, err
		}
		a.session.Adopt(token, user)
	}
	return a, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		log.Warn("main.store.close:", err)
	}
}

func (a *app) requireAuth() error {
	if !a.session.IsAuthenticated() {
		return errors.New("not logged in (run: gradlink login)")
	}
	return nil
}

func runLogin(ctx context.Context, cfg config.Config) error {
	a, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	form := term.NewForm(os.Stdin, os.Stdout)
	email, err := form.ReadLine("email: ")
	if err != nil {
		return err
	}
	password, err := form.ReadLine("password: ")
	if err != nil {
		return err
	}

	res, err := a.client.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.store.Set(store.TokenKey, res.Token); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", res.User.FullName(), res.User.UserType)
	return nil
}

func runLogout(cfg config.Config) error {
	st, err := store.Open(cfg.StatePath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(store.TokenKey); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(ctx context.Context, cfg config.Config) error {
	a, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}
	u := a.session.User()
	fmt.Printf("%s <%s> %s\n", u.FullName(), u.Email, u.UserType)
	if u.Course != "" {
		fmt.Printf("%s, year %s, student id %s\n", u.Course, u.YearLevel, u.StudentID)
	}
	return nil
}

func runRegister(ctx context.Context, cfg config.Config) error {
	a, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	form := term.NewForm(os.Stdin, os.Stdout)
	req := api.RegisterRequest{UserType: model.RoleStudent}
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"first name: ", &req.FirstName},
		{"last name: ", &req.LastName},
		{"email: ", &req.Email},
		{"password: ", &req.Password},
		{"course: ", &req.Course},
		{"year level: ", &req.YearLevel},
		{"student id: ", &req.StudentID},
	}
	for _, f := range fields {
		if *f.dst, err = form.ReadLine(f.prompt); err != nil {
			return err
		}
	}

	res, err := a.client.Auth.Register(ctx, req)
	if err != nil {
		return err
	}
	if !res.RequiresVerification {
		fmt.Println("Account created.")
		return nil
	}
	if res.MailError {
		fmt.Println("Account created, but the verification mail could not be sent.")
		fmt.Println("Ask an administrator to resend the code, then enter it below.")
	} else {
		fmt.Println("Account created. Check your mail for the verification code.")
	}

	otp, err := form.ReadLine("code: ")
	if err != nil {
		return err
	}
	login, err := a.client.Auth.VerifyOTP(ctx, req.Email, otp)
	if err != nil {
		return err
	}
	if err := a.store.Set(store.TokenKey, login.Token); err != nil {
		return err
	}
	fmt.Printf("Verified and logged in as %s\n", login.User.FullName())
	return nil
}

func runJobs(ctx context.Context, cfg config.Config, args []string) error {
	a, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "categories" {
		cats, err := a.client.Jobs.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Println(c)
		}
		return nil
	}

	opts := api.ListJobsOptions{}
	if !a.session.IsAdmin() {
		opts.ApprovedOnly = true
		opts.Status = model.JobActive
	}
	jobs, err := a.client.Jobs.List(ctx, opts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCOMPANY\tTYPE\tLOCATION\tSTATUS")
	for _, j := range jobs {
		company := ""
		if j.Company != nil {
			company = j.Company.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", j.Title, company, j.JobType, j.Location, j.Status)
	}
	return w.Flush()
}

func runCompanies(ctx context.Context, cfg config.Config) error {
	a, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}
	companies, err := a.client.Companies.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLOCATION\tWEBSITE")
	for _, c := range companies {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Location, c.Website)
	}
	return w.Flush()
}

func runUsers(ctx context.Context, cfg config.Config) error {
	a, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}
	users, err := a.client.Users.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.FullName(), u.Email, u.UserType, u.IsActive)
	}
	return w.Flush()
}

func runSurveys(ctx context.Context, cfg config.Config, args []string) error {
	a, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "pending" {
		stubs, err := a.client.Surveys.Eligible(ctx)
		if err != nil {
			return err
		}
		if len(stubs) == 0 {
			fmt.Println("No surveys waiting for you.")
			return nil
		}
		for _, s := range stubs {
			fmt.Printf("%s\t%s\n", s.ID, s.Title)
		}
		return nil
	}

	surveys, err := a.client.Surveys.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUDIENCE\tSTATUS\tQUESTIONS")
	for _, s := range surveys {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", s.ID, s.Title, s.Audience, s.Status, len(s.Questions))
	}
	return w.Flush()
}

// runPrompt is the interactive analog of the web client's survey popup:
// probe at most once per throttle window, open the first unseen survey,
// collect answers, submit.
func runPrompt(ctx context.Context, cfg config.Config) error {
	a, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	history := prompt.NewHistory(a.store)
	prober := prompt.NewProber(a.client.Surveys, history, a.session, cfg.Throttle)
	ctrl := prompt.NewController(a.client.Surveys)
	runner := prompt.NewRunner(prober, a.client.Surveys, ctrl)

	if !runner.Check(ctx) {
		fmt.Println("No surveys right now.")
		return nil
	}

	sv := ctrl.Survey()
	fmt.Printf("Survey: %s\n", sv.Title)
	if sv.Description != "" {
		fmt.Println(sv.Description)
	}

	form := term.NewForm(os.Stdin, os.Stdout)
	if err := form.Fill(ctrl.Questions(), ctrl.Answers()); err != nil {
		return err
	}

	if err := ctrl.Submit(ctx); err != nil {
		var unmet *prompt.UnmetError
		if errors.As(err, &unmet) {
			return fmt.Errorf("unanswered required question: %s", unmet.Question.Text)
		}
		return err
	}
	fmt.Println("Thanks, your response is in.")
	return nil
}

func runServe(cfg config.Config) error {
	handler := fakeapi.New(cfg.TokenSecret).Handler()

	srv := &http.Server{
		Addr:         cfg.ServeAddr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on http://" + cfg.ServeAddr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
