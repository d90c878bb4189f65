package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/adapter"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

const usage = `commands:
  status
  signup [-full-name NAME] USERNAME EMAIL PASSWORD
  login EMAIL PASSWORD
  logout
  me
  tasks [-status pending|in-progress|completed]
  add [-desc TEXT] [-due RFC3339] [-status STATUS] TITLE...
  done ID
  rm ID`

type App struct {
	api    adapter.TaskAPIClient
	out    io.Writer
	logger *logger.Logger
}

func NewApp(api adapter.TaskAPIClient, out io.Writer, logger *logger.Logger) (*App, error) {
	if api == nil {
		return nil, errNoAPIClient
	}

	return &App{api: api, out: out, logger: logger}, nil
}

// Usage returns the command summary.
func Usage() string {
	return usage
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	a.logger.Debug().Str("command", cmd).Msg("running command")

	switch cmd {
	case "status":
		return a.status(ctx)
	case "signup":
		return a.signup(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "me":
		return a.me(ctx)
	case "tasks":
		return a.tasks(ctx, rest)
	case "add":
		return a.add(ctx, rest)
	case "done":
		return a.done(ctx, rest)
	case "rm":
		return a.remove(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) status(ctx context.Context) error {
	status, err := a.api.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (version %s)\n", status.Message, status.Version)
	return nil
}

func (a *App) signup(ctx context.Context, args []string) error {
	fs := a.flagSet("signup")
	fullName := fs.String("full-name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("%w: signup needs USERNAME EMAIL PASSWORD", ErrUsage)
	}

	req := models.SignupRequest{
		Username: fs.Arg(0),
		Email:    fs.Arg(1),
		Password: fs.Arg(2),
	}
	if *fullName != "" {
		req.FullName = fullName
	}

	result, err := a.api.Signup(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "signed up as %s (%s)\n", result.User.Username, result.User.ID)
	a.printToken(result.AccessToken)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login needs EMAIL PASSWORD", ErrUsage)
	}

	result, err := a.api.Login(ctx, models.LoginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "logged in as %s\n", result.User.Username)
	a.printToken(result.AccessToken)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) me(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s <%s> id=%s", user.Username, user.Email, user.ID)
	if user.FullName != nil {
		fmt.Fprintf(a.out, " name=%q", *user.FullName)
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *App) tasks(ctx context.Context, args []string) error {
	fs := a.flagSet("tasks")
	status := fs.String("status", "", "only tasks with this status")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	tasks, err := a.api.ListTasks(ctx, models.TaskStatus(*status))
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "no tasks")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tDUE\tTITLE")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Status, due, t.Title)
	}
	return tw.Flush()
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	desc := fs.String("desc", "", "description")
	due := fs.String("due", "", "due date, ISO 8601 (UTC when no offset)")
	status := fs.String("status", "", "initial status")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: add needs a TITLE", ErrUsage)
	}

	req := models.TaskCreate{Title: strings.Join(fs.Args(), " ")}
	if *status != "" {
		req.Status = models.Some(models.TaskStatus(*status))
	}
	if *desc != "" {
		req.Description = desc
	}
	if *due != "" {
		dueDate, err := models.ParseDueDate(*due)
		if err != nil {
			return fmt.Errorf("%w: bad -due: %w", ErrUsage, err)
		}
		req.DueDate = &dueDate
	}

	task, err := a.api.CreateTask(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "created %s [%s] %s\n", task.ID, task.Status, task.Title)
	return nil
}

func (a *App) done(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: done needs ID", ErrUsage)
	}

	task, err := a.api.UpdateTask(ctx, args[0], models.TaskUpdate{Status: models.Some(models.TaskStatusCompleted)})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s [%s] %s\n", task.ID, task.Status, task.Title)
	return nil
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: rm needs ID", ErrUsage)
	}

	if err := a.api.DeleteTask(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "deleted %s\n", args[0])
	return nil
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) printToken(token string) {
	fmt.Fprintf(a.out, "token: %s\nexport TASKS_TOKEN=%s\n", token, token)
}
