package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
	"github.com/sharedcustody/custody-calendar/internal/core/service"
)

// drainTimeout bounds how long logout and exit wait for queued saves.
const drainTimeout = 10 * time.Second

// Drainer blocks until every queued save has been delivered.
type Drainer interface {
	Wait(ctx context.Context) error
}

// App wires the terminal commands to the session, the document store and
// the remote gateways.
type App struct {
	auth      ports.AuthGateway
	session   *service.Session
	store     *service.DocumentStore
	reports   ports.ReportService
	saves     Drainer
	names     domain.Names
	exportDir string
	out       io.Writer
	now       func() time.Time
	log       zerolog.Logger
}

type Deps struct {
	Auth      ports.AuthGateway
	Session   *service.Session
	Store     *service.DocumentStore
	Reports   ports.ReportService
	Saves     Drainer
	Names     domain.Names
	ExportDir string
	Out       io.Writer
	Log       zerolog.Logger
}

func NewApp(d Deps) *App {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	dir := d.ExportDir
	if dir == "" {
		dir = "."
	}
	return &App{
		auth:      d.Auth,
		session:   d.Session,
		store:     d.Store,
		reports:   d.Reports,
		saves:     d.Saves,
		names:     d.Names,
		exportDir: dir,
		out:       out,
		now:       time.Now,
		log:       d.Log,
	}
}

// Run starts the REPL on stdin. When ctx ends first, pending saves are
// flushed and drained before Run returns.
func (a *App) Run(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	}()

	select {
	case <-done:
	case <-ctx.Done():
		printlnFn()
		_ = a.Close(context.Background())
	}
}

// SaveResult reports failed background saves to the user.
func (a *App) SaveResult(job ports.SaveJob, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, domain.ErrTransport) {
		printlnFn(fmt.Sprintf("save for %s failed: could not reach server", job.Username))
		return
	}
	printlnFn(fmt.Sprintf("save for %s failed: %v", job.Username, err))
}

func (a *App) status() string {
	if u, ok := a.session.Username(); ok {
		return u
	}
	return "(logged out)"
}

func (a *App) isLoggedIn() bool {
	return a.store.Active()
}

func (a *App) Register(ctx context.Context, args []string) error {
	return a.authenticate(ctx, args, "register", a.auth.Register)
}

func (a *App) Login(ctx context.Context, args []string) error {
	return a.authenticate(ctx, args, "login", a.auth.Login)
}

func (a *App) authenticate(ctx context.Context, args []string, verb string, call func(context.Context, string, string) (ports.AuthResult, error)) error {
	if len(args) == 0 || len(args) > 2 {
		return a.fail(fmt.Errorf("usage: %s <username> [pin]", verb))
	}
	if a.isLoggedIn() {
		if err := a.Logout(ctx); err != nil {
			return err
		}
	}

	username, pin := args[0], ""
	if len(args) == 2 {
		pin = args[1]
	} else {
		p, err := readPIN(a.out)
		if err != nil {
			return a.fail(err)
		}
		pin = p
	}

	res, err := call(ctx, username, pin)
	if err != nil {
		return a.fail(err)
	}

	a.session.Start(res.Username, res.Token)
	if err := a.store.Activate(ctx); err != nil {
		a.session.Clear()
		return a.fail(err)
	}

	a.log.Info().Str("username", res.Username).Str("action", verb).Msg("session started")
	printlnFn(fmt.Sprintf("Logged in as %s", res.Username))
	return nil
}

// Logout delivers pending saves before forgetting the session so the last
// save still carries its token.
func (a *App) Logout(ctx context.Context) error {
	if _, ok := a.session.Username(); !ok {
		printlnFn("Not logged in")
		return nil
	}
	a.store.Deactivate()
	err := a.drain(ctx)
	a.session.Clear()
	if err != nil {
		return a.fail(err)
	}
	printlnFn("Logged out")
	return nil
}

// Close flushes and drains pending saves without ending the session.
func (a *App) Close(ctx context.Context) error {
	a.store.Flush()
	if err := a.drain(ctx); err != nil {
		return a.fail(err)
	}
	return nil
}

func (a *App) drain(ctx context.Context) error {
	if a.saves == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()
	return a.saves.Wait(ctx)
}

func (a *App) Show(args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	now := a.now()
	year, month0, err := parseMonth(args, now.Year(), int(now.Month())-1)
	if err != nil {
		return a.fail(err)
	}
	renderMonth(a.out, a.store.Document(), year, month0, a.names)
	return nil
}

func (a *App) Cycle(args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) != 1 {
		return a.fail(errors.New("usage: cycle <YYYY-MM-DD>"))
	}
	key, err := domain.ParseDateKey(args[0])
	if err != nil {
		return a.fail(err)
	}
	doc := a.store.CycleCustodian(key)
	printlnFn(fmt.Sprintf("%s: %s", key, a.names.Of(doc.Entry(key).Custodian)))
	return nil
}

func (a *App) Note(args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return a.fail(errors.New("usage: note <YYYY-MM-DD> [text]"))
	}
	key, err := domain.ParseDateKey(args[0])
	if err != nil {
		return a.fail(err)
	}
	doc := a.store.SetNotes(key, strings.Join(args[1:], " "))
	if n := doc.Entry(key).Notes; n != "" {
		printlnFn(fmt.Sprintf("%s: %s", key, n))
	} else {
		printlnFn(fmt.Sprintf("%s: notes cleared", key))
	}
	return nil
}

func (a *App) Totals(args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	req, _, err := parsePeriod(args)
	if err != nil {
		return a.fail(err)
	}
	r, err := a.reports.Build(a.store.Document(), req)
	if err != nil {
		return a.fail(err)
	}
	printlnFn(r.Title)
	printlnFn(formatTotals(r.Totals, a.names))
	return nil
}

func (a *App) Export(args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	req, rest, err := parsePeriod(args)
	if err != nil {
		return a.fail(err)
	}
	format := "csv"
	if len(rest) > 0 {
		format = strings.ToLower(rest[0])
	}
	if format != "csv" && format != "json" {
		return a.fail(fmt.Errorf("unknown format %q", format))
	}

	r, err := a.reports.Build(a.store.Document(), req)
	if err != nil {
		return a.fail(err)
	}

	path := filepath.Join(a.exportDir, r.Filename+"."+format)
	f, err := os.Create(path)
	if err != nil {
		return a.fail(err)
	}
	defer f.Close()

	if format == "csv" {
		err = service.RenderCSV(f, r)
	} else {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	}
	if err != nil {
		return a.fail(err)
	}

	printlnFn("Wrote", path)
	return nil
}

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return a.fail(domain.ErrNoSession)
	}
	return nil
}

// fail prints a user-facing message for err and returns it.
func (a *App) fail(err error) error {
	switch {
	case errors.Is(err, domain.ErrTransport):
		printlnFn("could not reach server")
	case errors.Is(err, domain.ErrNoSession):
		printlnFn("Please log in first")
	default:
		printlnFn(err.Error())
	}
	a.log.Debug().Err(err).Msg("command failed")
	return err
}
