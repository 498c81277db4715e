package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
	"github.com/sharedcustody/custody-calendar/internal/core/service"
)

// ---- Stubs ----

type stubRemote struct {
	mu      sync.Mutex
	docs    map[string]domain.Document
	saves   int
	authErr error
	loadErr error
	tokens  []string
	session *service.Session
}

func (r *stubRemote) Register(_ context.Context, username, _ string) (ports.AuthResult, error) {
	if r.authErr != nil {
		return ports.AuthResult{}, r.authErr
	}
	return ports.AuthResult{Username: strings.ToLower(username), Token: "tok"}, nil
}

func (r *stubRemote) Login(ctx context.Context, username, pin string) (ports.AuthResult, error) {
	return r.Register(ctx, username, pin)
}

func (r *stubRemote) Load(_ context.Context, username string) (domain.Document, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[username].Clone(), nil
}

func (r *stubRemote) Save(_ context.Context, username string, doc domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[username] = doc
	r.saves++
	r.tokens = append(r.tokens, r.session.Token())
	return nil
}

// syncQueue delivers saves inline so Wait has nothing left to do.
type syncQueue struct{ remote *stubRemote }

func (q syncQueue) Enqueue(job ports.SaveJob) {
	_ = q.remote.Save(context.Background(), job.Username, job.Document)
}

func (q syncQueue) Wait(context.Context) error { return nil }

func newTestApp(t *testing.T, remote *stubRemote) (*App, *bytes.Buffer, *[]string) {
	t.Helper()
	lines := silence(t)

	session := service.NewSession()
	remote.session = session
	if remote.docs == nil {
		remote.docs = map[string]domain.Document{}
	}
	q := syncQueue{remote: remote}
	store := service.NewDocumentStore(session, remote, q, time.Hour, zerolog.Nop())

	out := &bytes.Buffer{}
	names := domain.Names{A: "Mom", B: "Dad"}
	app := NewApp(Deps{
		Auth:      remote,
		Session:   session,
		Store:     store,
		Reports:   service.NewReportService(names),
		Saves:     q,
		Names:     names,
		ExportDir: t.TempDir(),
		Out:       out,
		Log:       zerolog.Nop(),
	})
	app.now = func() time.Time { return time.Date(2024, time.February, 10, 12, 0, 0, 0, time.Local) }
	return app, out, lines
}

func lastLine(lines *[]string) string {
	if len(*lines) == 0 {
		return ""
	}
	return (*lines)[len(*lines)-1]
}

// ---- Tests ----

func TestApp_LoginLoadsDocument(t *testing.T) {
	remote := &stubRemote{docs: map[string]domain.Document{
		"alice": {"2024-02-01": {Custodian: domain.GuardianA, Notes: "swap"}},
	}}
	app, out, lines := newTestApp(t, remote)

	require.NoError(t, app.Login(context.Background(), []string{"Alice", "1234"}))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "Logged in as alice", lastLine(lines))

	require.NoError(t, app.Show(nil))
	grid := out.String()
	assert.Contains(t, grid, "February 2024")
	assert.Contains(t, grid, "Mon  Tue  Wed  Thu  Fri  Sat  Sun")
	assert.Contains(t, grid, strings.Repeat(" ", 15)+" 1A*  2.   3.   4.\n")
	assert.Contains(t, grid, "Mom: 1  Dad: 0  Unassigned: 28")
}

func TestApp_LoginTransportErrorStaysLoggedOut(t *testing.T) {
	remote := &stubRemote{authErr: fmt.Errorf("dial: %w", domain.ErrTransport)}
	app, _, lines := newTestApp(t, remote)

	err := app.Login(context.Background(), []string{"alice", "1234"})
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, "could not reach server", lastLine(lines))
}

func TestApp_FailedLoadClearsSession(t *testing.T) {
	remote := &stubRemote{loadErr: errors.New("boom")}
	app, _, _ := newTestApp(t, remote)

	require.Error(t, app.Login(context.Background(), []string{"alice", "1234"}))
	_, ok := app.session.Username()
	assert.False(t, ok)
}

func TestApp_LoginPromptsForPIN(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("4321\n"), nil }
	t.Cleanup(func() { readPassword = orig })

	app, out, _ := newTestApp(t, &stubRemote{})
	require.NoError(t, app.Register(context.Background(), []string{"bob"}))
	assert.Contains(t, out.String(), "PIN: ")
	assert.True(t, app.isLoggedIn())
}

func TestApp_EditsAreSavedOnCloseWithToken(t *testing.T) {
	remote := &stubRemote{}
	app, _, _ := newTestApp(t, remote)
	ctx := context.Background()

	require.NoError(t, app.Login(ctx, []string{"alice", "1234"}))
	require.NoError(t, app.Cycle([]string{"2024-02-05"}))
	require.NoError(t, app.Cycle([]string{"2024-02-05"}))
	require.NoError(t, app.Note([]string{"2024-02-05", "dentist", "at", "3"}))
	assert.Equal(t, 0, remote.saves, "debounced save must not fire before the window")

	require.NoError(t, app.Close(ctx))
	assert.Equal(t, 1, remote.saves)
	assert.Equal(t, domain.DayEntry{Custodian: domain.GuardianB, Notes: "dentist at 3"}, remote.docs["alice"]["2024-02-05"])

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, []string{"tok"}, remote.tokens)
}

func TestApp_CommandsRequireLogin(t *testing.T) {
	app, _, lines := newTestApp(t, &stubRemote{})

	for name, run := range map[string]func() error{
		"show":   func() error { return app.Show(nil) },
		"cycle":  func() error { return app.Cycle([]string{"2024-02-05"}) },
		"note":   func() error { return app.Note([]string{"2024-02-05", "x"}) },
		"totals": func() error { return app.Totals([]string{"year", "2024"}) },
		"export": func() error { return app.Export([]string{"year", "2024"}) },
	} {
		err := run()
		assert.ErrorIs(t, err, domain.ErrNoSession, name)
		assert.Equal(t, "Please log in first", lastLine(lines), name)
	}
}

func TestApp_TotalsAndExport(t *testing.T) {
	remote := &stubRemote{docs: map[string]domain.Document{
		"alice": {
			"2024-01-02": {Custodian: domain.GuardianA},
			"2024-03-30": {Custodian: domain.GuardianB},
			"2024-04-01": {Custodian: domain.GuardianB},
		},
	}}
	app, _, lines := newTestApp(t, remote)
	require.NoError(t, app.Login(context.Background(), []string{"alice", "1234"}))

	require.NoError(t, app.Totals([]string{"quarter", "2024", "1"}))
	assert.Equal(t, "Mom: 1  Dad: 1  Unassigned: 89", lastLine(lines))

	require.NoError(t, app.Export([]string{"month", "2024", "3"}))
	path := filepath.Join(app.exportDir, "custody-report-month-2024-3.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "March,2024-03-30,Sat,Dad,")
	assert.Contains(t, string(data), "total,Dad,1")

	require.NoError(t, app.Export([]string{"year", "2024", "json"}))
	_, err = os.Stat(filepath.Join(app.exportDir, "custody-report-year-2024.json"))
	require.NoError(t, err)

	assert.Error(t, app.Export([]string{"year", "2024", "pdf"}))
}

func TestParsePeriod(t *testing.T) {
	req, rest, err := parsePeriod([]string{"month", "2024", "12", "csv"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportRequest{Kind: domain.ReportMonth, Year: 2024, Index: 11}, req)
	assert.Equal(t, []string{"csv"}, rest)

	req, _, err = parsePeriod([]string{"YEAR", "2023"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportYear, req.Kind)

	for _, args := range [][]string{{"month"}, {"quarter", "2024"}, {"week", "2024", "1"}, {"month", "x", "1"}} {
		_, _, err := parsePeriod(args)
		assert.Error(t, err, args)
	}
}

func TestParseMonth(t *testing.T) {
	y, m, err := parseMonth(nil, 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 1}, []int{y, m})

	y, m, err = parseMonth([]string{"2025", "12"}, 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2025, 11}, []int{y, m})

	_, _, err = parseMonth([]string{"2025", "13"}, 2024, 1)
	assert.Error(t, err)
}

func TestApp_SaveResultReportsFailures(t *testing.T) {
	app, _, lines := newTestApp(t, &stubRemote{})

	app.SaveResult(ports.SaveJob{Username: "alice"}, nil)
	assert.Empty(t, *lines)

	app.SaveResult(ports.SaveJob{Username: "alice"}, fmt.Errorf("post: %w", domain.ErrTransport))
	assert.Equal(t, "save for alice failed: could not reach server", lastLine(lines))
}
