package dashboard

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/matheus3301/notilog/internal/api"
	"github.com/matheus3301/notilog/internal/apitest"
	"github.com/matheus3301/notilog/internal/bus"
	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/modal"
	"github.com/matheus3301/notilog/internal/theme"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type harness struct {
	d      *Dashboard
	srv    *apitest.Server
	bus    *bus.Bus
	events <-chan bus.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := apitest.New(t)
	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)

	b := bus.New()
	events, unsub := b.Subscribe(bus.NamespaceNotify, 64)
	t.Cleanup(unsub)

	tg, err := theme.NewToggler(filepath.Join(t.TempDir(), "config.toml"), b, nil)
	require.NoError(t, err)

	d := New(Options{Client: client, Bus: b, Theme: tg, ExportDir: t.TempDir()})
	return &harness{d: d, srv: srv, bus: b, events: events}
}

// notices drains the notifications published so far.
func (h *harness) notices() []bus.Event {
	var out []bus.Event
	for {
		select {
		case evt := <-h.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}

func texts(events []bus.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind+": "+e.Payload.(Notice).Text)
	}
	return out
}

func TestEmailFilterScenario(t *testing.T) {
	h := newHarness(t)
	h.srv.AddEmail(logs.EmailLog{EmailTo: "alice@example.com"})
	h.srv.AddEmail(logs.EmailLog{EmailTo: "bob@corp.io"})
	ctx := context.Background()

	require.NoError(t, h.d.LoadAll(ctx))
	assert.Len(t, h.d.Table(logs.Email).Rows, 2)

	h.d.SetQuery(logs.Email, "  ALICE ")
	tbl := h.d.Table(logs.Email)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "alice@example.com", tbl.Rows[0].Cells[1])

	h.d.SetQuery(logs.Email, "nobody")
	tbl = h.d.Table(logs.Email)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, "No emails yet.", tbl.Placeholder)

	assert.Len(t, h.d.Snapshot().Emails, 2, "filtering never touches the cache")

	h.d.SetQuery(logs.Email, "")
	assert.Len(t, h.d.Table(logs.Email).Rows, 2)
}

func TestSMSSubmitFailureScenario(t *testing.T) {
	h := newHarness(t)
	h.srv.FailOnce(http.MethodPost, "/api/sms/", http.StatusBadRequest, "invalid number")
	ctx := context.Background()

	draft := logs.Draft{MobileNumber: "abc", Message: "hello"}
	require.NoError(t, h.d.OpenForm(logs.SMS))
	h.d.SetDraft(logs.SMS, draft)

	err := h.d.Submit(ctx, logs.SMS)
	require.Error(t, err)

	assert.Equal(t, modal.Open, h.d.FormState(logs.SMS), "form stays open")
	assert.Equal(t, draft, h.d.Draft(logs.SMS), "draft preserved")
	assert.Equal(t, []string{"notify.error: invalid number"}, texts(h.notices()))
	assert.Equal(t, 0, h.srv.Len(logs.SMS))
	assert.Equal(t, 0, h.srv.Count(http.MethodGet, "/api/sms/"), "no reload after failure")
}

func TestWhatsAppDeleteScenario(t *testing.T) {
	h := newHarness(t)
	h.srv.AddMessage(logs.WhatsApp, logs.MessageLog{ID: 7, MobileNumber: `+1 "555"`, Message: "hi"})
	h.srv.AddMessage(logs.WhatsApp, logs.MessageLog{ID: 8, MobileNumber: "+2", Message: "yo"})
	ctx := context.Background()

	require.NoError(t, h.d.LoadAll(ctx))
	require.Equal(t, 2, h.d.Stats().WhatsApp)
	h.notices()
	h.srv.ResetRequests()

	var target logs.DeleteTarget
	for _, row := range h.d.Table(logs.WhatsApp).Rows {
		if row.Target.ID == 7 {
			target = row.Target
		}
	}
	require.Equal(t, "Mobile: +1 555", target.Label)

	require.NoError(t, h.d.RequestDelete(target))
	assert.Equal(t, modal.Open, h.d.ConfirmState())
	require.NoError(t, h.d.ConfirmDelete(ctx))

	assert.Equal(t, 1, h.srv.Count(http.MethodPost, "/api/delete/"))
	for _, path := range []string{"/api/email/", "/api/sms/", "/api/whatsapp/", "/api/stats/"} {
		assert.Equal(t, 1, h.srv.Count(http.MethodGet, path), "reloads %s once", path)
	}
	assert.Equal(t, 1, h.d.Stats().WhatsApp)
	for _, m := range h.d.Snapshot().WhatsApp {
		assert.NotEqual(t, int64(7), m.ID)
	}
	_, pending := h.d.Pending()
	assert.False(t, pending)
	assert.Equal(t, modal.Closed, h.d.ConfirmState())
	assert.Equal(t, []string{"notify.success: Deleted successfully."}, texts(h.notices()))
}

func TestSubmitSuccess(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	loaded, unsub := h.bus.Subscribe(bus.NamespaceLogs, 8)
	defer unsub()

	h.d.SetDraft(logs.Email, logs.Draft{EmailTo: "new@example.com"})
	require.NoError(t, h.d.Submit(ctx, logs.Email))

	assert.True(t, h.d.Draft(logs.Email).IsZero(), "draft reset")
	assert.Equal(t, modal.Closed, h.d.FormState(logs.Email))
	assert.Equal(t, 1, h.d.Stats().Emails)
	assert.Equal(t, []string{"notify.success: Email log saved."}, texts(h.notices()))

	evt := <-loaded
	assert.Equal(t, bus.KindLogsLoaded, evt.Kind)
}

func TestSubmitServerValidation(t *testing.T) {
	h := newHarness(t)
	h.d.SetDraft(logs.WhatsApp, logs.Draft{MobileNumber: "+1"})

	require.Error(t, h.d.Submit(context.Background(), logs.WhatsApp))
	assert.Equal(t, []string{"notify.error: mobile_number and message are required"}, texts(h.notices()))
}

func TestSubmitReloadFailureOrder(t *testing.T) {
	h := newHarness(t)
	h.srv.FailOnce(http.MethodGet, "/api/stats/", http.StatusInternalServerError, "")

	h.d.SetDraft(logs.SMS, logs.Draft{MobileNumber: "1", Message: "m"})
	require.NoError(t, h.d.Submit(context.Background(), logs.SMS))
	assert.Equal(t, []string{
		"notify.error: Failed to load data.",
		"notify.success: SMS log saved.",
	}, texts(h.notices()))
}

func TestLoadFailureKeepsCache(t *testing.T) {
	h := newHarness(t)
	h.srv.AddEmail(logs.EmailLog{EmailTo: "a@x.com"})
	ctx := context.Background()
	require.NoError(t, h.d.LoadAll(ctx))
	h.notices()

	h.srv.AddEmail(logs.EmailLog{EmailTo: "b@x.com"})
	h.srv.FailOnce(http.MethodGet, "/api/whatsapp/", http.StatusServiceUnavailable, "")
	require.Error(t, h.d.LoadAll(ctx))

	assert.Len(t, h.d.Snapshot().Emails, 1)
	assert.Equal(t, []string{"notify.error: Failed to load data."}, texts(h.notices()))
}

func TestDeleteFailureKeepsPending(t *testing.T) {
	h := newHarness(t)
	h.srv.FailOnce(http.MethodPost, "/api/delete/", http.StatusInternalServerError, "database is locked")
	target := logs.DeleteTarget{Variant: logs.SMS, ID: 3, Label: "Mobile: 1"}

	require.NoError(t, h.d.RequestDelete(target))
	require.Error(t, h.d.ConfirmDelete(context.Background()))

	got, ok := h.d.Pending()
	assert.True(t, ok)
	assert.Equal(t, target, got)
	assert.Equal(t, modal.Open, h.d.ConfirmState())
	assert.Equal(t, []string{"notify.error: database is locked"}, texts(h.notices()))
}

func TestConfirmWithoutPendingIsNoop(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.d.ConfirmDelete(context.Background()))
	assert.Empty(t, h.srv.Requests())
	assert.Empty(t, h.notices())
}

func TestCancelDelete(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.d.RequestDelete(logs.DeleteTarget{Variant: logs.Email, ID: 1}))
	h.d.CancelDelete()

	_, ok := h.d.Pending()
	assert.False(t, ok)
	assert.Equal(t, modal.Closed, h.d.ConfirmState())
}

func TestExportUsesCache(t *testing.T) {
	h := newHarness(t)
	h.srv.AddEmail(logs.EmailLog{EmailTo: "a@x.com"})
	h.srv.AddEmail(logs.EmailLog{EmailTo: "b@x.com"})
	require.NoError(t, h.d.LoadAll(context.Background()))
	h.d.SetQuery(logs.Email, "a@")
	h.notices()

	dir := t.TempDir()
	paths, err := h.d.Export(logs.Email, dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(string(data), "\n")), "header plus both cached rows")
	assert.Equal(t, []string{"notify.success: Exported emails.csv."}, texts(h.notices()))

	paths, err = h.d.Export("", dir)
	require.NoError(t, err)
	assert.Len(t, paths, 3)
}

func TestToggleTheme(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, theme.Light, h.d.Theme())

	m, err := h.d.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, m)

	m, err = h.d.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, theme.Light, m)
	assert.Equal(t, "lux", m.Reference())
}

func TestDispatch(t *testing.T) {
	h := newHarness(t)
	h.srv.AddMessage(logs.SMS, logs.MessageLog{MobileNumber: "123", Message: "code 42"})
	ctx := context.Background()

	require.NoError(t, h.d.Dispatch(ctx, Action{Kind: Reload}))
	require.NoError(t, h.d.Dispatch(ctx, Action{Kind: SetQuery, Variant: logs.SMS, Query: "CODE"}))
	assert.Len(t, h.d.View().SMS, 1)

	require.NoError(t, h.d.Dispatch(ctx, Action{Kind: OpenForm, Variant: logs.WhatsApp}))
	assert.Equal(t, modal.Open, h.d.FormState(logs.WhatsApp))
	require.NoError(t, h.d.Dispatch(ctx, Action{Kind: CancelForm, Variant: logs.WhatsApp}))
	assert.Equal(t, modal.Closed, h.d.FormState(logs.WhatsApp))

	assert.ErrorIs(t, h.d.Dispatch(ctx, Action{Kind: OpenForm, Variant: "fax"}), logs.ErrUnknownVariant)
	assert.Error(t, h.d.Dispatch(ctx, Action{Kind: ActionKind(99)}))
}

// blockingBackend lets tests hold individual calls open.
type blockingBackend struct {
	mu          sync.Mutex
	emailCalls  int
	createCalls int

	emails        func(call int) []logs.EmailLog
	createEntered chan struct{}
	createRelease chan struct{}
	deleteErr     error
}

func (b *blockingBackend) ListEmails(ctx context.Context) ([]logs.EmailLog, error) {
	b.mu.Lock()
	b.emailCalls++
	call := b.emailCalls
	b.mu.Unlock()
	if b.emails == nil {
		return nil, nil
	}
	return b.emails(call), nil
}

func (b *blockingBackend) ListSMS(context.Context) ([]logs.MessageLog, error)      { return nil, nil }
func (b *blockingBackend) ListWhatsApp(context.Context) ([]logs.MessageLog, error) { return nil, nil }
func (b *blockingBackend) Stats(context.Context) (logs.Stats, error)              { return logs.Stats{}, nil }

func (b *blockingBackend) Create(ctx context.Context, v logs.Variant, d logs.Draft) error {
	b.mu.Lock()
	b.createCalls++
	b.mu.Unlock()
	if b.createEntered != nil {
		close(b.createEntered)
		<-b.createRelease
	}
	return nil
}

func (b *blockingBackend) Delete(context.Context, logs.Variant, int64) (int, error) {
	return 0, b.deleteErr
}

func TestOverlappingLoadsLastStartedWins(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	backend := &blockingBackend{
		emails: func(call int) []logs.EmailLog {
			if call == 1 {
				close(entered)
				<-release
			}
			return []logs.EmailLog{{ID: int64(call)}}
		},
	}
	d := New(Options{Client: backend})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- d.LoadAll(ctx) }()
	<-entered

	require.NoError(t, d.LoadAll(ctx))
	close(release)
	require.NoError(t, <-done)

	snap := d.Snapshot()
	require.Len(t, snap.Emails, 1)
	assert.Equal(t, int64(2), snap.Emails[0].ID, "older load must not overwrite the newer one")
}

func TestDoubleSubmitRejected(t *testing.T) {
	backend := &blockingBackend{
		createEntered: make(chan struct{}),
		createRelease: make(chan struct{}),
	}
	d := New(Options{Client: backend})
	ctx := context.Background()
	d.SetDraft(logs.Email, logs.Draft{EmailTo: "a@x.com"})

	done := make(chan error, 1)
	go func() { done <- d.Submit(ctx, logs.Email) }()
	<-backend.createEntered

	assert.Equal(t, modal.InFlight, d.FormState(logs.Email))
	assert.ErrorIs(t, d.Submit(ctx, logs.Email), modal.ErrInFlight)

	close(backend.createRelease)
	require.NoError(t, <-done)
	assert.Equal(t, 1, backend.createCalls)
}

func TestDeleteTransportFailureFallback(t *testing.T) {
	b := bus.New()
	events, unsub := b.Subscribe(bus.NamespaceNotify, 4)
	defer unsub()

	d := New(Options{Client: &blockingBackend{deleteErr: errors.New("connection refused")}, Bus: b})
	require.NoError(t, d.RequestDelete(logs.DeleteTarget{Variant: logs.Email, ID: 1}))
	require.Error(t, d.ConfirmDelete(context.Background()))

	evt := <-events
	assert.Equal(t, bus.KindNotifyError, evt.Kind)
	assert.Equal(t, Notice{Text: MsgDeleteFailed}, evt.Payload)
}

func TestToggleThemeWithoutSwitch(t *testing.T) {
	d := New(Options{Client: &blockingBackend{}})
	_, err := d.ToggleTheme()
	assert.ErrorIs(t, err, ErrNoTheme)
}
