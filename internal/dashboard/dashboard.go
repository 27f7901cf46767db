// Package dashboard is the controller behind both front-ends: it owns the
// cached log collections, the search queries, the form drafts and the
// pending delete, and turns every outcome into a bus notification.
package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matheus3301/notilog/internal/bus"
	"github.com/matheus3301/notilog/internal/filter"
	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/modal"
	"github.com/matheus3301/notilog/internal/render"
	"github.com/matheus3301/notilog/internal/theme"
)

// Notification texts.
const (
	MsgLoadFailed   = "Failed to load data."
	MsgDeleted      = "Deleted successfully."
	MsgDeleteFailed = "Delete failed."
)

// ConfirmModal names the delete confirmation machine in modal events.
const ConfirmModal = "delete"

// FormModal names the creation form machine of v in modal events.
func FormModal(v logs.Variant) string { return "form." + string(v) }

// Backend is the subset of the API client the dashboard drives.
type Backend interface {
	ListEmails(ctx context.Context) ([]logs.EmailLog, error)
	ListSMS(ctx context.Context) ([]logs.MessageLog, error)
	ListWhatsApp(ctx context.Context) ([]logs.MessageLog, error)
	Stats(ctx context.Context) (logs.Stats, error)
	Create(ctx context.Context, v logs.Variant, d logs.Draft) error
	Delete(ctx context.Context, v logs.Variant, id int64) (int, error)
}

// ThemeSwitch is the theme state the dashboard toggles.
type ThemeSwitch interface {
	Mode() theme.Mode
	Toggle() (theme.Mode, error)
}

// Notice is the payload of notify.* events.
type Notice struct {
	Text string
}

// View is the payload of logs.filtered events.
type View struct {
	Queries     filter.Queries
	Collections logs.Collections
}

// Dashboard holds the client-side state of one backend session.
type Dashboard struct {
	client    Backend
	bus       *bus.Bus
	log       *zap.Logger
	theme     ThemeSwitch
	exportDir string

	mu        sync.RWMutex
	snapshot  logs.Snapshot
	loaded    bool
	queries   filter.Queries
	view      logs.Collections
	drafts    map[logs.Variant]logs.Draft
	pending   *logs.DeleteTarget
	started   uint64
	committed uint64

	forms   map[logs.Variant]*modal.Machine
	confirm *modal.Machine
}

// Options configures a Dashboard.
type Options struct {
	Client    Backend
	Bus       *bus.Bus
	Logger    *zap.Logger
	Theme     ThemeSwitch
	ExportDir string
}

// New creates a dashboard with an empty cache. Call LoadAll to populate it.
func New(opts Options) *Dashboard {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dashboard{
		client:    opts.Client,
		bus:       opts.Bus,
		log:       log.Named("dashboard"),
		theme:     opts.Theme,
		exportDir: opts.ExportDir,
		drafts:    make(map[logs.Variant]logs.Draft),
		forms:     make(map[logs.Variant]*modal.Machine),
		confirm:   modal.NewMachine(ConfirmModal, opts.Bus),
	}
	for _, v := range logs.Variants {
		d.forms[v] = modal.NewMachine(FormModal(v), opts.Bus)
	}
	return d
}

// LoadAll fetches the three collections and the stats concurrently and
// replaces the cache when all four succeed. On failure the previous cache is
// kept and a single "Failed to load data." notification is published.
//
// Overlapping loads resolve in start order: a load that finishes after a
// later-started load has already been applied is discarded.
func (d *Dashboard) LoadAll(ctx context.Context) error {
	d.mu.Lock()
	d.started++
	gen := d.started
	d.mu.Unlock()

	var snap logs.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Emails, err = d.client.ListEmails(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.SMS, err = d.client.ListSMS(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.WhatsApp, err = d.client.ListWhatsApp(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Stats, err = d.client.Stats(gctx)
		return err
	})
	err := g.Wait()

	d.mu.Lock()
	if gen < d.committed {
		d.mu.Unlock()
		d.log.Debug("discarding superseded load", zap.Uint64("gen", gen), zap.Error(err))
		return nil
	}
	if err != nil {
		d.mu.Unlock()
		d.log.Error("load failed", zap.Uint64("gen", gen), zap.Error(err))
		d.notifyError(MsgLoadFailed)
		return err
	}
	d.committed = gen
	d.snapshot = snap
	d.loaded = true
	d.view = filter.Apply(snap.Collections, d.queries)
	view := View{Queries: d.queries, Collections: d.view}
	d.mu.Unlock()

	d.log.Debug("loaded",
		zap.Uint64("gen", gen),
		zap.Int("emails", len(snap.Emails)),
		zap.Int("sms", len(snap.SMS)),
		zap.Int("whatsapp", len(snap.WhatsApp)),
	)
	d.bus.Emit(bus.KindLogsLoaded, snap)
	d.bus.Emit(bus.KindLogsFiltered, view)
	return nil
}

// SetQuery replaces one variant's search text and re-filters.
func (d *Dashboard) SetQuery(v logs.Variant, query string) {
	d.mu.Lock()
	d.queries = d.queries.With(v, query)
	d.mu.Unlock()
	d.ApplyFilters()
}

// ApplyFilters recomputes the filtered view from the cache.
func (d *Dashboard) ApplyFilters() {
	d.mu.Lock()
	d.view = filter.Apply(d.snapshot.Collections, d.queries)
	view := View{Queries: d.queries, Collections: d.view}
	d.mu.Unlock()
	d.bus.Emit(bus.KindLogsFiltered, view)
}

// Snapshot returns the cache from the most recent successful load.
func (d *Dashboard) Snapshot() logs.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// Loaded reports whether any load has succeeded yet.
func (d *Dashboard) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// View returns the filtered collections.
func (d *Dashboard) View() logs.Collections {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.view
}

// Queries returns the current search text.
func (d *Dashboard) Queries() filter.Queries {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.queries
}

// Table renders the filtered view of one variant.
func (d *Dashboard) Table(v logs.Variant) render.Table {
	return render.Build(v, d.View())
}

// Stats returns the counts from the most recent successful load.
func (d *Dashboard) Stats() logs.Stats {
	return d.Snapshot().Stats
}

func (d *Dashboard) notifySuccess(text string) {
	d.bus.Emit(bus.KindNotifySuccess, Notice{Text: text})
}

func (d *Dashboard) notifyError(text string) {
	d.bus.Emit(bus.KindNotifyError, Notice{Text: text})
}
