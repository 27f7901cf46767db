package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/matheus3301/notilog/internal/bus"
	"github.com/matheus3301/notilog/internal/dashboard"
	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/modal"
	"github.com/matheus3301/notilog/internal/render"
	"github.com/matheus3301/notilog/internal/theme"
	"github.com/matheus3301/notilog/internal/tui/keys"
	"github.com/matheus3301/notilog/internal/tui/ui"
	"github.com/matheus3301/notilog/internal/tui/views"
)

// Page names.
const (
	pageLogs    = "logs"
	pageDetails = "details"
	pageHelp    = "help"
	pageConfirm = "confirm"
	formPrefix  = "form."
)

const headerHeight = 5

// eventStreams are the bus subscriptions the UI reads. The bus drops events
// for a full subscriber, so the bursty logs stream is kept apart from the
// events that decide which overlay is shown.
var eventStreams = []struct {
	namespace string
	buf       int
}{
	{bus.NamespaceLogs, 64},
	{bus.NamespaceModal, 256},
	{bus.NamespaceNotify, 256},
	{bus.NamespaceTheme, 16},
}

// subscribe opens one subscription per event stream.
func subscribe(b *bus.Bus) ([]<-chan bus.Event, func()) {
	chans := make([]<-chan bus.Event, 0, len(eventStreams))
	unsubs := make([]func(), 0, len(eventStreams))
	for _, s := range eventStreams {
		ch, unsub := b.Subscribe(s.namespace, s.buf)
		chans = append(chans, ch)
		unsubs = append(unsubs, unsub)
	}
	return chans, func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Options configures the TUI.
type Options struct {
	Dashboard       *dashboard.Dashboard
	Bus             *bus.Bus
	Logger          *zap.Logger
	Profile         string
	Backend         string
	ThemesDir       string
	Mode            theme.Mode
	RefreshInterval time.Duration
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	root     *tview.Flex
	header   *tview.Flex
	pages    *ui.Pages
	theme    *ui.Theme
	dash     *dashboard.Dashboard
	bus      *bus.Bus
	log      *zap.Logger
	registry *keys.Registry

	stats    *ui.StatsPanel
	menu     *ui.Menu
	logo     *ui.Logo
	crumbs   *ui.Crumbs
	prompt   *ui.Prompt
	flash    *ui.FlashModel
	flashBar *ui.FlashBar
	status   *views.StatusBar

	tables  map[logs.Variant]*views.LogTable
	forms   map[logs.Variant]*views.Form
	confirm *views.Confirm
	info    *views.RecordInfo
	help    *views.HelpView
	focused logs.Variant

	profile   string
	backend   string
	themesDir string
	refresh   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(opts Options) *App {
	ctx, cancel := context.WithCancel(context.Background())

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	mode := opts.Mode
	if !mode.Valid() {
		mode = theme.Default
	}
	palette, err := theme.LoadPalette(opts.ThemesDir, mode)
	if err != nil {
		log.Warn("palette override ignored", zap.Error(err))
		palette = theme.DefaultPalette(mode)
	}
	th := ui.FromPalette(mode, palette)

	a := &App{
		app:       tview.NewApplication(),
		pages:     ui.NewPages(),
		theme:     th,
		dash:      opts.Dashboard,
		bus:       opts.Bus,
		log:       log.Named("tui"),
		registry:  keys.NewRegistry(),
		stats:     ui.NewStatsPanel(th),
		menu:      ui.NewMenu(th),
		logo:      ui.NewLogo(th),
		crumbs:    ui.NewCrumbs(th),
		prompt:    ui.NewPrompt(th),
		flash:     ui.NewFlashModel(),
		flashBar:  ui.NewFlashBar(th),
		status:    views.NewStatusBar(th),
		tables:    make(map[logs.Variant]*views.LogTable),
		forms:     make(map[logs.Variant]*views.Form),
		confirm:   views.NewConfirm(th),
		info:      views.NewRecordInfo(th),
		help:      views.NewHelpView(th),
		focused:   logs.Email,
		profile:   opts.Profile,
		backend:   opts.Backend,
		themesDir: opts.ThemesDir,
		refresh:   opts.RefreshInterval,
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, v := range logs.Variants {
		a.tables[v] = views.NewLogTable(th, v)
		a.forms[v] = views.NewForm(th, v)
	}

	a.status.SetProfile(a.profile, a.backend)
	a.stats.Update(ui.StatsData{Profile: a.profile, Backend: a.backend})
	a.setupBindings(mode.ButtonLabel())
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings(themeLabel string) {
	a.registry.AddGlobal("command", &keys.Action{
		Rune: ':', Key: tcell.KeyRune,
		Description: "Command", Visible: true,
		Handler: func() { a.activatePrompt(ui.PromptCommand) },
	})
	a.registry.AddGlobal("reload", &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Description: "Reload", Visible: true,
		Handler: a.reload,
	})
	a.bindThemeKey(themeLabel)
	a.registry.AddGlobal("help", &keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: "Help", Visible: true,
		Handler: a.showHelp,
	})
	a.registry.AddGlobal("quit", &keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "Quit", Visible: true,
		Handler: func() {
			if a.pages.Current() == pageLogs {
				a.Stop()
				return
			}
			a.back()
		},
	})

	a.registry.AddView(pageLogs, "next", &keys.Action{
		Key: tcell.KeyTab, Label: "Tab",
		Description: "Next table", Visible: true,
		Handler: func() { a.cycle(1) },
	})
	a.registry.AddView(pageLogs, "prev", &keys.Action{
		Key:     tcell.KeyBacktab,
		Handler: func() { a.cycle(-1) },
	})
	for i, v := range logs.Variants {
		a.registry.AddView(pageLogs, string(v), &keys.Action{
			Rune: rune('1' + i), Key: tcell.KeyRune,
			Description: v.Label(), Visible: true, Numeric: true,
			Handler: func() { a.focusTable(v) },
		})
	}
	a.registry.AddView(pageLogs, "details", &keys.Action{
		Key: tcell.KeyEnter, Label: "Enter",
		Description: "Details", Visible: true,
		Handler: a.showDetails,
	})
	a.registry.AddView(pageLogs, "filter", &keys.Action{
		Rune: '/', Key: tcell.KeyRune,
		Description: "Filter", Visible: true,
		Handler: func() { a.activatePrompt(ui.PromptFilter) },
	})
	a.registry.AddView(pageLogs, "clear", &keys.Action{
		Rune: '0', Key: tcell.KeyRune,
		Handler: func() {
			a.dispatch(dashboard.Action{Kind: dashboard.SetQuery, Variant: a.focused})
		},
	})
	a.registry.AddView(pageLogs, "new", &keys.Action{
		Rune: 'n', Key: tcell.KeyRune,
		Description: "New", Visible: true,
		Handler: func() {
			a.dispatch(dashboard.Action{Kind: dashboard.OpenForm, Variant: a.focused})
		},
	})
	a.registry.AddView(pageLogs, "delete", &keys.Action{
		Rune: 'd', Key: tcell.KeyRune,
		Description: "Delete", Visible: true,
		Handler: func() {
			if row, ok := a.tables[a.focused].SelectedRow(); ok {
				a.requestDelete(row)
			}
		},
	})
	a.registry.AddView(pageLogs, "export", &keys.Action{
		Rune: 'e', Key: tcell.KeyRune,
		Description: "Export", Visible: true,
		Handler: func() {
			a.dispatchAsync(dashboard.Action{Kind: dashboard.Export, Variant: a.focused}, nil)
		},
	})

	a.registry.AddView(pageDetails, "delete", &keys.Action{
		Rune: 'd', Key: tcell.KeyRune,
		Description: "Delete", Visible: true,
		Handler: func() {
			if row, ok := a.tables[a.focused].SelectedRow(); ok {
				a.requestDelete(row)
			}
		},
	})
}

// bindThemeKey labels the toggle with the mode it switches to.
func (a *App) bindThemeKey(label string) {
	a.registry.AddGlobal("theme", &keys.Action{
		Rune: 't', Key: tcell.KeyRune,
		Description: label, Visible: true,
		Handler: func() {
			a.dispatchAsync(dashboard.Action{Kind: dashboard.ToggleTheme}, nil)
		},
	})
}

func (a *App) setupCallbacks() {
	a.prompt.SetOnChange(func(mode ui.PromptMode, text string) {
		if mode == ui.PromptFilter {
			a.dispatch(dashboard.Action{Kind: dashboard.SetQuery, Variant: a.focused, Query: text})
		}
	})
	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.closePrompt()
		if mode == ui.PromptCommand {
			a.runCommand(ParseCommand(text))
		}
	})
	a.prompt.SetOnCancel(func() {
		if a.prompt.Mode() == ui.PromptFilter {
			a.dispatch(dashboard.Action{Kind: dashboard.SetQuery, Variant: a.focused})
		}
		a.closePrompt()
	})

	for v, f := range a.forms {
		f.SetOnChange(func(d logs.Draft) {
			a.dispatch(dashboard.Action{Kind: dashboard.SetDraft, Variant: v, Draft: d})
		})
		f.SetOnSubmit(func() {
			a.dispatchAsync(dashboard.Action{Kind: dashboard.Submit, Variant: v}, nil)
		})
		f.SetOnCancel(func() {
			a.dispatch(dashboard.Action{Kind: dashboard.CancelForm, Variant: v})
		})
	}

	a.confirm.SetOnConfirm(func() {
		a.dispatchAsync(dashboard.Action{Kind: dashboard.ConfirmDelete}, nil)
	})
	a.confirm.SetOnCancel(func() {
		a.dispatch(dashboard.Action{Kind: dashboard.CancelDelete})
	})

	a.pages.SetOnChange(func(stack []string) {
		a.crumbs.Update(stack)
		a.updateMenu()
	})
}

func (a *App) setupLayout() {
	a.header = tview.NewFlex().
		AddItem(a.stats, 36, 0, false).
		AddItem(a.menu, 0, 1, false).
		AddItem(a.logo, 24, 0, false)

	tables := tview.NewFlex().SetDirection(tview.FlexRow)
	for _, v := range logs.Variants {
		tables.AddItem(a.tables[v], 0, 1, v == a.focused)
	}

	a.pages.AddPage(pageLogs, tables, true, false)
	a.pages.AddPage(pageDetails, a.info, true, false)
	a.pages.AddPage(pageHelp, a.help, true, false)
	for _, v := range logs.Variants {
		height := 9
		if v != logs.Email {
			height = 13
		}
		a.pages.AddOverlay(formPrefix+string(v), center(a.forms[v], 64, height))
	}
	a.pages.AddOverlay(pageConfirm, a.confirm)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.header, headerHeight, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.flashBar, 1, 0, false).
		AddItem(a.status, 1, 0, false)
	a.applyBackground()

	a.pages.Reset(pageLogs)
	a.app.SetRoot(a.root, true)
	a.app.SetFocus(a.tables[a.focused])

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Let the prompt and the dialogs handle all keys normally.
		if a.prompt.HasFocus() {
			return event
		}
		current := a.pages.Current()
		if current == pageConfirm || strings.HasPrefix(current, formPrefix) {
			return event
		}

		if event.Key() == tcell.KeyEscape && (current == pageDetails || current == pageHelp) {
			a.back()
			return nil
		}
		if a.registry.HandleEvent(current, event) {
			return nil
		}
		return event
	})
}

// center places p in the middle of the screen with a fixed size.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}

func (a *App) applyBackground() {
	a.root.SetBackgroundColor(a.theme.BgColor)
	a.header.SetBackgroundColor(a.theme.BgColor)
}

func (a *App) themed() []ui.Themed {
	out := []ui.Themed{a.stats, a.menu, a.logo, a.crumbs, a.prompt, a.flashBar, a.status, a.confirm, a.info, a.help}
	for _, v := range logs.Variants {
		out = append(out, a.tables[v], a.forms[v])
	}
	return out
}

func (a *App) updateMenu() {
	current := a.pages.Current()
	switch {
	case current == pageConfirm:
		a.menu.Update(a.confirm.Hints())
	case strings.HasPrefix(current, formPrefix):
		if f, ok := a.forms[logs.Variant(strings.TrimPrefix(current, formPrefix))]; ok {
			a.menu.Update(f.Hints())
		}
	case current == pageHelp:
		a.menu.Update(a.help.Hints())
	default:
		a.menu.Update(a.registry.Hints(current))
	}
}

func (a *App) cycle(step int) {
	n := len(logs.Variants)
	for i, v := range logs.Variants {
		if v == a.focused {
			a.focusTable(logs.Variants[(i+step+n)%n])
			return
		}
	}
}

func (a *App) focusTable(v logs.Variant) {
	a.focused = v
	a.app.SetFocus(a.tables[v])
}

// restoreFocus focuses the widget of the page on top of the stack.
func (a *App) restoreFocus() {
	current := a.pages.Current()
	switch {
	case current == pageDetails:
		a.app.SetFocus(a.info)
	case current == pageHelp:
		a.app.SetFocus(a.help)
	case current == pageConfirm:
		a.app.SetFocus(a.confirm)
	case strings.HasPrefix(current, formPrefix):
		if f, ok := a.forms[logs.Variant(strings.TrimPrefix(current, formPrefix))]; ok {
			a.app.SetFocus(f)
		}
	default:
		a.app.SetFocus(a.tables[a.focused])
	}
}

func (a *App) back() {
	a.pages.Pop()
	if a.pages.Depth() == 0 {
		a.pages.Reset(pageLogs)
	}
	a.restoreFocus()
}

func (a *App) showHelp() {
	if a.pages.Current() == pageHelp {
		return
	}
	a.pages.Push(pageHelp)
	a.app.SetFocus(a.help)
}

func (a *App) showDetails() {
	row, ok := a.tables[a.focused].SelectedRow()
	if !ok {
		return
	}
	a.info.Update(a.focused, row)
	a.pages.Push(pageDetails)
	a.app.SetFocus(a.info)
}

func (a *App) activatePrompt(mode ui.PromptMode) {
	title, text := "Command", ""
	if mode == ui.PromptFilter {
		title = "Filter " + a.focused.Label()
		text = a.dash.Queries().Get(a.focused)
	}
	a.prompt.Activate(mode, title, text)
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) closePrompt() {
	a.root.ResizeItem(a.prompt, 0, 0)
	a.restoreFocus()
}

func (a *App) requestDelete(row render.Row) {
	a.dispatch(dashboard.Action{Kind: dashboard.RequestDelete, Target: row.Target})
}

// dispatch runs a non-blocking action on the UI goroutine.
func (a *App) dispatch(act dashboard.Action) {
	if err := a.dash.Dispatch(a.ctx, act); err != nil {
		a.dispatchFailed(act, err)
	}
}

// dispatchAsync runs an action that may hit the network or the disk. done,
// when set, runs on the UI goroutine afterwards.
func (a *App) dispatchAsync(act dashboard.Action, done func()) {
	go func() {
		if err := a.dash.Dispatch(a.ctx, act); err != nil {
			a.dispatchFailed(act, err)
		}
		if done != nil {
			a.app.QueueUpdateDraw(done)
		}
	}()
}

// dispatchFailed logs an action error. Outcomes the user must see were
// already published on the bus by the dashboard.
func (a *App) dispatchFailed(act dashboard.Action, err error) {
	if errors.Is(err, modal.ErrInFlight) {
		a.flash.Warn("Request already in progress.")
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	a.log.Debug("action failed", zap.Stringer("action", act.Kind), zap.Error(err))
}

func (a *App) reload() {
	a.status.SetLoading(true)
	a.dispatchAsync(dashboard.Action{Kind: dashboard.Reload}, func() {
		a.status.SetLoading(false)
	})
}

// Run starts the TUI application.
func (a *App) Run() error {
	streams, unsubscribe := subscribe(a.bus)
	defer unsubscribe()

	for _, events := range streams {
		go a.watchEvents(events)
	}
	go a.watchFlash()
	a.reload()
	if a.refresh > 0 {
		a.startRefreshLoop()
	}

	err := a.app.Run()
	a.cancel()
	return err
}

func (a *App) watchEvents(events <-chan bus.Event) {
	for {
		select {
		case evt := <-events:
			a.app.QueueUpdateDraw(func() { a.handleEvent(evt) })
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) watchFlash() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-a.flash.Watch():
		case <-ticker.C:
		case <-a.ctx.Done():
			return
		}
		a.app.QueueUpdateDraw(func() { a.flashBar.Update(a.flash.GetMessage()) })
	}
}

func (a *App) startRefreshLoop() {
	ticker := time.NewTicker(a.refresh)
	go func() {
		for {
			select {
			case <-ticker.C:
				_ = a.dash.LoadAll(a.ctx)
			case <-a.ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()
}

// handleEvent applies one bus event to the widgets. It runs on the UI goroutine.
func (a *App) handleEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.KindLogsLoaded:
		if snap, ok := evt.Payload.(logs.Snapshot); ok {
			a.stats.Update(ui.StatsData{Profile: a.profile, Backend: a.backend, Stats: snap.Stats, Loaded: true})
			a.status.SetUpdated(evt.Timestamp)
		}
	case bus.KindLogsFiltered:
		a.renderTables()
	case bus.KindNotifySuccess:
		if n, ok := evt.Payload.(dashboard.Notice); ok {
			a.flash.Info(n.Text)
		}
	case bus.KindNotifyError:
		if n, ok := evt.Payload.(dashboard.Notice); ok {
			a.flash.Err(n.Text)
		}
	case bus.KindModalStateChanged:
		if sc, ok := evt.Payload.(modal.StateChange); ok {
			a.handleModal(sc)
		}
	case bus.KindThemeChanged:
		if change, ok := evt.Payload.(theme.Change); ok {
			a.applyTheme(change)
		}
	}
}

// renderTables draws the dashboard's current view rather than an event
// payload, so a dropped logs.filtered event cannot leave a table stale.
func (a *App) renderTables() {
	view, queries, snap := a.dash.View(), a.dash.Queries(), a.dash.Snapshot()
	for _, v := range logs.Variants {
		a.tables[v].Update(render.Build(v, view), queries.Get(v), snap.Len(v))
	}
}

func (a *App) handleModal(sc modal.StateChange) {
	if sc.Modal == dashboard.ConfirmModal {
		a.handleConfirm(sc)
		return
	}
	for _, v := range logs.Variants {
		if sc.Modal == dashboard.FormModal(v) {
			a.handleForm(v, sc)
			return
		}
	}
}

func (a *App) handleForm(v logs.Variant, sc modal.StateChange) {
	f := a.forms[v]
	page := formPrefix + string(v)
	switch sc.To {
	case modal.Open:
		f.SetBusy(false)
		if sc.From == modal.Closed {
			f.SetDraft(a.dash.Draft(v))
			a.pages.Push(page)
			f.Start()
			a.app.SetFocus(f)
		}
	case modal.InFlight:
		f.SetBusy(true)
	case modal.Closed:
		f.SetBusy(false)
		if sc.From == modal.InFlight {
			f.SetDraft(logs.Draft{})
		}
		a.pages.Remove(page)
		a.restoreFocus()
	}
}

func (a *App) handleConfirm(sc modal.StateChange) {
	switch sc.To {
	case modal.Open:
		if sc.From != modal.Closed {
			a.confirm.SetBusy(false)
			return
		}
		target, ok := a.dash.Pending()
		if !ok {
			return
		}
		a.confirm.Show(target)
		a.pages.Push(pageConfirm)
		a.confirm.Start()
		a.app.SetFocus(a.confirm)
	case modal.InFlight:
		a.confirm.SetBusy(true)
	case modal.Closed:
		a.pages.Remove(pageConfirm)
		// The details page shows the record that was just deleted.
		if sc.From == modal.InFlight && a.pages.Current() == pageDetails {
			a.pages.Pop()
		}
		a.restoreFocus()
	}
}

func (a *App) applyTheme(change theme.Change) {
	palette, err := theme.LoadPalette(a.themesDir, change.Mode)
	if err != nil {
		a.log.Warn("palette override ignored", zap.String("mode", string(change.Mode)), zap.Error(err))
		palette = theme.DefaultPalette(change.Mode)
	}
	*a.theme = *ui.FromPalette(change.Mode, palette)
	a.applyBackground()
	for _, c := range a.themed() {
		c.ApplyTheme()
	}
	a.bindThemeKey(change.Label)
	a.updateMenu()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
