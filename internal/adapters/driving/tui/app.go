package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/views/addfiles"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/views/content"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/views/fragmentation"
	"github.com/custodia-labs/datalex/internal/adapters/driving/tui/views/fragments"
	"github.com/custodia-labs/datalex/internal/core/domain"
)

// Pane chrome: rounded border plus horizontal padding.
const (
	paneChromeW = 4
	paneChromeH = 2
)

// watchStarted carries the change feed once Watch returns.
type watchStarted struct {
	changes <-chan struct{}
	err     error
}

// subscribed carries the store subscription once it is registered.
type subscribed struct {
	published   <-chan struct{}
	unsubscribe func()
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx bounds engine calls and the change feed.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	table   *fragments.View
	content *content.View
	dialog  *fragmentation.Dialog
	prompt  *addfiles.Prompt
	status  *status.Bar

	// focus decides which component receives keys.
	focus messages.Focus

	// settings supplies dialog defaults.
	settings domain.AppSettings

	// changes is the external change feed, nil when not watching.
	changes <-chan struct{}

	// published wakes the app after the store publishes.
	published   <-chan struct{}
	unsubscribe func()

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	h := help.New()
	h.ShowAll = true

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		help:     h,
		table:    fragments.NewView(s, km, ports.Store, ports.Pages),
		content:  content.NewView(s, km),
		dialog:   fragmentation.NewDialog(s),
		prompt:   addfiles.NewPrompt(s),
		status:   status.NewBar(s, km),
		focus:    messages.FocusTable,
		settings: domain.DefaultAppSettings(),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It loads the first page and settings and starts the change feed.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("datalex"),
		a.status.SetBusy("Loading..."),
		a.table.Init(),
		a.loadSettings(),
		a.watch(),
		a.subscribe(),
	)
}

func (a *App) subscribe() tea.Cmd {
	store := a.ports.Store
	return func() tea.Msg {
		ch := make(chan struct{}, 1)
		unsubscribe := store.Subscribe(func(domain.WorkspaceView) {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
		return subscribed{published: ch, unsubscribe: unsubscribe}
	}
}

// waitForPublish blocks until the store publishes or ctx ends.
func waitForPublish(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return messages.WorkspacePublished{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) loadSettings() tea.Cmd {
	svc := a.ports.Settings
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (a *App) watch() tea.Cmd {
	notifier := a.ports.Changes
	if notifier == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		ch, err := notifier.Watch(ctx)
		return watchStarted{changes: ch, err: err}
	}
}

// waitForChange blocks on the feed and re-arms after every change.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return messages.WatchStopped{}
		}
		return messages.ExternalChange{}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.status, cmd = a.status.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.FocusChanged:
		a.setFocus(msg.Focus)
		return a, nil

	case watchStarted:
		if msg.err != nil {
			a.fail(fmt.Errorf("watching for changes: %w", msg.err))
			return a, nil
		}
		a.changes = msg.changes
		return a, waitForChange(a.changes)

	case messages.ExternalChange:
		if a.changes == nil {
			return a, nil
		}
		return a, tea.Batch(a.table.Refresh(), waitForChange(a.changes))

	case messages.WatchStopped:
		a.changes = nil
		return a, nil

	case subscribed:
		a.stop()
		a.published = msg.published
		a.unsubscribe = msg.unsubscribe
		return a, waitForPublish(a.ctx, a.published)

	case messages.WorkspacePublished:
		if a.published == nil {
			return a, nil
		}
		a.sync(msg)
		return a, waitForPublish(a.ctx, a.published)

	case messages.SettingsLoaded:
		if msg.Err != nil {
			a.fail(fmt.Errorf("loading settings: %w", msg.Err))
			return a, nil
		}
		if msg.Settings != nil {
			a.settings = *msg.Settings
		}
		return a, nil

	case messages.WorkspaceRefreshed:
		a.sync(msg)
		a.finish(msg.Err, "")
		return a, nil

	case messages.PageChanged:
		a.sync(msg)
		note := ""
		if msg.Err == nil && !msg.Accepted {
			note = "Page unavailable"
		}
		a.finish(msg.Err, note)
		return a, nil

	case messages.FragmentOpened:
		a.sync(msg)
		a.finish(msg.Err, "")
		return a, nil

	case messages.FragmentsDeleted:
		a.sync(msg)
		a.finish(msg.Err, fmt.Sprintf("Deleted %d fragment(s)", msg.Count))
		return a, nil

	case messages.AddFilesRequested:
		a.setFocus(messages.FocusTable)
		return a, tea.Batch(a.status.SetBusy("Adding documents..."), a.addFiles(msg.Paths))

	case messages.FilesAdded:
		a.sync(msg)
		note := fmt.Sprintf("Added %d document(s)", msg.Count)
		if msg.Count == 0 {
			note = "No documents chosen"
		}
		a.finish(msg.Err, note)
		return a, nil

	case messages.FragmentationRequested:
		a.setFocus(messages.FocusTable)
		return a, tea.Batch(a.status.SetJob(domain.ProgressRunning), a.submit(msg.Request))

	case messages.FragmentationFinished:
		a.sync(msg)
		a.status.SetJob(a.ports.Jobs.Progress())
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.err = nil
		a.status.SetSummary(msg.Summary)
		return a, nil

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, a.quit()
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, a.quit()
	}

	var cmd tea.Cmd
	switch a.focus {
	case messages.FocusFragmentation:
		a.dialog, cmd = a.dialog.Update(msg)
		return a, cmd

	case messages.FocusAddFiles:
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd

	case messages.FocusHelp:
		if key.Matches(msg, a.keymap.Back) || key.Matches(msg, a.keymap.Help) || key.Matches(msg, a.keymap.Quit) {
			a.setFocus(messages.FocusTable)
		}
		return a, nil

	case messages.FocusContent:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, a.quit()
		case key.Matches(msg, a.keymap.SwitchFocus):
			a.setFocus(messages.FocusTable)
			return a, nil
		}
		a.content, cmd = a.content.Update(msg)
		return a, cmd

	case messages.FocusTable:
	}

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, a.quit()
	case key.Matches(msg, a.keymap.Help):
		a.setFocus(messages.FocusHelp)
		return a, nil
	case key.Matches(msg, a.keymap.SwitchFocus):
		if !a.ports.Store.View().Open.IsEmpty() {
			a.setFocus(messages.FocusContent)
		}
		return a, nil
	case key.Matches(msg, a.keymap.Fragment):
		return a, a.openDialog()
	case key.Matches(msg, a.keymap.AddPicker):
		return a, tea.Batch(a.status.SetBusy("Choosing documents..."), a.addFromDialog())
	case key.Matches(msg, a.keymap.AddPaths):
		a.setFocus(messages.FocusAddFiles)
		return a, a.prompt.Open()
	}

	a.table, cmd = a.table.Update(msg)
	if cmd != nil {
		return a, tea.Batch(a.status.SetBusy("Working..."), cmd)
	}
	return a, nil
}

// stop drops the store subscription.
func (a *App) stop() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.unsubscribe = nil
	a.published = nil
}

func (a *App) quit() tea.Cmd {
	a.stop()
	return tea.Quit
}

func (a *App) openDialog() tea.Cmd {
	ids := a.ports.Store.Selection().IDs()
	if len(ids) == 0 {
		a.fail(fmt.Errorf("fragment: %w", domain.ErrNoSelection))
		return nil
	}
	if a.ports.Jobs.State() == domain.JobRunning {
		a.fail(domain.ErrJobInFlight)
		return nil
	}
	a.dialog.Open(ids, a.settings.Fragmentation)
	a.setFocus(messages.FocusFragmentation)
	return nil
}

func (a *App) addFiles(paths []string) tea.Cmd {
	store, ctx := a.ports.Store, a.ctx
	return func() tea.Msg {
		return messages.FilesAdded{Count: len(paths), Err: store.AddFromFiles(ctx, paths)}
	}
}

func (a *App) addFromDialog() tea.Cmd {
	store, ctx := a.ports.Store, a.ctx
	return func() tea.Msg {
		n, err := store.AddFromDialog(ctx)
		return messages.FilesAdded{Count: n, Err: err}
	}
}

func (a *App) submit(req domain.FragmentationRequest) tea.Cmd {
	jobs, ctx := a.ports.Jobs, a.ctx
	return func() tea.Msg {
		summary, err := jobs.Submit(ctx, req)
		return messages.FragmentationFinished{Summary: summary, Err: err}
	}
}

// sync forwards a state-changing message to the table and refreshes the viewer.
func (a *App) sync(msg tea.Msg) {
	a.table, _ = a.table.Update(msg)
	open := a.ports.Store.View().Open
	a.content.SetFragment(open)
	if open.IsEmpty() && a.focus == messages.FocusContent {
		a.setFocus(messages.FocusTable)
	}
}

// finish settles the status line after an engine call.
func (a *App) finish(err error, note string) {
	if err != nil {
		a.fail(err)
		return
	}
	a.err = nil
	if note == "" {
		note = fragments.PageLabel(a.ports.Store.View().Snapshot)
	}
	a.status.SetReady(note)
}

func (a *App) fail(err error) {
	a.err = err
	a.status.SetError(err)
}

func (a *App) setFocus(f messages.Focus) {
	a.focus = f
	if f == messages.FocusContent {
		a.content.Focus()
	} else {
		a.content.Blur()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	title := a.styles.Title.Render("datalex") + "  " +
		a.styles.Muted.Render(fragments.PageLabel(a.ports.Store.View().Snapshot))

	var body string
	switch a.focus {
	case messages.FocusFragmentation:
		body = a.overlay(a.dialog.View())
	case messages.FocusAddFiles:
		body = a.overlay(a.prompt.View())
	case messages.FocusHelp:
		body = a.overlay(a.help.View(a.keymap))
	case messages.FocusTable, messages.FocusContent:
		body = a.panes()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, a.status.View())
}

func (a *App) panes() string {
	tableH, contentH := a.paneHeights()
	tablePane := a.paneStyle(a.focus == messages.FocusTable).
		Width(a.width - 2).Height(tableH).Render(a.table.View())
	contentPane := a.paneStyle(a.focus == messages.FocusContent).
		Width(a.width - 2).Height(contentH).Render(a.content.View())
	return lipgloss.JoinVertical(lipgloss.Left, tablePane, contentPane)
}

func (a *App) paneStyle(focused bool) lipgloss.Style {
	if focused {
		return a.styles.Pane.BorderForeground(a.styles.Theme().Primary)
	}
	return a.styles.Pane
}

func (a *App) overlay(view string) string {
	return lipgloss.Place(a.width, a.bodyHeight(), lipgloss.Center, lipgloss.Center, view)
}

// bodyHeight leaves one line each for the title and the status bar.
func (a *App) bodyHeight() int {
	return max(a.height-2, 2)
}

// paneHeights splits the body between the table and the viewer, inside the borders.
func (a *App) paneHeights() (int, int) {
	inner := max(a.bodyHeight()-2*paneChromeH, 2)
	tableH := inner / 2
	return tableH, inner - tableH
}

// SetDimensions lays out every component for a terminal of the given size.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	tableH, contentH := a.paneHeights()
	a.table.SetDimensions(width-paneChromeW, tableH)
	a.content.SetDimensions(width-paneChromeW, contentH)
	a.dialog.SetWidth(min(width-4, 70))
	a.prompt.SetWidth(min(width-4, 80))
	a.status.SetWidth(width)
	a.help.Width = width
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	a.stop()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// Focus returns the component receiving keys.
func (a *App) Focus() messages.Focus {
	return a.focus
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// Settings returns the settings used for dialog defaults.
func (a *App) Settings() domain.AppSettings {
	return a.settings
}

// Subscribed reports whether the app follows store publishes.
func (a *App) Subscribed() bool {
	return a.published != nil
}

// Watching reports whether the change feed is active.
func (a *App) Watching() bool {
	return a.changes != nil
}
