package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/views/cell"
	"github.com/custodia-labs/lenk/internal/core/domain"
)

// Rows reserved around the cell body.
const (
	headerRows     = 4
	annotationRows = 8
	statusRows     = 1
	inputRows      = 3
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is cancelled when the app quits, stopping any watch.
	ctx    context.Context
	cancel context.CancelFunc

	// path and mode identify the document being viewed.
	path string
	mode domain.ParseMode

	// live enables reloading when the document changes on disk.
	live    bool
	changes chan messages.DocumentChanged

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	cellView       *cell.View
	annotationList *list.AnnotationList
	input          *input.AnnotationInput
	statusBar      *status.Bar

	// doc is the latest successful load; index is the current cell.
	doc   *domain.ResolvedDocument
	index int

	// notice is shown in the status bar after the next load.
	notice string

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// Option configures an App.
type Option func(*App)

// WithLiveReload reloads the document whenever it changes on disk.
func WithLiveReload() Option {
	return func(a *App) {
		a.live = true
	}
}

// WithMode sets the parse mode. An empty mode uses the service default.
func WithMode(mode domain.ParseMode) Option {
	return func(a *App) {
		a.mode = mode
	}
}

// NewApp creates a TUI for the document at path.
func NewApp(ports *Ports, path string, opts ...Option) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrInvalidPorts)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("creating app: %w", ErrMissingPath)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		ports:          ports,
		ctx:            ctx,
		cancel:         cancel,
		path:           path,
		styles:         s,
		keymap:         km,
		help:           help.New(),
		cellView:       cell.NewView(s),
		annotationList: list.NewAnnotationList(s),
		input:          input.NewAnnotationInput(s),
		statusBar:      status.NewBar(s, km),
		currentView:    messages.ViewCell,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// WithContext sets the parent context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.cancel()
	a.ctx, a.cancel = context.WithCancel(ctx)
	return a
}

// Init implements tea.Model.
// It loads the document, or starts watching it when live reload is on.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateLoading)

	first := a.load()
	if a.live {
		first = a.startWatch()
	}
	return tea.Batch(
		tea.SetWindowTitle("lenk - "+filepath.Base(a.path)),
		first,
	)
}

// load returns a command that loads the document.
func (a *App) load() tea.Cmd {
	ctx, path, mode := a.ctx, a.path, a.mode
	return func() tea.Msg {
		doc, err := a.ports.Document.Load(ctx, path, mode)
		return messages.DocumentLoaded{Document: doc, Err: err}
	}
}

// startWatch runs the document watch in the background and returns a
// command that delivers its first result.
func (a *App) startWatch() tea.Cmd {
	ctx := a.ctx
	changes := make(chan messages.DocumentChanged, 1)
	a.changes = changes

	send := func(msg messages.DocumentChanged) {
		select {
		case changes <- msg:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(changes)
		err := a.ports.Document.Watch(ctx, a.path, a.mode, func(doc *domain.ResolvedDocument, err error) {
			send(messages.DocumentChanged{Document: doc, Err: err})
		})
		if err != nil && ctx.Err() == nil {
			send(messages.DocumentChanged{Err: err})
		}
	}()

	return a.waitForChange()
}

// waitForChange returns a command that blocks until the next watch result.
func (a *App) waitForChange() tea.Cmd {
	changes := a.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-changes
		if !ok {
			return nil
		}
		return msg
	}
}

func (a *App) addAnnotation(index int, body string) tea.Cmd {
	ctx, path, mode := a.ctx, a.path, a.mode
	return func() tea.Msg {
		ann, err := a.ports.Annotation.Add(ctx, path, mode, index, body)
		return messages.AnnotationAdded{Annotation: ann, Err: err}
	}
}

func (a *App) deleteAnnotation(id string) tea.Cmd {
	ctx, path := a.ctx, a.path
	return func() tea.Msg {
		err := a.ports.Annotation.Delete(ctx, path, id)
		return messages.AnnotationDeleted{ID: id, Err: err}
	}
}

func (a *App) export() tea.Cmd {
	ctx, path, mode := a.ctx, a.path, a.mode
	return func() tea.Msg {
		written, err := a.ports.Document.Export(ctx, path, mode, "")
		return messages.DocumentExported{Path: written, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.DocumentLoaded:
		a.applyLoad(msg.Document, msg.Err)
		return a, nil

	case messages.DocumentChanged:
		if errors.Is(msg.Err, domain.ErrNotImplemented) {
			// No watcher configured; fall back to a single load.
			a.live = false
			return a, a.load()
		}
		if msg.Err == nil && a.doc != nil {
			a.notice = "Reloaded after change on disk"
		}
		a.applyLoad(msg.Document, msg.Err)
		return a, a.waitForChange()

	case messages.AnnotationAdded:
		if msg.Err != nil {
			a.showError(msg.Err)
			return a, nil
		}
		a.notice = "Annotation added"
		return a, a.load()

	case messages.AnnotationDeleted:
		if msg.Err != nil {
			a.showError(msg.Err)
			return a, nil
		}
		a.notice = "Annotation deleted"
		return a, a.load()

	case messages.DocumentExported:
		if msg.Err != nil {
			a.showError(msg.Err)
			return a, nil
		}
		a.statusBar.SetState(status.StateConfirmed)
		a.statusBar.SetMessage("Exported to " + msg.Path)
		return a, nil

	case messages.ErrorOccurred:
		a.showError(msg.Err)
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.Quit:
		return a, a.quit()
	}

	return a, nil
}

// handleKey routes key presses by the active view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	switch a.currentView {
	case messages.ViewAnnotate:
		return a.handleAnnotateKey(msg)

	case messages.ViewHelp:
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return a, a.quit()
		case keymap.Matches(k, a.keymap.Help), keymap.Matches(k, a.keymap.Back):
			a.currentView = messages.ViewCell
			a.statusBar.Clear()
		}
		return a, nil

	case messages.ViewCell:
	}

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, a.quit()
	case keymap.Matches(k, a.keymap.Help):
		a.currentView = messages.ViewHelp
		a.statusBar.SetState(status.StateHelp)
	case keymap.Matches(k, a.keymap.NextCell):
		a.moveTo(a.index + 1)
	case keymap.Matches(k, a.keymap.PrevCell):
		a.moveTo(a.index - 1)
	case keymap.Matches(k, a.keymap.FirstCell):
		a.moveTo(0)
	case keymap.Matches(k, a.keymap.LastCell):
		a.moveTo(a.cellCount() - 1)
	case keymap.Matches(k, a.keymap.NextAnnotation), keymap.Matches(k, a.keymap.PrevAnnotation):
		a.annotationList.Update(msg)
	case keymap.Matches(k, a.keymap.Annotate):
		if a.cellCount() == 0 {
			return a, nil
		}
		a.currentView = messages.ViewAnnotate
		a.statusBar.SetState(status.StateAnnotate)
		return a, a.input.Focus()
	case keymap.Matches(k, a.keymap.Delete):
		selected := a.annotationList.SelectedAnnotation()
		if selected == nil {
			return a, nil
		}
		a.statusBar.SetState(status.StateLoading)
		return a, a.deleteAnnotation(selected.ID)
	case keymap.Matches(k, a.keymap.Export):
		a.statusBar.SetState(status.StateLoading)
		return a, a.export()
	case keymap.Matches(k, a.keymap.Reload):
		a.statusBar.SetState(status.StateLoading)
		return a, a.load()
	default:
		a.cellView.Update(msg)
	}
	return a, nil
}

// handleAnnotateKey handles keys while an annotation is being written.
func (a *App) handleAnnotateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, a.keymap.Interrupt):
		return a, a.quit()
	case keymap.Matches(k, a.keymap.Cancel):
		a.input.Reset()
		a.currentView = messages.ViewCell
		a.statusBar.Clear()
		return a, nil
	case keymap.Matches(k, a.keymap.Submit):
		body := a.input.Body()
		if body == "" {
			return a, nil
		}
		a.input.Reset()
		a.currentView = messages.ViewCell
		a.statusBar.SetState(status.StateLoading)
		return a, a.addAnnotation(a.index, body)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// applyLoad installs a load result. A failed reload keeps the last document.
func (a *App) applyLoad(doc *domain.ResolvedDocument, err error) {
	if err != nil {
		a.notice = ""
		a.showError(err)
		return
	}

	a.err = nil
	a.doc = doc
	a.mode = doc.Mode
	if a.index >= len(doc.Cells) {
		a.index = len(doc.Cells) - 1
	}
	if a.index < 0 {
		a.index = 0
	}
	a.showCell()

	a.statusBar.Clear()
	if a.notice != "" {
		a.statusBar.SetState(status.StateConfirmed)
		a.statusBar.SetMessage(a.notice)
		a.notice = ""
	}
}

// moveTo shows the cell at index when it exists.
func (a *App) moveTo(index int) {
	if index < 0 || index >= a.cellCount() || index == a.index {
		return
	}
	a.index = index
	a.showCell()
	a.statusBar.Clear()
}

// showCell refreshes the cell view, annotation list, and position.
func (a *App) showCell() {
	total := a.cellCount()
	if total == 0 {
		a.cellView.Clear()
		a.annotationList.SetAnnotations(nil)
		a.statusBar.SetPosition(0, 0)
		a.statusBar.SetAnnotationCount(0)
		return
	}

	rc := a.doc.Cells[a.index]
	a.cellView.SetCell(rc, total)

	var attached []domain.Annotation
	if rc.Match != nil {
		attached = rc.Match.Annotations()
	}
	a.annotationList.SetAnnotations(attached)
	a.statusBar.SetPosition(a.index+1, total)
	a.statusBar.SetAnnotationCount(a.doc.AnnotationCount())
}

func (a *App) showError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

func (a *App) quit() tea.Cmd {
	a.cancel()
	return tea.Quit
}

func (a *App) cellCount() int {
	if a.doc == nil {
		return 0
	}
	return len(a.doc.Cells)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := []string{a.renderHeader()}

	switch {
	case a.currentView == messages.ViewHelp:
		sections = append(sections, a.styles.Subtitle.Render("Keys"), a.help.FullHelpView(a.keymap.FullHelp()))
	case a.doc == nil && a.err != nil:
		sections = append(sections, a.styles.Error.Render("Could not load document: "+a.err.Error()))
	case a.doc == nil:
		sections = append(sections, a.styles.Muted.Render("Loading..."))
	default:
		sections = append(sections, a.styles.Border.Render(a.cellView.View()), a.annotationList.View())
		if a.currentView == messages.ViewAnnotate {
			sections = append(sections, a.input.View())
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	gap := a.height - lipgloss.Height(body) - statusRows
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + a.statusBar.View()
}

// renderHeader renders the document path, mode, and load warnings.
func (a *App) renderHeader() string {
	lines := []string{a.styles.Title.Render("lenk") + "  " + a.styles.Muted.Render(a.path)}
	if a.doc == nil {
		return strings.Join(lines, "\n")
	}

	lines[0] += a.styles.Muted.Render("  [" + a.doc.Mode.String() + "]")
	if a.doc.Truncation != domain.TruncationNone {
		lines = append(lines, a.styles.Warning.Render(
			fmt.Sprintf("Document truncated: %s limit reached", a.doc.Truncation)))
	}
	if n := len(a.doc.Orphans); n > 0 {
		lines = append(lines, a.styles.Warning.Render(
			fmt.Sprintf("%d annotation(s) no longer match any cell", n)))
	}
	return strings.Join(lines, "\n")
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	defer a.cancel()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Document returns the latest loaded document, or nil.
func (a *App) Document() *domain.ResolvedDocument {
	return a.doc
}

// CellIndex returns the 0-based index of the current cell.
func (a *App) CellIndex() int {
	return a.index
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Status returns the status bar state and message.
func (a *App) Status() (status.State, string) {
	return a.statusBar.State(), a.statusBar.Message()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and lays out the components.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	bodyRows := height - headerRows - annotationRows - statusRows - inputRows
	a.cellView.SetDimensions(width-4, bodyRows)
	a.annotationList.SetDimensions(width, annotationRows)
	a.input.SetWidth(width)
	a.statusBar.SetWidth(width)
	a.help.Width = width
}
