package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/vmportal/internal/catalog"
	"github.com/imamik/vmportal/internal/gate"
	"github.com/imamik/vmportal/internal/machine"
	"github.com/imamik/vmportal/internal/metrics"
	"github.com/imamik/vmportal/internal/workflow"
)

// Backend is what the portal needs from a tenancy.
type Backend interface {
	Capabilities() machine.Capabilities
	KeyState(ctx context.Context) (gate.KeyState, error)
	UpdateKey(ctx context.Context, publicKey string) (string, error)
	ImagesFetcher() catalog.Fetcher
	SizesFetcher() catalog.Fetcher
	CreateMachine(ctx context.Context, p machine.Payload) (string, error)
}

// Options configures the portal model.
type Options struct {
	Tenancy        string
	Username       string
	PrivateKeyPath string
}

type notice struct {
	text string
	err  bool
}

// Model is the Bubble Tea model for the portal. All state is owned by
// the Update loop; commands report back through messages.
type Model struct {
	ctx     context.Context
	backend Backend
	opts    Options

	ctrl   *workflow.Controller
	images *catalog.Catalog
	sizes  *catalog.Catalog
	// catalogVersion changes whenever a catalog completes, so selector
	// options are recomputed.
	catalogVersion int

	key         gate.KeyState
	keyFetching bool
	// keyTicket identifies the latest key state fetch; older results are
	// dropped.
	keyTicket uint64
	keyErr      error
	creating    bool
	submitted   string

	// Dialog state for the current cycle.
	dialog           *huh.Form
	fields           *createFields
	keyFields        *keySetupFields
	keySetupRunning  bool
	formErr          error
	defaultPrevented bool

	// pending holds commands queued by workflow callbacks during Update.
	pending []tea.Cmd

	spinner spinner.Model
	notice  notice
	width   int
	height  int
}

// New returns a portal model. Catalogs and key state load on Init.
func New(ctx context.Context, backend Backend, opts Options) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorBlue)

	m := &Model{
		ctx:         ctx,
		backend:     backend,
		opts:        opts,
		images:      catalog.New(catalog.KindImages),
		sizes:       catalog.New(catalog.KindSizes),
		keyFetching: true,
		spinner:     s,
		width:       80,
	}
	m.ctrl = workflow.NewController(backend.Capabilities(), workflow.Callbacks{
		Create:    m.dispatchCreate,
		OnSuccess: m.onSubmitted,
		OnCancel:  m.resetDialog,
	})
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchKeyState(), m.refreshCatalogs())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.ctrl.IsOpen() {
			return m, m.handleTriggerKey(msg)
		}
		m.defaultPrevented = false
		cmd := m.updateDialog(msg)
		if !m.ctrl.IsOpen() && !m.defaultPrevented {
			return m, tea.Batch(cmd, m.handleTriggerKey(msg))
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CatalogLoadedMsg:
		return m, m.handleCatalog(msg)

	case KeyStateMsg:
		if msg.Ticket != m.keyTicket {
			metrics.RecordStaleCompletion("ssh-key")
			return m, nil
		}
		m.keyFetching = false
		m.keyErr = msg.Err
		if msg.Err != nil {
			m.notice = notice{text: msg.Err.Error(), err: true}
		} else {
			m.key = msg.State
		}
		return m, nil

	case KeySetupDoneMsg:
		return m, m.handleKeySetupDone(msg)

	case CreateDoneMsg:
		m.creating = false
		if msg.Err != nil {
			m.notice = notice{text: msg.Err.Error(), err: true}
		} else {
			m.notice = notice{text: fmt.Sprintf("Machine %s created (id %s)", msg.Name, msg.ID)}
		}
		return m, nil
	}

	if m.ctrl.IsOpen() {
		return m, m.updateDialog(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	return renderView(m)
}

func (m *Model) signals() workflow.Signals {
	return workflow.Signals{
		KeyFetching: m.keyFetching,
		Disabled:    m.keyErr != nil,
		Creating:    m.creating,
	}
}

func (m *Model) handleTriggerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "n", "enter":
		return m.openDialog()
	case "r":
		return tea.Batch(m.fetchKeyState(), m.refreshCatalogs())
	}
	return nil
}

func (m *Model) openDialog() tea.Cmd {
	if _, ok := m.ctrl.Open(m.signals(), m.key); !ok {
		return nil
	}
	m.notice = notice{}
	switch {
	case m.ctrl.KeySetupVisible():
		m.keyFields = &keySetupFields{privateKeyPath: m.opts.PrivateKeyPath}
		return m.buildKeySetupDialog()
	case m.ctrl.FormVisible():
		m.fields = &createFields{}
		return m.buildCreateDialog()
	}
	return nil
}

// cancelDialog closes the dialog from whichever view is showing.
func (m *Model) cancelDialog() {
	if m.ctrl.KeySetupVisible() {
		m.ctrl.ResolveKeySetup(gate.KeySetupCancelled)
		return
	}
	m.ctrl.Close()
}

func (m *Model) updateDialog(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.cancelDialog()
		return nil
	}
	if m.dialog == nil && m.ctrl.FormVisible() {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "r" {
			return m.retryCatalogs()
		}
		return nil
	}
	if m.dialog == nil || m.keySetupRunning {
		return nil
	}

	model, cmd := m.dialog.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.dialog = f
	}
	m.syncFields()

	switch m.dialog.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, m.completeDialog())
	case huh.StateAborted:
		m.cancelDialog()
	}
	return cmd
}

// completeDialog runs when the huh form completes. The completing key
// never reaches the trigger.
func (m *Model) completeDialog() tea.Cmd {
	switch {
	case m.ctrl.KeySetupVisible():
		m.defaultPrevented = true
		return m.startKeySetup()
	case m.ctrl.FormVisible():
		return m.submit()
	}
	return nil
}

func (m *Model) submit() tea.Cmd {
	ev := workflow.EventFunc(func() { m.defaultPrevented = true })
	accepted := m.ctrl.Submit(ev, m.images, m.sizes)
	metrics.RecordSubmission(accepted)
	if !accepted {
		if form := m.ctrl.Form(); form != nil {
			m.formErr = form.Validate(m.images, m.sizes)
		}
		return m.buildCreateDialog()
	}

	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

// dispatchCreate is the workflow's creation action. Its result arrives
// as a CreateDoneMsg after the dialog has closed.
func (m *Model) dispatchCreate(p machine.Payload) {
	m.creating = true
	m.submitted = p.Name
	ctx, backend := m.ctx, m.backend
	m.pending = append(m.pending, func() tea.Msg {
		id, err := backend.CreateMachine(ctx, p)
		return CreateDoneMsg{Name: p.Name, ID: id, Err: err}
	})
}

func (m *Model) onSubmitted() {
	m.resetDialog()
	m.notice = notice{text: fmt.Sprintf("Machine %s requested", m.submitted)}
}

func (m *Model) resetDialog() {
	m.dialog = nil
	m.fields = nil
	m.keyFields = nil
	m.keySetupRunning = false
	m.formErr = nil
}

func (m *Model) catalogFor(kind catalog.Kind) *catalog.Catalog {
	switch kind {
	case catalog.KindImages:
		return m.images
	case catalog.KindSizes:
		return m.sizes
	}
	return nil
}

func (m *Model) refreshCatalogs() tea.Cmd {
	return tea.Batch(
		m.loadCatalog(m.images, m.backend.ImagesFetcher()),
		m.loadCatalog(m.sizes, m.backend.SizesFetcher()),
	)
}

// retryCatalogs re-fetches every catalog that has not loaded and has no
// fetch in flight.
func (m *Model) retryCatalogs() tea.Cmd {
	var cmds []tea.Cmd
	if !m.images.Initialised() && !m.images.Fetching() {
		cmds = append(cmds, m.loadCatalog(m.images, m.backend.ImagesFetcher()))
	}
	if !m.sizes.Initialised() && !m.sizes.Fetching() {
		cmds = append(cmds, m.loadCatalog(m.sizes, m.backend.SizesFetcher()))
	}
	return tea.Batch(cmds...)
}

// catalogErr returns the failure of a catalog that has never loaded.
func (m *Model) catalogErr() error {
	for _, c := range []*catalog.Catalog{m.images, m.sizes} {
		if !c.Initialised() && !c.Fetching() && c.Err() != nil {
			return fmt.Errorf("failed to load %s: %w", c.Kind(), c.Err())
		}
	}
	return nil
}

func (m *Model) loadCatalog(c *catalog.Catalog, fetch catalog.Fetcher) tea.Cmd {
	ticket := c.Begin()
	kind := c.Kind()
	ctx := m.ctx
	return func() tea.Msg {
		entries, err := fetch(ctx)
		return CatalogLoadedMsg{Kind: kind, Ticket: ticket, Entries: entries, Err: err}
	}
}

func (m *Model) handleCatalog(msg CatalogLoadedMsg) tea.Cmd {
	c := m.catalogFor(msg.Kind)
	if c == nil || !c.Complete(msg.Ticket, msg.Entries, msg.Err) {
		metrics.RecordStaleCompletion(string(msg.Kind))
		return nil
	}
	if msg.Err != nil {
		m.notice = notice{text: fmt.Sprintf("failed to load %s: %v", msg.Kind, msg.Err), err: true}
		return nil
	}
	m.catalogVersion++
	if m.ctrl.FormVisible() && m.dialog == nil {
		return m.buildCreateDialog()
	}
	return nil
}

func (m *Model) fetchKeyState() tea.Cmd {
	m.keyFetching = true
	m.keyTicket++
	ticket := m.keyTicket
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		state, err := backend.KeyState(ctx)
		return KeyStateMsg{Ticket: ticket, State: state, Err: err}
	}
}

func (m *Model) startKeySetup() tea.Cmd {
	key := m.ctrl.Gate().Key()
	if !key.CanUpdate {
		m.ctrl.ResolveKeySetup(gate.KeySetupCancelled)
		return nil
	}

	m.keySetupRunning = true
	m.formErr = nil
	token := m.ctrl.Token()
	req := m.keyFields.request()
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		res, err := gate.RunSetup(ctx, backend, key, req)
		return KeySetupDoneMsg{Token: token, Result: res, Err: err}
	}
}

func (m *Model) handleKeySetupDone(msg KeySetupDoneMsg) tea.Cmd {
	refresh := m.fetchKeyState()
	if !m.ctrl.Current(msg.Token) || !m.ctrl.KeySetupVisible() {
		metrics.RecordStaleCompletion("key-setup")
		return refresh
	}

	m.keySetupRunning = false
	if msg.Err != nil {
		m.formErr = msg.Err
		return tea.Batch(refresh, m.buildKeySetupDialog())
	}

	m.ctrl.ResolveKeySetup(gate.KeySetupSucceeded)
	text := "SSH key registered"
	if msg.Result != nil && msg.Result.PrivateKeyPath != "" {
		text += ", private key saved to " + msg.Result.PrivateKeyPath
	}
	m.notice = notice{text: text}
	return refresh
}
