package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vmportal/internal/catalog"
	"github.com/imamik/vmportal/internal/config"
	"github.com/imamik/vmportal/internal/gate"
	"github.com/imamik/vmportal/internal/machine"
	testutil "github.com/imamik/vmportal/internal/testing"
	"github.com/imamik/vmportal/internal/workflow"
)

// fakeBackend is an in-memory tenancy.
type fakeBackend struct {
	mu        sync.Mutex
	caps      machine.Capabilities
	key       gate.KeyState
	created   []machine.Payload
	createErr error
	imagesErr error
	updated   []string
}

func newFakeBackend(withKey bool) *fakeBackend {
	b := &fakeBackend{
		key: gate.KeyState{
			CanUpdate:       true,
			AllowedKeyTypes: config.DefaultAllowedKeyTypes,
			RSAMinBits:      config.DefaultRSAMinBits,
		},
	}
	if withKey {
		b.key.PublicKey = testutil.SamplePublicKey
	}
	return b
}

func (b *fakeBackend) Capabilities() machine.Capabilities { return b.caps }

func (b *fakeBackend) KeyState(context.Context) (gate.KeyState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.key, nil
}

func (b *fakeBackend) UpdateKey(_ context.Context, publicKey string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updated = append(b.updated, publicKey)
	b.key.PublicKey = publicKey
	return "9", nil
}

func (b *fakeBackend) setImagesErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.imagesErr = err
}

func (b *fakeBackend) ImagesFetcher() catalog.Fetcher {
	return func(context.Context) ([]catalog.Entry, error) {
		b.mu.Lock()
		err := b.imagesErr
		b.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return []catalog.Entry{
			{ID: "42", Name: "Debian 12", Description: "system, x86"},
			{ID: "43", Name: "Ubuntu 24.04", Description: "system, x86"},
		}, nil
	}
}

func (b *fakeBackend) SizesFetcher() catalog.Fetcher {
	return func(context.Context) ([]catalog.Entry, error) {
		return []catalog.Entry{
			{ID: "cx22", Name: "cx22", Description: "2 vCPU, 4 GB RAM, 40 GB disk"},
			{ID: "cx32", Name: "cx32", Description: "4 vCPU, 8 GB RAM, 80 GB disk"},
		}, nil
	}
}

func (b *fakeBackend) CreateMachine(_ context.Context, p machine.Payload) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, p)
	if b.createErr != nil {
		return "", b.createErr
	}
	return "1001", nil
}

func (b *fakeBackend) createdPayloads() []machine.Payload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]machine.Payload(nil), b.created...)
}

// collect runs cmd and every command batched inside it. Only use it on
// commands that do not sleep.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func deliver(m *Model, msgs []tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedModel returns a model whose catalogs and key state have loaded.
func loadedModel(t *testing.T, b *fakeBackend) *Model {
	t.Helper()
	m := New(context.Background(), b, Options{Tenancy: "acme", Username: "alice", PrivateKeyPath: "~/.ssh/vmportal_rsa"})
	deliver(m, collect(m.refreshCatalogs()))
	deliver(m, collect(m.fetchKeyState()))
	require.True(t, m.images.Initialised())
	require.True(t, m.sizes.Initialised())
	require.False(t, m.keyFetching)
	return m
}

func TestModel_LoadsCatalogsAndKeyState(t *testing.T) {
	m := loadedModel(t, newFakeBackend(true))

	assert.Equal(t, 2, m.images.Len())
	assert.Equal(t, 2, m.sizes.Len())
	assert.True(t, m.key.Present())
	assert.False(t, m.ctrl.Disabled(m.signals()))
	assert.Equal(t, workflow.LabelIdle, m.ctrl.Label(m.signals()))
}

func TestModel_TriggerDisabledWhileKeyLoads(t *testing.T) {
	m := New(context.Background(), newFakeBackend(true), Options{})

	m.Update(key("n"))
	assert.False(t, m.ctrl.IsOpen(), "trigger must be disabled until the key state is known")
}

func TestModel_StaleCatalogResultDropped(t *testing.T) {
	m := New(context.Background(), newFakeBackend(true), Options{})
	_ = m.refreshCatalogs()
	latest := m.refreshCatalogs()

	m.Update(CatalogLoadedMsg{Kind: catalog.KindImages, Ticket: 1, Entries: []catalog.Entry{{ID: "old"}}})
	assert.False(t, m.images.Initialised(), "a superseded fetch must not initialise the catalog")

	deliver(m, collect(latest))
	assert.True(t, m.images.Initialised())
	assert.False(t, m.images.Contains("old"))
}

func TestModel_StaleKeyStateDropped(t *testing.T) {
	m := New(context.Background(), newFakeBackend(true), Options{})
	_ = m.fetchKeyState()
	latest := m.fetchKeyState()

	m.Update(KeyStateMsg{Ticket: 1, State: gate.KeyState{CanUpdate: true}})
	assert.True(t, m.keyFetching, "an older result must not end the latest fetch")
	assert.True(t, m.ctrl.Disabled(m.signals()))
	assert.False(t, m.key.Present())

	deliver(m, collect(latest))
	assert.False(t, m.keyFetching)
	assert.True(t, m.key.Present())

	m.Update(KeyStateMsg{Ticket: 1, State: gate.KeyState{CanUpdate: true}})
	assert.True(t, m.key.Present(), "a late older result must not replace the newer key state")

	m.Update(key("n"))
	assert.True(t, m.ctrl.FormVisible(), "a registered key opens the form, not key setup")
}

func TestModel_SubmitCreatesMachineAndCloses(t *testing.T) {
	b := newFakeBackend(true)
	m := loadedModel(t, b)

	m.Update(key("n"))
	require.True(t, m.ctrl.FormVisible())
	require.NotNil(t, m.dialog)

	m.fields.name = "vm-01"
	m.fields.imageID = "42"
	m.fields.sizeID = "cx22"
	m.syncFields()

	cmd := m.submit()
	assert.False(t, m.ctrl.IsOpen(), "a successful submit closes the dialog")
	assert.True(t, m.defaultPrevented)
	assert.True(t, m.creating)
	assert.Equal(t, workflow.LabelCreating, m.ctrl.Label(m.signals()))
	assert.Contains(t, m.notice.text, "vm-01 requested")

	m.Update(key("n"))
	assert.False(t, m.ctrl.IsOpen(), "trigger is disabled while creating")

	deliver(m, collect(cmd))
	assert.False(t, m.creating)
	assert.Contains(t, m.notice.text, "created (id 1001)")
	assert.Equal(t, []machine.Payload{{Name: "vm-01", ImageID: "42", SizeID: "cx22"}}, b.createdPayloads())
}

func TestModel_CreateFailureIsNotified(t *testing.T) {
	b := newFakeBackend(true)
	b.createErr = errors.New("server type cx22 not available")
	m := loadedModel(t, b)

	m.Update(key("n"))
	m.fields.name = "vm-01"
	m.fields.imageID = "42"
	m.fields.sizeID = "cx22"
	m.syncFields()
	deliver(m, collect(m.submit()))

	assert.True(t, m.notice.err)
	assert.Contains(t, m.notice.text, "not available")
	assert.False(t, m.creating)
}

func TestModel_RejectedSubmitKeepsDialogOpen(t *testing.T) {
	b := newFakeBackend(true)
	m := loadedModel(t, b)

	m.Update(key("n"))
	m.fields.name = "bad name!"
	m.fields.imageID = "42"
	m.fields.sizeID = "cx22"
	m.syncFields()

	_ = m.submit()
	assert.True(t, m.ctrl.IsOpen())
	assert.ErrorIs(t, m.formErr, machine.ErrNameInvalid)
	assert.Equal(t, "bad name!", m.fields.name, "widget values survive a rejected submit")
	assert.Empty(t, b.createdPayloads())
}

func TestModel_FormWaitsForCatalogs(t *testing.T) {
	m := New(context.Background(), newFakeBackend(true), Options{})
	deliver(m, collect(m.fetchKeyState()))
	catalogs := m.refreshCatalogs()

	m.Update(key("n"))
	require.True(t, m.ctrl.FormVisible())
	assert.Nil(t, m.dialog)
	assert.Contains(t, m.View(), "Waiting for catalogs")

	deliver(m, collect(catalogs))
	assert.NotNil(t, m.dialog, "the form mounts once both catalogs are ready")
}

func TestModel_CatalogFailureRetriedFromDialog(t *testing.T) {
	b := newFakeBackend(true)
	b.setImagesErr(errors.New("api unavailable"))
	m := New(context.Background(), b, Options{})
	deliver(m, collect(m.refreshCatalogs()))
	deliver(m, collect(m.fetchKeyState()))
	require.False(t, m.images.Initialised())
	require.True(t, m.sizes.Initialised())

	m.Update(key("n"))
	require.True(t, m.ctrl.FormVisible())
	assert.Nil(t, m.dialog)
	view := m.View()
	assert.Contains(t, view, "failed to load images")
	assert.Contains(t, view, "r to retry")
	assert.NotContains(t, view, "Waiting for catalogs")

	b.setImagesErr(nil)
	_, cmd := m.Update(key("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.images.Fetching())
	assert.False(t, m.sizes.Fetching(), "a loaded catalog is not re-fetched")

	deliver(m, collect(cmd))
	assert.True(t, m.images.Initialised())
	assert.True(t, m.ctrl.IsOpen())
	assert.NotNil(t, m.dialog, "the form mounts once the retry succeeds")
}

func TestModel_ConsoleAndDesktopStayConsistent(t *testing.T) {
	b := newFakeBackend(true)
	b.caps = machine.Capabilities{SupportsApps: true}
	m := loadedModel(t, b)
	m.Update(key("n"))

	m.fields.webConsole = true
	m.fields.desktop = true
	m.syncFields()
	assert.True(t, m.fields.desktop)

	m.fields.webConsole = false
	m.syncFields()
	assert.False(t, m.fields.desktop, "turning the console off clears the desktop")
	assert.False(t, m.ctrl.Form().Request().DesktopEnabled)
}

func TestModel_ConsoleHiddenWithoutApps(t *testing.T) {
	m := loadedModel(t, newFakeBackend(true))
	m.Update(key("n"))

	m.fields.webConsole = true
	m.fields.desktop = true
	m.syncFields()

	assert.False(t, m.fields.webConsole)
	assert.False(t, m.fields.desktop)
}

func TestModel_MissingKeyShowsKeySetupAndEscCancels(t *testing.T) {
	b := newFakeBackend(false)
	m := loadedModel(t, b)

	m.Update(key("n"))
	require.True(t, m.ctrl.KeySetupVisible())
	assert.False(t, m.ctrl.FormVisible())

	m.Update(key("esc"))
	assert.False(t, m.ctrl.IsOpen())
	assert.Nil(t, m.dialog)
	assert.Empty(t, b.createdPayloads())
}

func TestModel_KeySetupPasteRegistersKeyAndCloses(t *testing.T) {
	b := newFakeBackend(false)
	m := loadedModel(t, b)
	m.Update(key("n"))
	require.True(t, m.ctrl.KeySetupVisible())

	m.keyFields.method = gate.MethodPaste
	m.keyFields.publicKey = testutil.SamplePublicKey + "\n"
	msgs := collect(m.startKeySetup())
	require.True(t, m.keySetupRunning)

	for _, msg := range msgs {
		_, cmd := m.Update(msg)
		deliver(m, collect(cmd))
	}

	assert.False(t, m.ctrl.IsOpen(), "key setup success closes the dialog")
	assert.Equal(t, "SSH key registered", m.notice.text)
	assert.Equal(t, []string{testutil.SamplePublicKey}, b.updated)
	assert.True(t, m.key.Present(), "key state is refreshed after setup")
	assert.Empty(t, b.createdPayloads())
}

func TestModel_KeySetupFailureStaysOpen(t *testing.T) {
	m := loadedModel(t, newFakeBackend(false))
	m.Update(key("n"))

	m.keyFields.method = gate.MethodPaste
	m.keyFields.publicKey = "not a key"
	deliver(m, collect(m.startKeySetup()))

	assert.True(t, m.ctrl.KeySetupVisible())
	assert.ErrorIs(t, m.formErr, gate.ErrKeyMalformed)
	assert.False(t, m.keySetupRunning)
}

func TestModel_StaleKeySetupResultIgnored(t *testing.T) {
	b := newFakeBackend(false)
	m := loadedModel(t, b)
	m.Update(key("n"))
	m.keyFields.publicKey = testutil.SamplePublicKey
	setup := m.startKeySetup()

	m.Update(key("esc"))
	require.False(t, m.ctrl.IsOpen())

	deliver(m, collect(setup))
	assert.False(t, m.ctrl.IsOpen())
	assert.NotEqual(t, "SSH key registered", m.notice.text)
}

func TestModel_KeyUpdatesDisabled(t *testing.T) {
	b := newFakeBackend(false)
	b.key.CanUpdate = false
	m := loadedModel(t, b)

	m.Update(key("n"))
	require.True(t, m.ctrl.KeySetupVisible())
	assert.Contains(t, m.View(), "SSH key required")

	assert.Nil(t, m.startKeySetup())
	assert.False(t, m.ctrl.IsOpen())
	assert.Empty(t, b.updated)
}

func TestPortal_RendersTrigger(t *testing.T) {
	b := newFakeBackend(true)
	m := New(context.Background(), b, Options{Tenancy: "acme", Username: "alice"})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("New machine")) &&
			bytes.Contains(out, []byte("images: 2 available")) &&
			bytes.Contains(out, []byte("ssh key: registered"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(key("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}

func TestPortal_MissingKeyOpensKeySetup(t *testing.T) {
	b := newFakeBackend(false)
	m := New(context.Background(), b, Options{Tenancy: "acme"})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("not registered"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(key("n"))
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("SSH key required"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(key("esc"))
	tm.Send(key("q"))

	fm, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(*Model)
	require.True(t, ok)
	assert.False(t, fm.ctrl.IsOpen())
	assert.Empty(t, b.createdPayloads())
}

func TestView_Footer(t *testing.T) {
	m := loadedModel(t, newFakeBackend(true))
	assert.True(t, strings.Contains(m.View(), "n new machine"))

	m.Update(key("n"))
	assert.Contains(t, m.View(), "esc close")
}
