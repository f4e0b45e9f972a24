package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vmportal/internal/catalog"
	"github.com/imamik/vmportal/internal/gate"
	"github.com/imamik/vmportal/internal/machine"
)

// recorder captures every callback the workflow makes, in order.
type recorder struct {
	calls    []string
	payloads []machine.Payload
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		Create: func(p machine.Payload) {
			r.calls = append(r.calls, "create")
			r.payloads = append(r.payloads, p)
		},
		OnSuccess: func() { r.calls = append(r.calls, "success") },
		OnCancel:  func() { r.calls = append(r.calls, "cancel") },
	}
}

type countingEvent struct{ prevented int }

func (e *countingEvent) PreventDefault() { e.prevented++ }

func readyCatalog(t *testing.T, kind catalog.Kind, ids ...string) *catalog.Catalog {
	t.Helper()
	c := catalog.New(kind)
	entries := make([]catalog.Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, catalog.Entry{ID: id, Name: id})
	}
	require.True(t, c.Complete(c.Begin(), entries, nil))
	return c
}

func withKey() gate.KeyState {
	return gate.KeyState{PublicKey: "ssh-ed25519 AAAAC3Nza user@host"}
}

func openForm(t *testing.T, c *Controller) *machine.Form {
	t.Helper()
	_, ok := c.Open(Signals{}, withKey())
	require.True(t, ok)
	form := c.Form()
	require.NotNil(t, form)
	return form
}

func TestSubmit_HappyPathScenario(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := NewController(machine.Capabilities{SupportsApps: true}, rec.callbacks())
	images := readyCatalog(t, catalog.KindImages, "img-42")
	sizes := readyCatalog(t, catalog.KindSizes, "sz-2")

	form := openForm(t, c)
	form.SetName("vm-01")
	form.SetImage("img-42")
	form.SetSize("sz-2")
	form.SetWebConsoleEnabled(false)

	ev := &countingEvent{}
	require.True(t, c.Submit(ev, images, sizes))

	assert.Equal(t, 1, ev.prevented)
	assert.Equal(t, []string{"create", "success"}, rec.calls)
	assert.Equal(t, []machine.Payload{{
		Name:    "vm-01",
		ImageID: "img-42",
		SizeID:  "sz-2",
	}}, rec.payloads)
	assert.True(t, form.IsDefault(), "form must be reset after submission")
	assert.False(t, c.IsOpen())
}

func TestSubmit_RejectedWhileCatalogUninitialised(t *testing.T) {
	t.Parallel()
	ready := func() *catalog.Catalog { return readyCatalog(t, catalog.KindImages, "img-42", "sz-2") }
	loading := func() *catalog.Catalog {
		c := catalog.New(catalog.KindSizes)
		c.Begin()
		return c
	}

	tests := []struct {
		name          string
		images, sizes *catalog.Catalog
	}{
		{"images uninitialised", catalog.New(catalog.KindImages), ready()},
		{"sizes uninitialised", ready(), catalog.New(catalog.KindSizes)},
		{"sizes loading", ready(), loading()},
		{"both uninitialised", catalog.New(catalog.KindImages), catalog.New(catalog.KindSizes)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{}
			c := NewController(machine.Capabilities{}, rec.callbacks())
			form := openForm(t, c)
			form.SetName("vm-01")
			form.SetImage("img-42")
			form.SetSize("sz-2")

			assert.False(t, c.Submit(NoEvent, tt.images, tt.sizes))
			assert.Empty(t, rec.calls)
			assert.True(t, c.IsOpen(), "form must stay open")
			assert.Equal(t, "vm-01", form.Request().Name)
		})
	}
}

func TestSubmit_BadNameBlocked(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := NewController(machine.Capabilities{}, rec.callbacks())
	form := openForm(t, c)
	form.SetName("bad name!")
	form.SetImage("img-42")
	form.SetSize("sz-2")

	ok := c.Submit(NoEvent, readyCatalog(t, catalog.KindImages, "img-42"), readyCatalog(t, catalog.KindSizes, "sz-2"))

	assert.False(t, ok)
	assert.Empty(t, rec.calls)
}

func TestSubmit_ConsoleToggledOffSendsBothFalse(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := NewController(machine.Capabilities{SupportsApps: true}, rec.callbacks())
	form := openForm(t, c)
	form.SetName("vm-01")
	form.SetImage("img-42")
	form.SetSize("sz-2")
	form.SetWebConsoleEnabled(true)
	form.SetDesktopEnabled(true)
	form.SetWebConsoleEnabled(false)

	require.True(t, c.Submit(NoEvent, readyCatalog(t, catalog.KindImages, "img-42"), readyCatalog(t, catalog.KindSizes, "sz-2")))
	require.Len(t, rec.payloads, 1)
	assert.False(t, rec.payloads[0].WebConsoleEnabled)
	assert.False(t, rec.payloads[0].DesktopEnabled)
}

func TestSubmit_WithoutAppsNeverSendsOptions(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := NewController(machine.Capabilities{SupportsApps: false}, rec.callbacks())
	form := openForm(t, c)
	form.SetName("vm-01")
	form.SetImage("img-42")
	form.SetSize("sz-2")
	form.SetWebConsoleEnabled(true)
	form.SetDesktopEnabled(true)

	require.True(t, c.Submit(NoEvent, readyCatalog(t, catalog.KindImages, "img-42"), readyCatalog(t, catalog.KindSizes, "sz-2")))
	assert.Equal(t, machine.Payload{Name: "vm-01", ImageID: "img-42", SizeID: "sz-2"}, rec.payloads[0])
}

func TestOpen_MissingKeyShowsGateAndCancelNeverCreates(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := NewController(machine.Capabilities{SupportsApps: true}, rec.callbacks())

	token, ok := c.Open(Signals{}, gate.KeyState{CanUpdate: true})
	require.True(t, ok)
	assert.True(t, c.KeySetupVisible())
	assert.False(t, c.FormVisible())
	assert.Nil(t, c.Form())

	c.ResolveKeySetup(gate.KeySetupCancelled)

	assert.Equal(t, []string{"cancel"}, rec.calls)
	assert.False(t, c.IsOpen())
	assert.False(t, c.Current(token))
}

func TestOpen_KeySetupSuccessAlsoCloses(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := NewController(machine.Capabilities{}, rec.callbacks())

	_, ok := c.Open(Signals{}, gate.KeyState{CanUpdate: true})
	require.True(t, ok)
	c.ResolveKeySetup(gate.KeySetupSucceeded)

	assert.Equal(t, []string{"cancel"}, rec.calls)
	assert.False(t, c.IsOpen())

	_, ok = c.Open(Signals{}, withKey())
	require.True(t, ok)
	assert.True(t, c.FormVisible(), "a registered key unblocks the next opening")
}

func TestOpen_RefusedWhileDisabled(t *testing.T) {
	t.Parallel()

	for _, sig := range []Signals{{KeyFetching: true}, {Disabled: true}, {Creating: true}} {
		c := NewController(machine.Capabilities{}, Callbacks{})
		assert.True(t, c.Disabled(sig))

		_, ok := c.Open(sig, withKey())
		assert.False(t, ok)
		assert.False(t, c.IsOpen())
		assert.False(t, c.Gate().Active(), "gate must not be entered while disabled")
	}
}

func TestOpen_IgnoredWhileAlreadyOpen(t *testing.T) {
	t.Parallel()
	c := NewController(machine.Capabilities{}, Callbacks{})

	first, ok := c.Open(Signals{}, withKey())
	require.True(t, ok)
	c.Form().SetName("vm-01")

	second, ok := c.Open(Signals{}, withKey())
	assert.False(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, "vm-01", c.Form().Request().Name)
}

func TestTrigger_LabelAndBusy(t *testing.T) {
	t.Parallel()
	c := NewController(machine.Capabilities{}, Callbacks{})

	assert.Equal(t, LabelIdle, c.Label(Signals{}))
	assert.False(t, c.Busy(Signals{Disabled: true}))
	assert.True(t, c.Busy(Signals{Creating: true}))
	assert.Equal(t, LabelCreating, c.Label(Signals{Creating: true}))
	assert.False(t, c.Disabled(Signals{}))
}

func TestClose_DiscardsFormAndRetiresToken(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := NewController(machine.Capabilities{SupportsApps: true}, rec.callbacks())

	first, _ := c.Open(Signals{}, withKey())
	form := c.Form()
	form.SetName("vm-01")
	form.SetWebConsoleEnabled(true)

	c.Close()
	c.Close()

	assert.Equal(t, []string{"cancel"}, rec.calls, "closing twice notifies once")
	assert.True(t, form.IsDefault())
	assert.False(t, c.Current(first))

	second, ok := c.Open(Signals{}, withKey())
	require.True(t, ok)
	assert.NotEqual(t, first, second)
	assert.True(t, c.Current(second))
	assert.False(t, c.Current(first), "a completion from the old cycle is stale")
	assert.True(t, c.Form().IsDefault(), "a new cycle starts at defaults")
}

func TestSubmit_NoMountedForm(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	c := NewController(machine.Capabilities{}, rec.callbacks())
	ev := &countingEvent{}

	assert.False(t, c.Submit(ev, nil, nil))
	assert.Equal(t, 1, ev.prevented)
	assert.Empty(t, rec.calls)
}

func TestSubmitter_SubmitsDirectly(t *testing.T) {
	t.Parallel()
	var got []machine.Payload
	successes := 0
	s := NewSubmitter(func(p machine.Payload) { got = append(got, p) }, func() { successes++ })

	form := machine.NewForm(machine.Capabilities{SupportsApps: true})
	form.SetName("web.prod.1")
	form.SetImage("img-42")
	form.SetSize("sz-2")
	form.SetWebConsoleEnabled(true)
	form.SetDesktopEnabled(true)

	ok := s.Submit(NoEvent, form, readyCatalog(t, catalog.KindImages, "img-42"), readyCatalog(t, catalog.KindSizes, "sz-2"))

	require.True(t, ok)
	assert.Equal(t, 1, successes)
	assert.Equal(t, []machine.Payload{{
		Name:              "web.prod.1",
		ImageID:           "img-42",
		SizeID:            "sz-2",
		WebConsoleEnabled: true,
		DesktopEnabled:    true,
	}}, got)
	assert.True(t, form.IsDefault())
	assert.False(t, s.Submit(NoEvent, nil, nil, nil))
}
