package workflow

import (
	"github.com/imamik/vmportal/internal/gate"
	"github.com/imamik/vmportal/internal/machine"
)

// Token identifies one dialog cycle.
type Token uint64

// Signals are the externally computed flags the trigger is derived from.
type Signals struct {
	KeyFetching bool
	Disabled    bool
	Creating    bool
}

// Trigger labels.
const (
	LabelIdle     = "New machine"
	LabelCreating = "Creating machine..."
)

// Controller owns the dialog's open state and the per-cycle transient
// state: the gate and the form.
type Controller struct {
	caps      machine.Capabilities
	callbacks Callbacks

	gate      *gate.Gate
	form      *machine.Form
	submitter *Submitter

	open  bool
	token Token
}

// NewController returns a closed controller for a tenancy.
func NewController(caps machine.Capabilities, cb Callbacks) *Controller {
	c := &Controller{caps: caps, callbacks: cb}
	c.gate = gate.New(c.Close)
	c.submitter = NewSubmitter(cb.Create, c.succeeded)
	return c
}

// Disabled reports whether the trigger refuses to open the dialog.
func (c *Controller) Disabled(sig Signals) bool {
	return sig.KeyFetching || sig.Disabled || sig.Creating
}

// Busy reports whether the trigger shows the in-progress state.
func (c *Controller) Busy(sig Signals) bool { return sig.Creating }

// Label returns the trigger label for sig.
func (c *Controller) Label(sig Signals) string {
	if c.Busy(sig) {
		return LabelCreating
	}
	return LabelIdle
}

// Open starts a new dialog cycle through the gate. It reports false and does
// nothing while the trigger is disabled or a dialog is already open.
func (c *Controller) Open(sig Signals, key gate.KeyState) (Token, bool) {
	if c.Disabled(sig) || c.open {
		return c.token, false
	}

	c.token++
	c.open = true
	if c.gate.Open(key) == gate.Unblocked {
		c.form = machine.NewForm(c.caps)
	}
	return c.token, true
}

// IsOpen reports whether a dialog cycle is live.
func (c *Controller) IsOpen() bool { return c.open }

// Token returns the token of the current or most recent cycle.
func (c *Controller) Token() Token { return c.token }

// Current reports whether t belongs to the live cycle.
func (c *Controller) Current(t Token) bool { return c.open && t == c.token }

// Gate exposes the gate for rendering.
func (c *Controller) Gate() *gate.Gate { return c.gate }

// Form returns the mounted form, or nil when none is mounted.
func (c *Controller) Form() *machine.Form {
	if !c.FormVisible() {
		return nil
	}
	return c.form
}

// FormVisible reports whether the creation form is mounted.
func (c *Controller) FormVisible() bool { return c.gate.FormVisible(c.open) && c.form != nil }

// KeySetupVisible reports whether the key-setup sub-dialog is shown.
func (c *Controller) KeySetupVisible() bool { return c.open && c.gate.SubDialogVisible() }

// ResolveKeySetup ends the key-setup sub-dialog, which closes the dialog.
func (c *Controller) ResolveKeySetup(o gate.Outcome) { c.gate.Resolve(o) }

// Submit runs the submission protocol on the mounted form. On success the
// cycle ends and OnSuccess runs; OnCancel does not.
func (c *Controller) Submit(ev Event, images, sizes machine.Catalog) bool {
	form := c.Form()
	if form == nil {
		if ev != nil {
			ev.PreventDefault()
		}
		return false
	}
	return c.submitter.Submit(ev, form, images, sizes)
}

// Close discards the cycle and calls OnCancel. It is a no-op when closed.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.teardown()
	if c.callbacks.OnCancel != nil {
		c.callbacks.OnCancel()
	}
}

func (c *Controller) succeeded() {
	c.teardown()
	if c.callbacks.OnSuccess != nil {
		c.callbacks.OnSuccess()
	}
}

func (c *Controller) teardown() {
	c.open = false
	c.gate.Reset()
	if c.form != nil {
		c.form.Reset()
	}
	c.form = nil
}
