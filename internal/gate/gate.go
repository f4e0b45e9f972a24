package gate

// State is the routing state of the gate.
type State int

const (
	// Blocked means no public key is registered.
	Blocked State = iota
	// Unblocked means the creation form may be shown.
	Unblocked
)

// String returns the state name.
func (s State) String() string {
	if s == Unblocked {
		return "unblocked"
	}
	return "blocked"
}

// KeyState is the externally owned view of the user's SSH key.
type KeyState struct {
	Fetching        bool
	PublicKey       string
	CanUpdate       bool
	AllowedKeyTypes []string
	RSAMinBits      int
}

// Present reports whether a public key is registered.
func (k KeyState) Present() bool { return k.PublicKey != "" }

// Outcome is how the key-setup sub-dialog ended.
type Outcome int

const (
	KeySetupSucceeded Outcome = iota
	KeySetupCancelled
)

// Gate decides whether an opened dialog shows the creation form or the
// key-setup sub-dialog.
type Gate struct {
	active  bool
	state   State
	key     KeyState
	onClose func()
}

// New returns an inactive gate. onClose, if not nil, runs whenever the gate
// closes the dialog.
func New(onClose func()) *Gate {
	return &Gate{onClose: onClose}
}

// Open activates the gate for one dialog cycle and derives its state from key.
func (g *Gate) Open(key KeyState) State {
	g.active = true
	g.key = key
	if key.Present() {
		g.state = Unblocked
	} else {
		g.state = Blocked
	}
	return g.state
}

// State returns the state derived on the last Open.
func (g *Gate) State() State { return g.state }

// Active reports whether the gate is part of an open dialog.
func (g *Gate) Active() bool { return g.active }

// Key returns the key state snapshot taken on Open.
func (g *Gate) Key() KeyState { return g.key }

// SubDialogVisible reports whether the key-setup sub-dialog is shown.
func (g *Gate) SubDialogVisible() bool {
	return g.active && g.state == Blocked
}

// FormVisible reports whether the creation form is mounted. It needs both
// an unblocked gate and a dialog the trigger considers open.
func (g *Gate) FormVisible(dialogOpen bool) bool {
	return dialogOpen && g.active && g.state == Unblocked
}

// Resolve ends the key-setup sub-dialog. Success and cancellation both close
// the dialog; a newly registered key takes effect on the next Open.
func (g *Gate) Resolve(Outcome) {
	if !g.SubDialogVisible() {
		return
	}
	g.Close()
}

// Close resets the gate and notifies the owner.
func (g *Gate) Close() {
	wasActive := g.active
	g.Reset()
	if wasActive && g.onClose != nil {
		g.onClose()
	}
}

// Reset deactivates the gate without notifying the owner.
func (g *Gate) Reset() {
	g.active = false
	g.state = Blocked
	g.key = KeyState{}
}
