// Package tui provides the Bubble Tea portal for requesting machines.
package tui

import (
	"github.com/imamik/vmportal/internal/catalog"
	"github.com/imamik/vmportal/internal/gate"
	"github.com/imamik/vmportal/internal/workflow"
)

// CatalogLoadedMsg carries the result of one catalog fetch.
type CatalogLoadedMsg struct {
	Kind    catalog.Kind
	Ticket  catalog.Ticket
	Entries []catalog.Entry
	Err     error
}

// KeyStateMsg carries the user's SSH key state from the fetch Ticket.
type KeyStateMsg struct {
	Ticket uint64
	State  gate.KeyState
	Err    error
}

// KeySetupDoneMsg reports the end of a key registration started in the
// dialog cycle Token.
type KeySetupDoneMsg struct {
	Token  workflow.Token
	Result *gate.SetupResult
	Err    error
}

// CreateDoneMsg reports the result of a creation action.
type CreateDoneMsg struct {
	Name string
	ID   string
	Err  error
}
