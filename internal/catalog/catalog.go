package catalog

import (
	"context"
	"fmt"
)

// Kind names the resource type a catalog holds.
type Kind string

// Catalog kinds used by the machine request.
const (
	KindImages Kind = "images"
	KindSizes  Kind = "sizes"
)

// Entry is one selectable item.
type Entry struct {
	ID          string
	Name        string
	Description string
}

// Label renders the entry for selector widgets.
func (e Entry) Label() string {
	if e.Description == "" {
		return e.Name
	}
	return e.Name + " - " + e.Description
}

// Condition is the observable state of a catalog.
type Condition int

// Catalog conditions.
const (
	Uninitialised Condition = iota
	Loading
	Ready
)

func (c Condition) String() string {
	switch c {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "uninitialised"
	}
}

// Ticket identifies one fetch. Only the ticket returned by the latest
// Begin can complete it.
type Ticket uint64

// Fetcher loads the entries of a catalog. It is the action bound to a
// selector control; the form itself never calls it.
type Fetcher func(ctx context.Context) ([]Entry, error)

// Catalog is a collection of entries with an initialisation lifecycle.
// Once initialised it stays initialised for its whole lifetime.
type Catalog struct {
	kind        Kind
	initialised bool
	fetching    bool
	generation  uint64
	items       []Entry
	err         error
}

// New returns an uninitialised catalog.
func New(kind Kind) *Catalog {
	return &Catalog{kind: kind}
}

// Kind returns the resource type of the catalog.
func (c *Catalog) Kind() Kind { return c.kind }

// Initialised reports whether a fetch has completed successfully at least once.
func (c *Catalog) Initialised() bool { return c.initialised }

// Fetching reports whether a fetch is in flight.
func (c *Catalog) Fetching() bool { return c.fetching }

// Err returns the error of the last completed fetch, if it failed.
func (c *Catalog) Err() error { return c.err }

// Condition reports the catalog condition. A re-fetch of a ready catalog
// reports Loading while Initialised stays true.
func (c *Catalog) Condition() Condition {
	switch {
	case c.fetching:
		return Loading
	case c.initialised:
		return Ready
	default:
		return Uninitialised
	}
}

// Items returns a copy of the entries in catalog order.
func (c *Catalog) Items() []Entry {
	out := make([]Entry, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.items) }

// Lookup returns the entry with the given id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	for _, e := range c.items {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Contains reports whether id is a selectable entry.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// Begin marks a fetch as in flight and returns its ticket. Any earlier
// ticket becomes stale.
func (c *Catalog) Begin() Ticket {
	c.generation++
	c.fetching = true
	return Ticket(c.generation)
}

// Complete applies the result of the fetch identified by t. It returns
// false and changes nothing when t is stale. A failed fetch keeps the
// previous items and records the error.
func (c *Catalog) Complete(t Ticket, items []Entry, err error) bool {
	if uint64(t) != c.generation || !c.fetching {
		return false
	}
	c.fetching = false
	if err != nil {
		c.err = err
		return true
	}
	c.err = nil
	c.items = make([]Entry, len(items))
	copy(c.items, items)
	c.initialised = true
	return true
}

// Invalidate drops any in-flight fetch. Items and the initialised flag
// are kept.
func (c *Catalog) Invalidate() {
	c.generation++
	c.fetching = false
}

// Load runs fetch synchronously through Begin and Complete.
func (c *Catalog) Load(ctx context.Context, fetch Fetcher) error {
	t := c.Begin()
	items, err := fetch(ctx)
	c.Complete(t, items, err)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.kind, err)
	}
	return nil
}
