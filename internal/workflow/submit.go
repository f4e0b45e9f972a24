package workflow

import "github.com/imamik/vmportal/internal/machine"

// Event is the input event that triggered a submission.
type Event interface {
	PreventDefault()
}

// EventFunc adapts a function to Event.
type EventFunc func()

// PreventDefault calls f.
func (f EventFunc) PreventDefault() {
	if f != nil {
		f()
	}
}

// NoEvent is used when a submission has no triggering input event.
var NoEvent Event = EventFunc(nil)

// Callbacks are the parent's hooks into the workflow.
type Callbacks struct {
	// Create executes a request. Its outcome is never read by the workflow.
	Create func(machine.Payload)
	// OnSuccess runs after a submission has been handed off.
	OnSuccess func()
	// OnCancel runs when the dialog is closed without a submission.
	OnCancel func()
}

// Submitter runs the submission steps for a form.
type Submitter struct {
	create    func(machine.Payload)
	onSuccess func()
}

// NewSubmitter returns a submitter that calls create and then onSuccess.
func NewSubmitter(create func(machine.Payload), onSuccess func()) *Submitter {
	return &Submitter{create: create, onSuccess: onSuccess}
}

// Submit validates form against the catalogs and, if valid, dispatches the
// payload, resets the form and signals success, in that order. It reports
// whether the request was dispatched. A rejected submission leaves the form
// untouched.
func (s *Submitter) Submit(ev Event, form *machine.Form, images, sizes machine.Catalog) bool {
	if ev != nil {
		ev.PreventDefault()
	}
	if form == nil {
		return false
	}
	if err := form.Validate(images, sizes); err != nil {
		return false
	}

	payload := form.Payload()
	if s.create != nil {
		s.create(payload)
	}
	form.Reset()
	if s.onSuccess != nil {
		s.onSuccess()
	}
	return true
}
