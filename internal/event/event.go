package event

import (
	"categoryassign/internal/form"
)

// Event names dispatched by the host.
const (
	BeforeChangeStage = "onContentBeforeChangeStageDo"
	AfterTransition   = "onWorkflowAfterTransition"
	PrepareForm       = "onContentPrepareForm"
)

// Argument names carried by workflow transition events.
const (
	ArgExtension  = "extension"
	ArgItem       = "item"
	ArgTransition = "transition"
	ArgData       = "data"
)

// Event is anything the dispatcher can deliver.
type Event interface {
	Name() string
}

// Generic is an event carrying a bag of named arguments.
type Generic struct {
	name string
	args map[string]any
}

// New creates a named event with the given arguments.
func New(name string, args map[string]any) *Generic {
	cp := make(map[string]any, len(args))
	for k, v := range args {
		cp[k] = v
	}
	return &Generic{name: name, args: cp}
}

// Name returns the event name.
func (e *Generic) Name() string { return e.name }

// Argument returns the named argument, or nil.
func (e *Generic) Argument(name string) any {
	if e == nil {
		return nil
	}
	return e.args[name]
}

// SetArgument replaces a named argument.
func (e *Generic) SetArgument(name string, value any) {
	if e.args == nil {
		e.args = map[string]any{}
	}
	e.args[name] = value
}

// NewTransitionEvent builds the event fired around a workflow transition.
// extension is the "<component>.<view>" context of the item.
func NewTransitionEvent(name, extension string, item, transition, data any) *Generic {
	return New(name, map[string]any{
		ArgExtension:  extension,
		ArgItem:       item,
		ArgTransition: transition,
		ArgData:       data,
	})
}

// PrepareFormEvent is fired while a form is being built, before rendering.
type PrepareFormEvent struct {
	form *form.Form
	data any
}

// NewPrepareFormEvent wraps a form and the data about to be bound to it.
func NewPrepareFormEvent(f *form.Form, data any) *PrepareFormEvent {
	return &PrepareFormEvent{form: f, data: data}
}

// Name returns PrepareForm.
func (e *PrepareFormEvent) Name() string { return PrepareForm }

// Form returns the form under construction.
func (e *PrepareFormEvent) Form() *form.Form { return e.form }

// Data returns the data the host will bind to the form.
func (e *PrepareFormEvent) Data() any { return e.data }
