package categoryassign

import (
	"fmt"

	"categoryassign/internal/event"
	"categoryassign/internal/form"
	"categoryassign/internal/registry"
)

// Calling conventions recognised by the normalizers.
const (
	ConventionPositional = "positional"
	ConventionEvent      = "event"
)

type argumentSource interface {
	Argument(name string) any
}

type formSource interface {
	Form() *form.Form
	Data() any
}

// TransitionCall is a pre-transition hook invocation in one shape.
type TransitionCall struct {
	Context    string
	Item       any
	Transition any
	Data       registry.Registry
	Convention string
}

// NormalizeTransitionArgs accepts either (context, item, transition, data) or a
// single event exposing Argument("extension"|"item"|"transition"|"data").
// Missing positional arguments are left zero.
func NormalizeTransitionArgs(args ...any) TransitionCall {
	if len(args) == 0 {
		return TransitionCall{Data: registry.New()}
	}
	if src, ok := args[0].(argumentSource); ok {
		return TransitionCall{
			Context:    contextString(src.Argument(event.ArgExtension)),
			Item:       src.Argument(event.ArgItem),
			Transition: src.Argument(event.ArgTransition),
			Data:       registry.From(src.Argument(event.ArgData)),
			Convention: ConventionEvent,
		}
	}
	call := TransitionCall{
		Context:    contextString(args[0]),
		Convention: ConventionPositional,
	}
	if len(args) > 1 {
		call.Item = args[1]
	}
	if len(args) > 2 {
		call.Transition = args[2]
	}
	var data any
	if len(args) > 3 {
		data = args[3]
	}
	call.Data = registry.From(data)
	return call
}

// FormCall is a prepare-form hook invocation in one shape.
type FormCall struct {
	Form       *form.Form
	Data       registry.Registry
	Convention string
}

// NormalizeFormArgs accepts a *form.Form with optional data, or an event
// exposing Form() and Data(). When no data accompanies the form, the values
// already bound to it are used.
func NormalizeFormArgs(formOrEvent any, data ...any) FormCall {
	var (
		call FormCall
		raw  any
	)
	switch typed := formOrEvent.(type) {
	case *form.Form:
		call.Form = typed
		call.Convention = ConventionPositional
		if len(data) > 0 {
			raw = data[0]
		}
	case formSource:
		call.Form = typed.Form()
		call.Convention = ConventionEvent
		raw = typed.Data()
	}
	if raw == nil && call.Form != nil {
		call.Data = call.Form.Data().Clone()
		return call
	}
	call.Data = registry.From(raw)
	return call
}

func contextString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return ""
	}
}
