// Package playable defines the Playable contract consumers depend on, the
// region-specific media contracts that adaptees natively implement, and a
// handful of basic implementations.
package playable

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidAdaptee is returned when an adapter or console is handed a
	// missing adaptee, or one that does not speak the vocabulary it adapts.
	ErrInvalidAdaptee = errors.New("invalid adaptee")

	// ErrDuplicateRegistration is returned when a variant is registered twice.
	ErrDuplicateRegistration = errors.New("variant already registered")

	// ErrNoAdapterFound is returned when no factory is registered for the
	// variant of the adaptee being resolved.
	ErrNoAdapterFound = errors.New("no adapter found for variant")

	// ErrInvalidRegistration is returned for registrations with an empty
	// variant or a nil factory.
	ErrInvalidRegistration = errors.New("invalid registration")
)

// StateRunning is the state reported by media that started successfully.
const StateRunning = "running"

// Variant is the region tag an adaptee declares for itself.
type Variant string

const (
	VariantPAL    Variant = "PAL"
	VariantNTSC   Variant = "NTSC"
	VariantNative Variant = "Native"
)

func (v Variant) String() string {
	return string(v)
}

// Title names a piece of media. It is immutable once created.
type Title struct {
	name string
}

// NewTitle returns a Title with the given name.
func NewTitle(name string) Title {
	return Title{name: name}
}

// Name returns the title's name.
func (t Title) Name() string {
	return t.name
}

func (t Title) String() string {
	return t.name
}

// Output describes what a Play call did. It always carries the title of the
// media that produced it.
type Output struct {
	Title   Title
	Variant Variant
	State   string
}

// String renders the output as "<title>, <variant> variant, <state>".
// The zero Output renders as the empty string.
func (o Output) String() string {
	if o == (Output{}) {
		return ""
	}
	return fmt.Sprintf("%s, %s variant, %s", o.Title, o.Variant, o.State)
}

// Playable is the contract consumers call.
type Playable interface {
	Play(ctx context.Context) (Output, error)
}

// Adaptee is media with a fixed, region-specific vocabulary. Variant is a
// static marker declared by the type; resolvers dispatch on it.
type Adaptee interface {
	Title() Title
	Variant() Variant
}

// PalMedia is media that natively speaks the PAL vocabulary.
type PalMedia interface {
	Adaptee
	PlayNative(ctx context.Context) (Output, error)
}

// NtscMedia is media that natively speaks the NTSC vocabulary.
type NtscMedia interface {
	Adaptee
	RunNative(ctx context.Context) (Output, error)
}

// Resolver produces a Playable for an adaptee whose variant it knows.
type Resolver interface {
	Resolve(ctx context.Context, a Adaptee) (Playable, error)
}

// Holder is implemented by adapters. It returns the wrapped adaptee.
type Holder interface {
	Adaptee() Adaptee
}

// Shim is a Playable that wraps other Playables.
type Shim interface {
	Playable

	Children() []Playable
}

// Origin walks down adapters and single-child shims and returns the adaptee
// underneath p, if any.
func Origin(p Playable) (Adaptee, bool) {
	for p != nil {
		switch v := p.(type) {
		case Holder:
			return v.Adaptee(), true
		case Adaptee:
			return v, true
		case Shim:
			children := v.Children()
			if len(children) != 1 {
				return nil, false
			}
			p = children[0]
		default:
			return nil, false
		}
	}
	return nil, false
}

// IsNil reports whether v is nil or an interface holding a nil pointer.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
