// Package failplay implements a Playable and a Resolver which can produce
// custom failures on operations by calling a user-provided error function.
package failplay

import (
	"context"

	pl "github.com/regionplay/go-playable"
)

// Failplay is a Playable which fails according to a user-provided
// function.
type Failplay struct {
	child   pl.Playable
	errfunc func(string) error
}

var _ pl.Shim = (*Failplay)(nil)

// NewFailplay creates a new Playable with the given error function.
// The efunc is called with "play" before every Play. A nil efunc never
// fails.
func NewFailplay(c pl.Playable, efunc func(string) error) *Failplay {
	return &Failplay{
		child:   c,
		errfunc: orNever(efunc),
	}
}

func never(string) error { return nil }

func orNever(efunc func(string) error) func(string) error {
	if efunc == nil {
		return never
	}
	return efunc
}

// Play plays the child unless the error function fails.
func (f *Failplay) Play(ctx context.Context) (pl.Output, error) {
	if err := f.errfunc("play"); err != nil {
		return pl.Output{}, err
	}

	return f.child.Play(ctx)
}

// Children implements pl.Shim
func (f *Failplay) Children() []pl.Playable {
	return []pl.Playable{f.child}
}

// FailResolver is a Resolver which fails according to a user-provided
// function.
type FailResolver struct {
	child   pl.Resolver
	errfunc func(string) error
}

var _ pl.Resolver = (*FailResolver)(nil)

// NewFailResolver creates a new Resolver with the given error function.
// The efunc is called with "resolve" before every Resolve, and with
// "play" before every Play of a resolved Playable. A nil efunc never fails.
func NewFailResolver(r pl.Resolver, efunc func(string) error) *FailResolver {
	return &FailResolver{
		child:   r,
		errfunc: orNever(efunc),
	}
}

// Resolve resolves through the child unless the error function fails.
func (f *FailResolver) Resolve(ctx context.Context, a pl.Adaptee) (pl.Playable, error) {
	if err := f.errfunc("resolve"); err != nil {
		return nil, err
	}

	p, err := f.child.Resolve(ctx, a)
	if err != nil {
		return nil, err
	}
	return NewFailplay(p, f.errfunc), nil
}
