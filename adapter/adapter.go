// Package adapter provides Playable implementations over media whose native
// vocabulary differs from the Playable contract.
//
// Adapters translate names only. Play delegates synchronously to the wrapped
// media and returns its Output and error unchanged, so an adapted Play is
// indistinguishable from calling the native operation directly.
//
// Adapters hold a non-owning reference to their media and are valid for as
// long as the media is.
package adapter

import (
	"context"

	"github.com/google/uuid"
	pl "github.com/regionplay/go-playable"
	"golang.org/x/xerrors"
)

// PalAdapter lets NTSC media be played through the Playable contract a
// PAL-region console expects.
type PalAdapter struct {
	media pl.NtscMedia
	id    uuid.UUID
}

var (
	_ pl.Playable = (*PalAdapter)(nil)
	_ pl.Holder   = (*PalAdapter)(nil)
)

// NewPalAdapter wraps m. It fails with ErrInvalidAdaptee if m is nil.
func NewPalAdapter(m pl.NtscMedia) (*PalAdapter, error) {
	if pl.IsNil(m) {
		return nil, xerrors.Errorf("pal adapter: %w", pl.ErrInvalidAdaptee)
	}
	return &PalAdapter{media: m, id: uuid.New()}, nil
}

// Play runs the wrapped media.
func (a *PalAdapter) Play(ctx context.Context) (pl.Output, error) {
	return a.media.RunNative(ctx)
}

// Adaptee implements pl.Holder
func (a *PalAdapter) Adaptee() pl.Adaptee {
	return a.media
}

// ID identifies this adapter instance in logs and traces.
func (a *PalAdapter) ID() uuid.UUID {
	return a.id
}

// NtscAdapter lets PAL media be played through the Playable contract an
// NTSC-region console expects.
type NtscAdapter struct {
	media pl.PalMedia
	id    uuid.UUID
}

var (
	_ pl.Playable = (*NtscAdapter)(nil)
	_ pl.Holder   = (*NtscAdapter)(nil)
)

// NewNtscAdapter wraps m. It fails with ErrInvalidAdaptee if m is nil.
func NewNtscAdapter(m pl.PalMedia) (*NtscAdapter, error) {
	if pl.IsNil(m) {
		return nil, xerrors.Errorf("ntsc adapter: %w", pl.ErrInvalidAdaptee)
	}
	return &NtscAdapter{media: m, id: uuid.New()}, nil
}

// Play plays the wrapped media.
func (a *NtscAdapter) Play(ctx context.Context) (pl.Output, error) {
	return a.media.PlayNative(ctx)
}

// Adaptee implements pl.Holder
func (a *NtscAdapter) Adaptee() pl.Adaptee {
	return a.media
}

// ID identifies this adapter instance in logs and traces.
func (a *NtscAdapter) ID() uuid.UUID {
	return a.id
}

// Identity adapts media that is already Playable. It exists so that such
// media can be registered like any other variant.
type Identity struct {
	child pl.Playable
	id    uuid.UUID
}

var _ pl.Shim = (*Identity)(nil)

// NewIdentity wraps p. It fails with ErrInvalidAdaptee if p is nil.
func NewIdentity(p pl.Playable) (*Identity, error) {
	if pl.IsNil(p) {
		return nil, xerrors.Errorf("identity adapter: %w", pl.ErrInvalidAdaptee)
	}
	return &Identity{child: p, id: uuid.New()}, nil
}

func (a *Identity) Play(ctx context.Context) (pl.Output, error) {
	return a.child.Play(ctx)
}

// Children implements pl.Shim
func (a *Identity) Children() []pl.Playable {
	return []pl.Playable{a.child}
}

func (a *Identity) ID() uuid.UUID {
	return a.id
}

// Func adapts an ordinary function to Playable.
type Func func(ctx context.Context) (pl.Output, error)

var _ pl.Playable = Func(nil)

func (f Func) Play(ctx context.Context) (pl.Output, error) {
	return f(ctx)
}

// Identified is implemented by adapters that carry an instance ID.
type Identified interface {
	ID() uuid.UUID
}

// IDOf returns the ID of the first adapter found walking down p through
// single-child shims.
func IDOf(p pl.Playable) (uuid.UUID, bool) {
	for !pl.IsNil(p) {
		if v, ok := p.(Identified); ok {
			return v.ID(), true
		}
		s, ok := p.(pl.Shim)
		if !ok {
			return uuid.Nil, false
		}
		children := s.Children()
		if len(children) != 1 {
			return uuid.Nil, false
		}
		p = children[0]
	}
	return uuid.Nil, false
}
