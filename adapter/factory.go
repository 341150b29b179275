package adapter

import (
	pl "github.com/regionplay/go-playable"
	"golang.org/x/xerrors"
)

// The factories below have the shape registry.Factory expects. Each one
// asserts the adaptee onto the vocabulary its adapter translates from and
// fails with ErrInvalidAdaptee when the adaptee does not speak it.

// PalFactory wraps NTSC media in a PalAdapter.
func PalFactory(a pl.Adaptee) (pl.Playable, error) {
	m, ok := a.(pl.NtscMedia)
	if !ok || pl.IsNil(m) {
		return nil, xerrors.Errorf("pal adapter needs NTSC media, got %T: %w", a, pl.ErrInvalidAdaptee)
	}
	p, err := NewPalAdapter(m)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NtscFactory wraps PAL media in an NtscAdapter.
func NtscFactory(a pl.Adaptee) (pl.Playable, error) {
	m, ok := a.(pl.PalMedia)
	if !ok || pl.IsNil(m) {
		return nil, xerrors.Errorf("ntsc adapter needs PAL media, got %T: %w", a, pl.ErrInvalidAdaptee)
	}
	p, err := NewNtscAdapter(m)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// IdentityFactory wraps media that is already Playable.
func IdentityFactory(a pl.Adaptee) (pl.Playable, error) {
	m, ok := a.(pl.Playable)
	if !ok || pl.IsNil(m) {
		return nil, xerrors.Errorf("identity adapter needs playable media, got %T: %w", a, pl.ErrInvalidAdaptee)
	}
	p, err := NewIdentity(m)
	if err != nil {
		return nil, err
	}
	return p, nil
}
