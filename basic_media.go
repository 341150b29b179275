package playable

import (
	"context"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("playable")

// Here are some basic media implementations.

// PalCartridge is PAL-region media. It only knows how to PlayNative.
type PalCartridge struct {
	title Title
}

var _ PalMedia = (*PalCartridge)(nil)

func NewPalCartridge(t Title) *PalCartridge {
	return &PalCartridge{title: t}
}

func (c *PalCartridge) Title() Title {
	return c.title
}

func (c *PalCartridge) Variant() Variant {
	return VariantPAL
}

func (c *PalCartridge) PlayNative(ctx context.Context) (Output, error) {
	return Output{Title: c.title, Variant: VariantPAL, State: StateRunning}, nil
}

// NtscCartridge is NTSC-region media. It only knows how to RunNative.
type NtscCartridge struct {
	title Title
}

var _ NtscMedia = (*NtscCartridge)(nil)

func NewNtscCartridge(t Title) *NtscCartridge {
	return &NtscCartridge{title: t}
}

func (c *NtscCartridge) Title() Title {
	return c.title
}

func (c *NtscCartridge) Variant() Variant {
	return VariantNTSC
}

func (c *NtscCartridge) RunNative(ctx context.Context) (Output, error) {
	return Output{Title: c.title, Variant: VariantNTSC, State: StateRunning}, nil
}

// NativeMedia already satisfies Playable. It still declares a variant so a
// resolver can hand it to an identity adapter.
type NativeMedia struct {
	title Title
}

var (
	_ Playable = (*NativeMedia)(nil)
	_ Adaptee  = (*NativeMedia)(nil)
)

func NewNativeMedia(t Title) *NativeMedia {
	return &NativeMedia{title: t}
}

func (m *NativeMedia) Title() Title {
	return m.title
}

func (m *NativeMedia) Variant() Variant {
	return VariantNative
}

func (m *NativeMedia) Play(ctx context.Context) (Output, error) {
	return Output{Title: m.title, Variant: VariantNative, State: StateRunning}, nil
}

// NullMedia plays nothing, but conforms to the API.
// Useful to test with.
type NullMedia struct {
}

var _ Playable = (*NullMedia)(nil)

func NewNullMedia() *NullMedia {
	return &NullMedia{}
}

func (m *NullMedia) Play(ctx context.Context) (Output, error) {
	return Output{}, nil
}

// LogPlayable logs all plays through the wrapped Playable.
type LogPlayable struct {
	Name  string
	child Playable
}

var _ Shim = (*LogPlayable)(nil)

// NewLogPlayable wraps p. name prefixes every log line.
func NewLogPlayable(p Playable, name string) *LogPlayable {
	if len(name) == 0 {
		name = "LogPlayable"
	}
	return &LogPlayable{Name: name, child: p}
}

// Children implements Shim
func (p *LogPlayable) Children() []Playable {
	return []Playable{p.child}
}

// Play implements Playable
func (p *LogPlayable) Play(ctx context.Context) (Output, error) {
	log.Infof("%s: Play", p.Name)
	out, err := p.child.Play(ctx)
	if err != nil {
		log.Infof("%s: Play failed: %s", p.Name, err)
		return out, err
	}
	log.Infof("%s: %s", p.Name, out)
	return out, nil
}
