package playable

import (
	"context"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/multierr"
	"golang.org/x/xerrors"
)

var consoleLog = logging.Logger("playable/console")

// Sink receives every Output a Console produces.
type Sink interface {
	Emit(Output)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Output)

func (f SinkFunc) Emit(o Output) {
	f(o)
}

type discard struct{}

func (discard) Emit(Output) {}

// Option configures a Console.
type Option func(*Console)

// WithSink sends every successful Output to s.
func WithSink(s Sink) Option {
	return func(c *Console) {
		if s != nil {
			c.sink = s
		}
	}
}

// Console plays anything Playable. It never looks at which adapter or
// adaptee sits behind the contract.
type Console struct {
	name string
	sink Sink
}

// NewConsole returns a Console. The name only labels log lines.
func NewConsole(name string, opts ...Option) *Console {
	c := &Console{name: name, sink: discard{}}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Console) Name() string {
	return c.name
}

// Play calls p.Play and returns its Output and error unchanged.
func (c *Console) Play(ctx context.Context, p Playable) (Output, error) {
	if IsNil(p) {
		return Output{}, xerrors.Errorf("console %s: nothing to play: %w", c.name, ErrInvalidAdaptee)
	}
	out, err := p.Play(ctx)
	if err != nil {
		return out, err
	}
	consoleLog.Debugf("console %s: %s", c.name, out)
	c.sink.Emit(out)
	return out, nil
}

// Insert resolves a through r and plays the result. Resolution failures
// are returned as-is. A nil r fails with ErrNoAdapterFound.
func (c *Console) Insert(ctx context.Context, r Resolver, a Adaptee) (Output, error) {
	if IsNil(r) {
		return Output{}, xerrors.Errorf("console %s: no resolver: %w", c.name, ErrNoAdapterFound)
	}
	p, err := r.Resolve(ctx, a)
	if err != nil {
		consoleLog.Warnf("console %s: %s", c.name, err)
		return Output{}, err
	}
	return c.Play(ctx, p)
}

// PlayAll plays every item in order. Outputs of successful plays are
// returned; every failure is combined into the returned error.
func (c *Console) PlayAll(ctx context.Context, ps ...Playable) ([]Output, error) {
	outs := make([]Output, 0, len(ps))
	var errs error
	for i, p := range ps {
		out, err := c.Play(ctx, p)
		if err != nil {
			errs = multierr.Append(errs, xerrors.Errorf("item %d: %w", i, err))
			continue
		}
		outs = append(outs, out)
	}
	return outs, errs
}
