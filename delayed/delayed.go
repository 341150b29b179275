// Package delayed wraps a Playable allowing to artificially
// delay every play.
package delayed

import (
	"context"

	delay "github.com/ipfs/go-ipfs-delay"
	pl "github.com/regionplay/go-playable"
)

// New returns a new delayed Playable.
func New(p pl.Playable, delay delay.D) *Delayed {
	return &Delayed{p: p, delay: delay}
}

// Delayed is an adapter that delays plays on the inner Playable.
type Delayed struct {
	p     pl.Playable
	delay delay.D
}

var _ pl.Shim = (*Delayed)(nil)

// Play implements the pl.Playable interface.
func (d *Delayed) Play(ctx context.Context) (pl.Output, error) {
	d.delay.Wait()
	return d.p.Play(ctx)
}

// Children implements pl.Shim
func (d *Delayed) Children() []pl.Playable {
	return []pl.Playable{d.p}
}
