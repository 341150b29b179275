// Package registry maps adaptee variants to the adapter factories that can
// wrap them, and resolves adaptees to Playables. A Registry is threadsafe;
// a Snapshot is an immutable copy taken once registration is done.
package registry

import (
	"context"
	"sort"
	"sync"

	logging "github.com/ipfs/go-log/v2"
	pl "github.com/regionplay/go-playable"
	"github.com/regionplay/go-playable/adapter"
	"go.uber.org/multierr"
	"golang.org/x/xerrors"
)

var log = logging.Logger("playable/registry")

// Factory builds a Playable over an adaptee of the variant it is
// registered for.
type Factory func(pl.Adaptee) (pl.Playable, error)

// Entry pairs a variant with its factory.
type Entry struct {
	Variant pl.Variant
	Factory Factory
}

// Registry holds at most one factory per variant. Registering a variant
// that is already claimed is rejected.
type Registry struct {
	mu        sync.RWMutex
	factories map[pl.Variant]Factory
}

var _ pl.Resolver = (*Registry)(nil)

func New() *Registry {
	return &Registry{factories: make(map[pl.Variant]Factory)}
}

// NewDefault returns a Registry that knows the built-in variants: NTSC media
// is wrapped in a PalAdapter, PAL media in an NtscAdapter and native media in
// an Identity adapter.
func NewDefault() *Registry {
	r := New()
	r.MustRegister(pl.VariantNTSC, adapter.PalFactory)
	r.MustRegister(pl.VariantPAL, adapter.NtscFactory)
	r.MustRegister(pl.VariantNative, adapter.IdentityFactory)
	return r
}

// Register stores f under v. A second registration for v fails with
// ErrDuplicateRegistration and leaves the first factory in place.
func (r *Registry) Register(v pl.Variant, f Factory) error {
	if v == "" {
		return xerrors.Errorf("empty variant: %w", pl.ErrInvalidRegistration)
	}
	if f == nil {
		return xerrors.Errorf("nil factory for %s: %w", v, pl.ErrInvalidRegistration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[v]; ok {
		return xerrors.Errorf("register %s: %w", v, pl.ErrDuplicateRegistration)
	}
	r.factories[v] = f
	log.Debugf("registered adapter factory for %s", v)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(v pl.Variant, f Factory) {
	if err := r.Register(v, f); err != nil {
		panic(err)
	}
}

// RegisterAll registers every entry. Entries that fail do not stop the
// rest; all failures are combined into the returned error.
func (r *Registry) RegisterAll(entries ...Entry) error {
	var errs error
	for _, e := range entries {
		errs = multierr.Append(errs, r.Register(e.Variant, e.Factory))
	}
	return errs
}

// Lookup returns the factory registered for v.
func (r *Registry) Lookup(v pl.Variant) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[v]
	return f, ok
}

// Variants returns the registered variants, sorted.
func (r *Registry) Variants() []pl.Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedVariants(r.factories)
}

// Resolve builds a fresh Playable for a. It fails with ErrNoAdapterFound
// when a's variant has no factory. a is never modified.
func (r *Registry) Resolve(ctx context.Context, a pl.Adaptee) (pl.Playable, error) {
	if pl.IsNil(a) {
		return nil, xerrors.Errorf("resolve: %w", pl.ErrInvalidAdaptee)
	}
	v := a.Variant()
	f, ok := r.Lookup(v)
	return resolve(f, ok, v, a)
}

// Snapshot copies the current registrations into an immutable resolver.
// Later registrations on r are not visible through it.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := make(map[pl.Variant]Factory, len(r.factories))
	for v, f := range r.factories {
		m[v] = f
	}
	return &Snapshot{factories: m}
}

// Snapshot is a read-only Registry. It needs no locking.
type Snapshot struct {
	factories map[pl.Variant]Factory
}

var _ pl.Resolver = (*Snapshot)(nil)

func (s *Snapshot) Lookup(v pl.Variant) (Factory, bool) {
	f, ok := s.factories[v]
	return f, ok
}

func (s *Snapshot) Variants() []pl.Variant {
	return sortedVariants(s.factories)
}

// Resolve behaves like Registry.Resolve.
func (s *Snapshot) Resolve(ctx context.Context, a pl.Adaptee) (pl.Playable, error) {
	if pl.IsNil(a) {
		return nil, xerrors.Errorf("resolve: %w", pl.ErrInvalidAdaptee)
	}
	v := a.Variant()
	f, ok := s.Lookup(v)
	return resolve(f, ok, v, a)
}

// resolve is handed the variant its caller already read from a.
func resolve(f Factory, ok bool, v pl.Variant, a pl.Adaptee) (pl.Playable, error) {
	if !ok {
		log.Warnf("no adapter for %q (%s)", a.Title(), v)
		return nil, xerrors.Errorf("resolve %s: %w", v, pl.ErrNoAdapterFound)
	}

	p, err := f(a)
	if err != nil {
		return nil, xerrors.Errorf("resolve %s: %w", v, err)
	}
	if pl.IsNil(p) {
		return nil, xerrors.Errorf("factory for %s returned no adapter: %w", v, pl.ErrInvalidRegistration)
	}
	if id, ok := adapter.IDOf(p); ok {
		log.Debugf("resolved %q (%s) to %T %s", a.Title(), v, p, id)
	} else {
		log.Debugf("resolved %q (%s) to %T", a.Title(), v, p)
	}
	return p, nil
}

func sortedVariants(m map[pl.Variant]Factory) []pl.Variant {
	vs := make([]pl.Variant, 0, len(m))
	for v := range m {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return vs
}
