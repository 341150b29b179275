package registry_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	pl "github.com/regionplay/go-playable"
	"github.com/regionplay/go-playable/adapter"
	"github.com/regionplay/go-playable/registry"
	ptest "github.com/regionplay/go-playable/test"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// rareMedia declares a variant nobody registers.
type rareMedia struct {
	title pl.Title
}

func (m *rareMedia) Title() pl.Title     { return m.title }
func (m *rareMedia) Variant() pl.Variant { return "SuperRareFormat" }

// countingMedia is NTSC media that counts how often its variant is asked
// for.
type countingMedia struct {
	*pl.NtscCartridge
	reads int
}

func (m *countingMedia) Variant() pl.Variant {
	m.reads++
	return pl.VariantNTSC
}

func TestResolveReadsVariantOnce(t *testing.T) {
	ctx := context.Background()
	r := registry.NewDefault()

	for name, res := range map[string]pl.Resolver{"Registry": r, "Snapshot": r.Snapshot()} {
		t.Run(name, func(t *testing.T) {
			m := &countingMedia{NtscCartridge: pl.NewNtscCartridge(pl.NewTitle("Final Fantasy"))}
			p, err := res.Resolve(ctx, m)
			require.NoError(t, err)
			require.IsType(t, &adapter.PalAdapter{}, p)
			require.Equal(t, 1, m.reads)
		})
	}
}

// countingRare counts variant reads on a resolution that finds no factory.
type countingRare struct {
	rareMedia
	reads int
}

func (m *countingRare) Variant() pl.Variant {
	m.reads++
	return m.rareMedia.Variant()
}

func TestUnresolvedReadsVariantOnce(t *testing.T) {
	m := &countingRare{rareMedia: rareMedia{title: pl.NewTitle("Obscure")}}
	_, err := registry.NewDefault().Resolve(context.Background(), m)
	require.ErrorIs(t, err, pl.ErrNoAdapterFound)
	require.Equal(t, 1, m.reads)
}

func TestResolveFinalFantasy(t *testing.T) {
	ctx := context.Background()

	r := registry.New()
	require.NoError(t, r.Register(pl.VariantNTSC, adapter.PalFactory))

	m := pl.NewNtscCartridge(pl.NewTitle("Final Fantasy"))
	p, err := r.Resolve(ctx, m)
	require.NoError(t, err)
	require.IsType(t, &adapter.PalAdapter{}, p)

	out, err := p.Play(ctx)
	require.NoError(t, err)
	require.Equal(t, "Final Fantasy, NTSC variant, running", out.String())

	direct, err := m.RunNative(ctx)
	require.NoError(t, err)
	require.Equal(t, direct, out)
}

func TestResolveUnregistered(t *testing.T) {
	r := registry.NewDefault()

	p, err := r.Resolve(context.Background(), &rareMedia{title: pl.NewTitle("Obscure")})
	require.ErrorIs(t, err, pl.ErrNoAdapterFound)
	require.Nil(t, p)

	p, err = r.Snapshot().Resolve(context.Background(), &rareMedia{title: pl.NewTitle("Obscure")})
	require.ErrorIs(t, err, pl.ErrNoAdapterFound)
	require.Nil(t, p)
}

func TestResolveNil(t *testing.T) {
	r := registry.NewDefault()
	var nilCart *pl.NtscCartridge

	_, err := r.Resolve(context.Background(), nil)
	require.ErrorIs(t, err, pl.ErrInvalidAdaptee)
	_, err = r.Resolve(context.Background(), nilCart)
	require.ErrorIs(t, err, pl.ErrInvalidAdaptee)
	_, err = r.Snapshot().Resolve(context.Background(), nil)
	require.ErrorIs(t, err, pl.ErrInvalidAdaptee)
}

func TestResolveFactoryMismatch(t *testing.T) {
	r := registry.New()
	// PAL media handed to a factory that only understands NTSC.
	require.NoError(t, r.Register(pl.VariantPAL, adapter.PalFactory))

	_, err := r.Resolve(context.Background(), pl.NewPalCartridge(pl.NewTitle("Gran Turismo")))
	require.ErrorIs(t, err, pl.ErrInvalidAdaptee)
}

func TestResolveFactoryReturnsNothing(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register(pl.VariantNTSC, func(pl.Adaptee) (pl.Playable, error) {
		return nil, nil
	}))

	_, err := r.Resolve(context.Background(), pl.NewNtscCartridge(pl.NewTitle("x")))
	require.ErrorIs(t, err, pl.ErrInvalidRegistration)
}

func TestDuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	r := registry.New()

	require.NoError(t, r.Register(pl.VariantNTSC, adapter.PalFactory))

	called := false
	err := r.Register(pl.VariantNTSC, func(a pl.Adaptee) (pl.Playable, error) {
		called = true
		return pl.NewNullMedia(), nil
	})
	require.ErrorIs(t, err, pl.ErrDuplicateRegistration)

	p, err := r.Resolve(ctx, pl.NewNtscCartridge(pl.NewTitle("Final Fantasy")))
	require.NoError(t, err)
	require.IsType(t, &adapter.PalAdapter{}, p)
	require.False(t, called)

	require.Panics(t, func() { r.MustRegister(pl.VariantNTSC, adapter.PalFactory) })
}

func TestInvalidRegistration(t *testing.T) {
	r := registry.New()
	require.ErrorIs(t, r.Register("", adapter.PalFactory), pl.ErrInvalidRegistration)
	require.ErrorIs(t, r.Register(pl.VariantNTSC, nil), pl.ErrInvalidRegistration)
	require.Empty(t, r.Variants())
}

func TestRegisterAll(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register(pl.VariantNTSC, adapter.PalFactory))

	err := r.RegisterAll(
		registry.Entry{Variant: pl.VariantNTSC, Factory: adapter.PalFactory},
		registry.Entry{Variant: pl.VariantPAL, Factory: adapter.NtscFactory},
		registry.Entry{Variant: "", Factory: adapter.IdentityFactory},
		registry.Entry{Variant: pl.VariantNative, Factory: adapter.IdentityFactory},
	)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	require.ErrorIs(t, errs[0], pl.ErrDuplicateRegistration)
	require.ErrorIs(t, errs[1], pl.ErrInvalidRegistration)

	require.Equal(t, []pl.Variant{pl.VariantNTSC, pl.VariantNative, pl.VariantPAL}, r.Variants())
}

func TestLookup(t *testing.T) {
	r := registry.NewDefault()

	f, ok := r.Lookup(pl.VariantNTSC)
	require.True(t, ok)
	require.NotNil(t, f)

	_, ok = r.Lookup("SuperRareFormat")
	require.False(t, ok)
}

func TestResolveTwice(t *testing.T) {
	ctx := context.Background()
	r := registry.NewDefault()
	m := pl.NewNtscCartridge(pl.NewTitle("Final Fantasy"))

	p1, err := r.Resolve(ctx, m)
	require.NoError(t, err)
	p2, err := r.Resolve(ctx, m)
	require.NoError(t, err)
	require.NotSame(t, p1, p2)

	want := pl.Output{Title: m.Title(), Variant: pl.VariantNTSC, State: pl.StateRunning}
	ptest.SubtestAll(t, p1, want)
	ptest.SubtestAll(t, p2, want)

	// the adaptee is left untouched
	a, ok := pl.Origin(p1)
	require.True(t, ok)
	require.Same(t, m, a)
}

func TestSameVariantDifferentTitles(t *testing.T) {
	ctx := context.Background()
	r := registry.NewDefault()

	p1, err := r.Resolve(ctx, pl.NewNtscCartridge(pl.NewTitle("Final Fantasy")))
	require.NoError(t, err)
	p2, err := r.Resolve(ctx, pl.NewNtscCartridge(pl.NewTitle("Chrono Trigger")))
	require.NoError(t, err)

	o1, err := p1.Play(ctx)
	require.NoError(t, err)
	o2, err := p2.Play(ctx)
	require.NoError(t, err)

	require.NotEqual(t, o1.Title, o2.Title)
	o2.Title = o1.Title
	require.Equal(t, o1, o2)
}

func TestBehavioralEquivalence(t *testing.T) {
	ctx := context.Background()
	r := registry.NewDefault()

	for i := 0; i < 10; i++ {
		title := pl.NewTitle(fmt.Sprintf("title-%d", i))

		ntsc := pl.NewNtscCartridge(title)
		p, err := r.Resolve(ctx, ntsc)
		require.NoError(t, err)
		got, err := p.Play(ctx)
		require.NoError(t, err)
		direct, err := ntsc.RunNative(ctx)
		require.NoError(t, err)
		require.Equal(t, direct, got)

		pal := pl.NewPalCartridge(title)
		p, err = r.Resolve(ctx, pal)
		require.NoError(t, err)
		got, err = p.Play(ctx)
		require.NoError(t, err)
		direct, err = pal.PlayNative(ctx)
		require.NoError(t, err)
		require.Equal(t, direct, got)

		native := pl.NewNativeMedia(title)
		p, err = r.Resolve(ctx, native)
		require.NoError(t, err)
		got, err = p.Play(ctx)
		require.NoError(t, err)
		direct, err = native.Play(ctx)
		require.NoError(t, err)
		require.Equal(t, direct, got)
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	ctx := context.Background()
	r := registry.New()
	require.NoError(t, r.Register(pl.VariantNTSC, adapter.PalFactory))

	s := r.Snapshot()
	require.NoError(t, r.Register(pl.VariantPAL, adapter.NtscFactory))

	require.Equal(t, []pl.Variant{pl.VariantNTSC}, s.Variants())
	_, ok := s.Lookup(pl.VariantPAL)
	require.False(t, ok)

	_, err := s.Resolve(ctx, pl.NewPalCartridge(pl.NewTitle("Gran Turismo")))
	require.ErrorIs(t, err, pl.ErrNoAdapterFound)
	_, err = r.Resolve(ctx, pl.NewPalCartridge(pl.NewTitle("Gran Turismo")))
	require.NoError(t, err)
}

func TestConcurrentRegisterResolve(t *testing.T) {
	ctx := context.Background()
	r := registry.NewDefault()
	m := pl.NewNtscCartridge(pl.NewTitle("Final Fantasy"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = r.Register(pl.Variant(fmt.Sprintf("V%d", i)), adapter.IdentityFactory)
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p, err := r.Resolve(ctx, m)
				if err != nil {
					t.Error(err)
					return
				}
				if _, err := p.Play(ctx); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	require.Len(t, r.Variants(), 3+8)
}
