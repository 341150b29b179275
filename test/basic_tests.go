package ptest

import (
	"context"
	"errors"
	"sync"
	"testing"

	pl "github.com/regionplay/go-playable"
)

// ErrTest is a generic error for shims to fail with.
var ErrTest = errors.New("test error")

// Players sets how many goroutines SubtestConcurrentPlay plays with.
var Players = 32

// Plays sets how many times each player plays.
var Plays = 20

func SubtestPlay(t *testing.T, p pl.Playable, want pl.Output) {
	out, err := p.Play(context.Background())
	if err != nil {
		t.Fatal("error playing: ", err)
	}
	if out != want {
		t.Fatalf("wrong output: %q != %q", out, want)
	}
	if out.Title != want.Title {
		t.Fatalf("output lost its title: %q != %q", out.Title, want.Title)
	}
}

func SubtestIdempotent(t *testing.T, p pl.Playable, want pl.Output) {
	ctx := context.Background()

	first, err := p.Play(ctx)
	if err != nil {
		t.Fatal("error playing: ", err)
	}
	for i := 0; i < Plays; i++ {
		out, err := p.Play(ctx)
		if err != nil {
			t.Fatalf("error on play %d: %s", i, err)
		}
		if out != first {
			t.Fatalf("play %d differs: %q != %q", i, out, first)
		}
	}
}

// SubtestOrigin checks that, when p wraps an adaptee, the adaptee's title
// matches the output.
func SubtestOrigin(t *testing.T, p pl.Playable, want pl.Output) {
	a, ok := pl.Origin(p)
	if !ok {
		t.Skip("playable does not wrap an adaptee")
	}
	if a.Title() != want.Title {
		t.Fatalf("origin title %q != %q", a.Title(), want.Title)
	}
}

func SubtestConcurrentPlay(t *testing.T, p pl.Playable, want pl.Output) {
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, Players)
	for i := 0; i < Players; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < Plays; j++ {
				out, err := p.Play(ctx)
				if err != nil {
					errs <- err
					return
				}
				if out != want {
					errs <- errors.New("wrong output: " + out.String())
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
