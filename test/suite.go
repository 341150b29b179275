package ptest

import (
	"reflect"
	"runtime"
	"testing"

	detectrace "github.com/ipfs/go-detect-race"
	pl "github.com/regionplay/go-playable"
)

// BasicSubtests is a list of all basic tests.
var BasicSubtests = []func(t *testing.T, p pl.Playable, want pl.Output){
	SubtestPlay,
	SubtestIdempotent,
	SubtestOrigin,
	SubtestConcurrentPlay,
}

// Play with fewer goroutines under the race detector so the suite doesn't
// take forever.
func init() {
	if detectrace.WithRace() {
		Players = 4
	}
}

func getFunctionName(i interface{}) string {
	return runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
}

// SubtestAll tests the given Playable against all the subtests. want is
// the Output p must produce on every Play.
func SubtestAll(t *testing.T, p pl.Playable, want pl.Output) {
	for _, f := range BasicSubtests {
		t.Run(getFunctionName(f), func(t *testing.T) {
			f(t, p, want)
		})
	}
}
