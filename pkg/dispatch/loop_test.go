package dispatch

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoop_RunsTasksInPostOrder(t *testing.T) {
	l := NewLoop(discardLogger())
	defer l.Close()

	var got []int
	for i := range 100 {
		l.Post(func() { got = append(got, i) })
	}
	l.Flush()

	want := make([]int, 100)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
}

func TestLoop_PostFromTaskDoesNotBlock(t *testing.T) {
	l := NewLoop(discardLogger())
	defer l.Close()

	var got []string
	l.Post(func() {
		got = append(got, "outer")
		l.Post(func() { got = append(got, "inner") })
	})
	l.Flush()
	l.Flush()

	assert.Equal(t, []string{"outer", "inner"}, got)
}

func TestLoop_ConcurrentPostersAreSerialized(t *testing.T) {
	l := NewLoop(discardLogger())
	defer l.Close()

	counter := 0
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				l.Post(func() { counter++ })
			}
		}()
	}
	wg.Wait()
	l.Flush()

	assert.Equal(t, 1000, counter)
}

func TestLoop_RecoversFromPanics(t *testing.T) {
	l := NewLoop(discardLogger())
	defer l.Close()

	ran := false
	l.Post(func() { panic("boom") })
	l.Post(func() { ran = true })
	l.Flush()

	assert.True(t, ran)
}

func TestLoop_CloseDrainsThenRejects(t *testing.T) {
	l := NewLoop(discardLogger())

	ran := false
	l.Post(func() { ran = true })
	l.Close()

	assert.True(t, ran)
	assert.False(t, l.Post(func() {}))
	l.Flush()
	l.Close()
}
