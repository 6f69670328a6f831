package commands

import (
	"testing"
	"time"
)

func TestSpinnerStopOnceIsIdempotent(t *testing.T) {
	s := newSpinner("working")
	s.start()
	time.Sleep(10 * time.Millisecond)

	s.stopOnce()
	s.stopOnce() // must not panic on double stop
	<-s.done
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("working")
	s.start()
	s.stopWithError()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner goroutine did not exit")
	}
}
