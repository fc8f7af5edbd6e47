package atmosphere

import (
	"sync"
	"testing"
)

func TestSlot_EmptyUntilFirstPublish(t *testing.T) {
	var s Slot
	if _, _, ok := s.Latest(); ok {
		t.Error("Latest on empty slot reported ok")
	}
}

func TestSlot_LatestReturnsPublished(t *testing.T) {
	var s Slot
	want := DefaultState()
	s.Publish(want)

	got, seq, ok := s.Latest()
	if !ok {
		t.Fatal("Latest not ok after Publish")
	}
	if seq == 0 {
		t.Error("sequence number not advanced from zero")
	}
	if got != want {
		t.Errorf("Latest = %+v, want %+v", got, want)
	}
}

func TestSlot_PublishOverwritesAndBumpsSeq(t *testing.T) {
	var s Slot
	first := DefaultState()
	s.Publish(first)
	_, seq1, _ := s.Latest()

	second := first
	second.TemperatureC = -3
	s.Publish(second)

	got, seq2, ok := s.Latest()
	if !ok {
		t.Fatal("Latest not ok")
	}
	if seq2 <= seq1 {
		t.Errorf("seq did not advance: %d then %d", seq1, seq2)
	}
	if got.TemperatureC != -3 {
		t.Errorf("slot kept stale snapshot: %+v", got)
	}
}

func TestSlot_RepeatedLatestSameSeq(t *testing.T) {
	var s Slot
	s.Publish(DefaultState())
	_, a, _ := s.Latest()
	_, b, _ := s.Latest()
	if a != b {
		t.Errorf("Latest changed seq without a publish: %d vs %d", a, b)
	}
}

func TestSlot_ConcurrentPublishAndRead(t *testing.T) {
	var s Slot
	s.Publish(DefaultState())

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		state := DefaultState()
		for i := 0; i < 1000; i++ {
			state.TemperatureC = float64(i)
			s.Publish(state)
		}
		close(stop)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		var lastSeq uint64
		for {
			select {
			case <-stop:
				return
			default:
			}
			state, seq, ok := s.Latest()
			if !ok {
				t.Error("slot lost its snapshot")
				return
			}
			if seq < lastSeq {
				t.Errorf("sequence went backwards: %d after %d", seq, lastSeq)
				return
			}
			lastSeq = seq
			// A consistent pair: the temperature always matches some
			// published value.
			if state.TemperatureC < 0 || state.TemperatureC >= 1000 {
				if state != DefaultState() {
					t.Errorf("torn snapshot: %+v", state)
					return
				}
			}
		}
	}()

	wg.Wait()
}
