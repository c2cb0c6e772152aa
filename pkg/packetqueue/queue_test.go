package packetqueue

import (
	"testing"
	"time"
)

func TestFIFO(t *testing.T) {
	q := New()
	for i := byte(0); i < 10; i++ {
		q.Push([]byte{i})
	}

	for i := byte(0); i < 10; i++ {
		pkt, ok := q.TryPop()
		if !ok {
			t.Fatalf("expected packet %d, got empty", i)
		}
		if pkt[0] != i {
			t.Fatalf("expected packet %d, got %d", i, pkt[0])
		}
	}
}

func TestEmptyPop(t *testing.T) {
	q := New()
	if pkt, ok := q.TryPop(); ok {
		t.Fatalf("expected empty, got %v", pkt)
	}

	q.Push([]byte{1})
	q.TryPop()
	if pkt, ok := q.TryPop(); ok {
		t.Fatalf("expected empty, got %v", pkt)
	}
}

func TestWaitWakesConsumer(t *testing.T) {
	q := New()

	done := make(chan []byte)
	go func() {
		<-q.Wait()
		pkt, _ := q.TryPop()
		done <- pkt
	}()

	q.Push([]byte{42})

	select {
	case pkt := <-done:
		if pkt[0] != 42 {
			t.Fatalf("expected 42, got %d", pkt[0])
		}
	case <-time.After(time.Second):
		t.Fatal("consumer was not woken")
	}
}

func TestConcurrentProducerConsumer(t *testing.T) {
	const n = 1000
	q := New()

	go func() {
		for i := 0; i < n; i++ {
			q.Push([]byte{byte(i), byte(i >> 8)})
		}
	}()

	deadline := time.After(5 * time.Second)
	for i := 0; i < n; {
		pkt, ok := q.TryPop()
		if !ok {
			select {
			case <-q.Wait():
			case <-deadline:
				t.Fatalf("timed out after %d packets", i)
			}
			continue
		}

		if got := int(pkt[0]) | int(pkt[1])<<8; got != i {
			t.Fatalf("expected packet %d, got %d", i, got)
		}
		i++
	}

	if q.Len() != 0 {
		t.Fatalf("expected drained queue, got %d", q.Len())
	}
}
