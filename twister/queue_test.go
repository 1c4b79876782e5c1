package twister

import "testing"

func TestQueueFIFO(t *testing.T) {
	q := newInboundQueue(8)

	for i := byte(0); i < 5; i++ {
		if !q.Push(CCMessage{Status: 0xb0, Controller: i}) {
			t.Fatalf("push %d refused", i)
		}
	}

	for i := byte(0); i < 5; i++ {
		m, ok := q.TryPop()
		if !ok || m.Controller != i {
			t.Fatalf("pop %d: got %+v ok=%v", i, m, ok)
		}
	}

	if _, ok := q.TryPop(); ok {
		t.Fatal("pop from empty queue succeeded")
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := newInboundQueue(2)

	q.Push(CCMessage{Controller: 0})
	q.Push(CCMessage{Controller: 1})
	if q.Push(CCMessage{Controller: 2}) {
		t.Fatal("push into full queue accepted")
	}

	// The oldest frames survive; the overflow frame is gone.
	m, _ := q.TryPop()
	if m.Controller != 0 {
		t.Fatalf("first pop %+v", m)
	}
	m, _ = q.TryPop()
	if m.Controller != 1 {
		t.Fatalf("second pop %+v", m)
	}
}
