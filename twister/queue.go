package twister

import "github.com/sirupsen/logrus"

// inboundQueue hands decoded frames from the driver's receive
// goroutine to Update. It is safe for one producer and one consumer;
// neither side ever blocks. Encoder state stays single-threaded
// because the receive side only ever touches the queue.
type inboundQueue struct {
	ch chan CCMessage
}

func newInboundQueue(depth int) *inboundQueue {
	return &inboundQueue{ch: make(chan CCMessage, depth)}
}

// Push enqueues a frame, dropping it when the consumer has fallen
// ReadBufferDepth frames behind. At MIDI rates a full queue means
// nobody is calling Update.
func (q *inboundQueue) Push(m CCMessage) bool {
	select {
	case q.ch <- m:
		return true
	default:
		logrus.Debugf("twister: inbound queue full, dropping frame % X", []byte{m.Status, m.Controller, m.Value})
		return false
	}
}

// TryPop dequeues the oldest frame, if any.
func (q *inboundQueue) TryPop() (CCMessage, bool) {
	select {
	case m := <-q.ch:
		return m, true
	default:
		return CCMessage{}, false
	}
}
