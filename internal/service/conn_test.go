package service

import (
	"sync/atomic"
	"time"
)

// overlapConn records whether WriteJSON was ever entered by two goroutines at
// once, the way a websocket with a single-writer rule would fail.
type overlapConn struct {
	active  int32
	overlap int32
	count   int32
}

func (c *overlapConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.active, 1) > 1 {
		atomic.StoreInt32(&c.overlap, 1)
	}
	time.Sleep(10 * time.Microsecond)
	atomic.AddInt32(&c.count, 1)
	atomic.AddInt32(&c.active, -1)
	return nil
}

func (c *overlapConn) Close() error { return nil }

func (c *overlapConn) overlapped() bool { return atomic.LoadInt32(&c.overlap) == 1 }

func (c *overlapConn) writes() int { return int(atomic.LoadInt32(&c.count)) }
