package safe_close

import (
	"context"
	"sync"
)

// SafeClose coordinates the shutdown of a long running command so that
// CloseWait returns only after every attached goroutine has exited.
//
//  1. The main goroutine waits on ReceiveCloseSignal and calls Done before it returns.
//  2. Workers are started by Attach and must return once closeSignal is closed.
//  3. Any worker hitting a fatal error calls SendCloseSignal with it.
//     Workers must not call CloseWait, it would deadlock.
//  4. Anyone else may call CloseWait to stop everything.
type SafeClose struct {
	m           sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	done        chan struct{}
	doneOnce    sync.Once
	closeErr    error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// CloseWait sends a close signal and blocks until Done was called and all
// attached goroutines returned. It may be called concurrently and repeatedly.
func (s *SafeClose) CloseWait() {
	s.SendCloseSignal(nil)
	s.wg.Wait()
	<-s.done
}

// SendCloseSignal closes the close signal. Only the first non-nil err is
// kept.
func (s *SafeClose) SendCloseSignal(err error) {
	s.m.Lock()
	defer s.m.Unlock()

	select {
	case <-s.closeSignal:
		return
	default:
		if err != nil {
			s.closeErr = err
		}
		close(s.closeSignal)
	}
}

// Err returns the error given to the first SendCloseSignal.
func (s *SafeClose) Err() error {
	s.m.Lock()
	defer s.m.Unlock()
	return s.closeErr
}

func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.closeSignal
}

// Context returns a context that is canceled with the close signal.
// The returned cancel func releases it early.
func (s *SafeClose) Context() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-s.closeSignal:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// Attach runs f in a new goroutine tracked by CloseWait.
// f must return after closeSignal is closed and call done when it returns.
// f is not run if s is already closed.
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.m.Lock()
	select {
	case <-s.closeSignal:
		s.m.Unlock()
		return
	default:
		s.wg.Add(1)
	}
	s.m.Unlock()

	go func() {
		f(s.wg.Done, s.closeSignal)
	}()
}

// Done notifies CloseWait that the main goroutine is done.
// It may be called concurrently and repeatedly.
func (s *SafeClose) Done() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
