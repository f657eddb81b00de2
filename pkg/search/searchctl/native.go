package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/tomgun/saktris/pkg/search"
)

// Native dispatches the search onto a worker goroutine (spec.md §4.9's
// "native (threaded)" variant): it runs the synchronous search to
// completion or abort on an immutable snapshot and reports the result once.
// The main loop never blocks on the worker directly — it polls the Progress
// channel, and a watchdog goroutine aborts the wait after NativeWatchdog.
// Cancellation follows the same iox.AsyncCloser/contextx.WithQuitCancel
// idiom as the teacher's iterative-deepening launcher.
type Native struct{}

func (Native) Launch(ctx context.Context, searcher search.Searcher, req Request) (Handle, <-chan Progress) {
	h := &nativeHandle{quit: iox.NewAsyncCloser()}
	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())

	progress := make(chan Progress, 1)
	done := make(chan search.Result, 1)

	go func() {
		done <- searcher.FindBestMove(wctx, req.Board, req.Side, req.Depth, req.Current, req.HasCurrent)
	}()

	go func() {
		defer cancel()
		defer close(progress)
		watchdog := time.NewTimer(NativeWatchdog)
		defer watchdog.Stop()

		select {
		case res := <-done:
			progress <- Progress{Fraction: 1, Done: true, Result: res}
		case <-watchdog.C:
			h.quit.Close() // watchdog expiry: treat as abort, ignore late result
			progress <- Progress{Fraction: 1, Done: true, Result: search.Result{Aborted: true}}
		case <-wctx.Done():
			progress <- Progress{Fraction: 1, Done: true, Result: search.Result{Aborted: true}}
		}
	}()

	return h, progress
}

type nativeHandle struct {
	quit iox.AsyncCloser
	once sync.Once
}

func (h *nativeHandle) Halt() {
	h.once.Do(h.quit.Close)
}

// Advance is a no-op: a native search never yields mid-flight.
func (h *nativeHandle) Advance() {}
