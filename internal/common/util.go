package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ChunksN splits items into at most n contiguous chunks with sizes as even
// as possible. The first (len(items) % n) chunks get one extra element.
// Empty chunks are not returned, so fewer than n chunks come back when
// there are fewer than n items.
func ChunksN[T any](items []T, n int) [][]T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}

	out := make([][]T, 0, n)
	base := len(items) / n
	rem := len(items) % n

	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		out = append(out, items[start:start+size])
		start += size
	}
	return out
}

// WaitSignal returns a context that is cancelled on SIGINT or SIGTERM.
func WaitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalChan
		cancel()
	}()
	return ctx
}
