// Package source gathers the candidate lines for a session: the history log
// and the piped input, read concurrently and merged in a fixed order.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NeverVane/pickline/internal/history"
	"github.com/NeverVane/pickline/internal/logger"
	"github.com/NeverVane/pickline/internal/menu"
)

const maxLineLen = 1 << 20

// ReadLines reads r to EOF, one candidate per line. Trailing "\r" is
// stripped along with the newline. It stops early when ctx is cancelled.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

// Load reads input and the history store in parallel and builds the pool
// with history entries first. store may be nil. A history failure never
// fails the load; an input failure does.
func Load(ctx context.Context, input io.Reader, store *history.Store) (*menu.Pool, error) {
	log := logger.GetLogger().WithComponent("source")
	start := time.Now()

	var lines []string
	g, gctx := errgroup.WithContext(ctx)

	if input != nil {
		g.Go(func() error {
			var err error
			lines, err = ReadLines(gctx, input)
			return err
		})
	}
	if store != nil {
		g.Go(func() error {
			store.Load()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := menu.NewPoolBuilder(len(lines) + 32)
	if store != nil {
		store.Merge(b)
	}
	b.AddAll(lines)
	pool := b.Build()

	log.Performance("load", time.Since(start), map[string]interface{}{
		"items": pool.Len(),
		"piped": len(lines),
	})
	return pool, nil
}
