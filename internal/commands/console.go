package commands

import (
	"bufio"
	"context"
	"io"

	"depot3d/internal/logger"
)

// ReadLines sends each line of r to out until r is exhausted or ctx is done, then closes out.
// It is meant to run on its own goroutine; the frame loop drains out with Drain.
func ReadLines(ctx context.Context, r io.Reader, out chan<- string) error {
	defer close(out)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		select {
		case out <- sc.Text():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return sc.Err()
}

// Drain executes every line currently queued in in without blocking and returns how many
// commands ran. Errors are logged, not returned, so one bad line does not stop the loop.
func (r *Registry) Drain(in <-chan string, log *logger.Logger) int {
	n := 0
	for {
		select {
		case line, ok := <-in:
			if !ok {
				return n
			}
			args, isCmd := Parse(line)
			if !isCmd {
				continue
			}
			n++
			if err := r.Execute(args); err != nil {
				log.Warn("command failed", logger.Fields{"line": line, "error": err.Error()})
				continue
			}
			log.Debug("command", logger.Fields{"line": line})
		default:
			return n
		}
	}
}
