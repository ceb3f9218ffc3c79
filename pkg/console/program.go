package console

import (
	"context"
	"errors"
	"fmt"
)

// ErrCallbackInvocationFailed wraps every failure of the user program: a
// missing program, a panic, or a returned error.
var ErrCallbackInvocationFailed = errors.New("callback invocation failed")

// Program is the user logic run next to the render loop. It reads input
// through c.Scanner() and writes with c.Print and c.Println. ctx is
// cancelled by Close.
type Program func(ctx context.Context, c *Console) error

// Start runs p on its own goroutine. Only the first call has any effect.
// Failures are logged and reported by Err; they never reach the render loop.
func (c *Console) Start(p Program) {
	c.startOnce.Do(func() {
		go c.run(p)
	})
}

// Close cancels the program's context. It does not wait; use Done for that.
func (c *Console) Close() {
	c.cancel()
}

// Done is closed when the program started by Start has returned
func (c *Console) Done() <-chan struct{} {
	return c.done
}

// Err returns the program's failure, if any, once Done is closed
func (c *Console) Err() error {
	c.errMutex.RLock()
	defer c.errMutex.RUnlock()
	return c.err
}

// run invokes the program and records the outcome
func (c *Console) run(p Program) {
	defer close(c.done)

	if err := invoke(c.ctx, c, p); err != nil {
		c.logger.Printf("console program: %v", err)
		c.errMutex.Lock()
		c.err = err
		c.errMutex.Unlock()
	}
}

// invoke calls p, turning a panic or error into ErrCallbackInvocationFailed.
// Cancellation through Close is a normal exit.
func invoke(ctx context.Context, c *Console, p Program) (err error) {
	if p == nil {
		return fmt.Errorf("%w: no program", ErrCallbackInvocationFailed)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrCallbackInvocationFailed, r)
		}
	}()

	if err := p(ctx, c); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrCallbackInvocationFailed, err)
	}
	return nil
}
