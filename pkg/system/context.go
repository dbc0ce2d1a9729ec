package system

import (
	"context"
)

// Executes a blocking operation with context awareness. It manages the
// lifecycle of the operation, ensuring proper completion or graceful
// interruption.
//
// The function handles three key scenarios:
//   - Normal completion: The operation finishes successfully
//   - Error during the operation: The error is propagated to the caller
//   - Context cancellation: The operation is signaled to stop but allowed to finish gracefully
//
// Returns:
//   - nil if the operation completes successfully.
//   - original error if the operation fails.
//   - the operation's result after interruption if the context is cancelled.
func RunWithContext(ctx context.Context, operation func(context.Context) error) error {
	// Check if the context is already cancelled to provide fast feedback if
	// the operation was cancelled before we started.
	if err := ctx.Err(); err != nil {
		return err
	}

	// Create an independent context for the operation. This allows us to
	// manage its lifecycle separately from the parent context, ensuring we
	// can properly handle interruption without leaving resources in an
	// inconsistent state.
	opCtx, cancel := context.WithCancel(context.Background())
	// Ensure the operation context is always cancelled to prevent context leak.
	defer cancel()

	// Using a buffered channel (size 1) ensures the operation goroutine can
	// exit even if the parent context is cancelled and we don't read from the
	// channel immediately.
	done := make(chan error, 1)

	go func() {
		// The operation receives its own context that signals when to abort.
		done <- operation(opCtx)
		close(done)
	}()

	select {
	case err := <-done:
		// Operation completed normally (success or error).
		return err
	case <-ctx.Done():
		// Parent context was cancelled (e.g., timeout or explicit cancellation).
		// Signal the operation to stop by cancelling its context.
		cancel()
		// Still wait for done so resources owned by the operation are released
		// before the caller regains control.
		return <-done
	}
}
