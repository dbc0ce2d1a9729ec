package zstream

import (
	"context"
	"fmt"
	"io"

	"github.com/iamNilotpal/zstream/pkg/system"
)

// Run drives one full pass of pipe from src to dst, checking ctx between
// segments. The per-run stage is always closed, including on cancellation
// and error, so compressor handles never outlive the call. Returns the
// number of bytes written to dst.
func Run(ctx context.Context, pipe Pipe, dst io.Writer, src io.Reader) (int64, error) {
	var written int64

	err := system.RunWithContext(ctx, func(opCtx context.Context) error {
		stage := pipe.Transform(src)
		defer stage.Close()

		buf := make([]byte, DefaultBufferSize)
		for {
			if err := opCtx.Err(); err != nil {
				return err
			}

			n, rerr := stage.Read(buf)
			if n > 0 {
				wn, werr := dst.Write(buf[:n])
				written += int64(wn)
				if werr != nil {
					return fmt.Errorf("write destination: %w", werr)
				}
			}
			if rerr == io.EOF {
				return nil
			}
			if rerr != nil {
				return rerr
			}
		}
	})

	return written, err
}
