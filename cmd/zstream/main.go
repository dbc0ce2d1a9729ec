package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/iamNilotpal/zstream"
	"github.com/iamNilotpal/zstream/config"
	"github.com/iamNilotpal/zstream/internal/serialize"
	zerrors "github.com/iamNilotpal/zstream/pkg/errors"
	"github.com/iamNilotpal/zstream/pkg/fs"
	"github.com/iamNilotpal/zstream/pkg/logger"
)

func main() {
	log := logger.New("zstream")
	defer log.Sync()

	var (
		mode    = flag.String("mode", "", "one of: deflate, inflate, gzip, gunzip")
		format  = flag.String("format", "zlib", "deflate/inflate stream format: zlib or raw")
		in      = flag.String("in", "", "input file; stdin when empty")
		out     = flag.String("out", "", "output file; stdout when empty")
		buffer  = flag.Int("buffer", zstream.DefaultBufferSize, "segment size in bytes")
		level   = flag.Int("level", int(zstream.DefaultCompression), "compression level: -1 store, 0 default, 1 fastest to 9 best")
		name    = flag.String("name", "", "gzip member file name; defaults to the input file name")
		comment = flag.String("comment", "", "gzip member comment")
		cfgPath = flag.String("config", "", "YAML file with tool defaults; flags given on the command line win")
	)
	flag.Parse()

	if *cfgPath != "" {
		cfg, err := config.LoadConfig(*cfgPath)
		if err != nil {
			log.Errorw("load config", "file", *cfgPath, "error", err)
			os.Exit(1)
		}

		given := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { given[f.Name] = true })

		if !given["buffer"] {
			*buffer = cfg.BufferSize
		}
		if !given["level"] {
			*level = cfg.Level
		}
		if !given["format"] {
			*format = cfg.Format
		}
		if *name == "" {
			*name = cfg.Gzip.FileName
		}
		if *comment == "" {
			*comment = cfg.Gzip.Comment
		}
	}

	source, err := openSource(*in)
	if err != nil {
		log.Errorw("open input", "file", *in, "error", err)
		os.Exit(1)
	}
	defer source.Close()

	sink, err := openSink(*out)
	if err != nil {
		log.Errorw("open output", "file", *out, "error", err)
		os.Exit(1)
	}
	defer sink.Close()

	var written int64
	switch *mode {
	case "gunzip":
		written, err = gunzipStream(*buffer, sink, source, log)
	default:
		var pipe zstream.Pipe
		if pipe, err = buildPipe(*mode, *format, *buffer, *level, *name, *comment, *in); err == nil {
			written, err = zstream.Run(context.Background(), pipe, sink, source)
		}
	}

	if err != nil {
		if verr := zerrors.AsValidationError(err); verr != nil {
			log.Errorw("invalid configuration", "field", verr.Field, "value", verr.Value, "error", verr.Err)
		} else {
			log.Errorw("stream failed", "mode", *mode, "error", err)
		}
		os.Exit(1)
	}

	log.Infow("done", "mode", *mode, "bytesWritten", written)
}

func openSource(path string) (*os.File, error) {
	if path == "" {
		return os.Stdin, nil
	}
	return fs.OpenFile(path)
}

func openSink(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MustCreateDir(dir); err != nil {
			return nil, err
		}
	}
	return fs.CreateFile(path)
}

func buildPipe(mode, format string, buffer, level int, name, comment, in string) (zstream.Pipe, error) {
	switch mode {
	case "deflate":
		f, err := parseFormat(format)
		if err != nil {
			return nil, err
		}
		return zstream.Deflate(zstream.DeflateOptions{
			BufferSize: buffer,
			Level:      zstream.CompressionLevel(level),
			Format:     f,
		})

	case "inflate":
		f, err := parseFormat(format)
		if err != nil {
			return nil, err
		}
		return zstream.Inflate(zstream.InflateOptions{
			BufferSize: buffer,
			Format:     f,
		})

	case "gzip":
		meta := zstream.GzipMetadata{FileName: name, Comment: comment}
		if in != "" {
			if meta.FileName == "" {
				meta.FileName = filepath.Base(in)
			}
			if stat, err := os.Stat(in); err == nil {
				meta.ModTime = stat.ModTime()
			}
		}
		return zstream.Gzip(zstream.GzipOptions{
			BufferSize: buffer,
			Level:      zstream.CompressionLevel(level),
			Metadata:   meta,
		})

	default:
		return nil, fmt.Errorf("unknown mode %q, want deflate, inflate, gzip or gunzip", mode)
	}
}

func parseFormat(format string) (zstream.Format, error) {
	switch format {
	case "zlib":
		return zstream.FormatZlib, nil
	case "raw":
		return zstream.FormatRaw, nil
	default:
		return 0, fmt.Errorf("unknown format %q, want zlib or raw", format)
	}
}

// gunzipStream decodes the first member of src, logging the decoded header
// before streaming the content.
func gunzipStream(buffer int, dst io.Writer, src io.Reader, log *zap.SugaredLogger) (int64, error) {
	transform, err := zstream.Gunzip(zstream.GunzipOptions{BufferSize: buffer})
	if err != nil {
		return 0, err
	}

	result, err := transform.Open(src)
	if err != nil {
		return 0, err
	}
	defer result.Content.Close()

	header := memberHeader{
		FileName: result.FileName,
		Comment:  result.Comment,
		OS:       result.OS,
	}
	if !result.ModTime.IsZero() {
		header.ModTime = result.ModTime.Format(time.RFC3339)
	}
	if encoded, merr := serialize.MarshalJSON(header); merr == nil {
		log.Infow("member header", "metadata", string(encoded))
	}

	return io.Copy(dst, result.Content)
}

// memberHeader is the log-friendly shape of a decoded gzip header.
type memberHeader struct {
	FileName string `json:"fileName,omitempty"`
	Comment  string `json:"comment,omitempty"`
	ModTime  string `json:"modTime,omitempty"`
	OS       byte   `json:"os"`
}
