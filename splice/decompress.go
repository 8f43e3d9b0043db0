package splice

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
)

// OpenInput opens path for reading, transparently decompressing .gz inputs
// in-process and .lrz inputs by piping them through an external lrunzip
// subprocess. Plain files are opened directly. The caller must Close the
// returned reader.
func OpenInput(ctx context.Context, path string, lrunzipPath string) (io.ReadCloser, error) {
	if strings.HasSuffix(path, ".lrz") {
		return openExternalDecompressor(lrunzipPath, path)
	}
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	var r io.Reader = f.Reader(ctx)
	if u := compress.NewReaderPath(r, f.Name()); u != nil {
		r = u
	}
	return &fileReadCloser{ctx: ctx, f: f, r: r}, nil
}

type fileReadCloser struct {
	ctx context.Context
	f   file.File
	r   io.Reader
}

func (c *fileReadCloser) Read(p []byte) (int, error) { return c.r.Read(p) }
func (c *fileReadCloser) Close() error                { return c.f.Close(c.ctx) }

// externalDecompressor wraps a subprocess whose stdout is the decompressed
// byte stream, modeled on the original tool's "cat file | ./lrunzip" pipe.
type externalDecompressor struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func openExternalDecompressor(bin, path string) (io.ReadCloser, error) {
	if bin == "" {
		bin = "lrunzip"
	}
	cmd := exec.Command(bin, "-d", "-q", "-o", "-", path)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe %s: %w", path, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s for %s: %w", bin, path, err)
	}
	return &externalDecompressor{cmd: cmd, stdout: stdout}, nil
}

func (e *externalDecompressor) Read(p []byte) (int, error) { return e.stdout.Read(p) }

func (e *externalDecompressor) Close() error {
	closeErr := e.stdout.Close()
	waitErr := e.cmd.Wait()
	if waitErr != nil {
		return waitErr
	}
	return closeErr
}
