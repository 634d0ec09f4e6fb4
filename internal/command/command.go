// Package command implements the pngme operations on PNG files: each one
// loads a file, applies a single change or query, and writes the result.
package command

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/928799934/go-pngme"
	"github.com/928799934/go-pngme/internal/logger"
	"github.com/928799934/go-pngme/internal/render"
)

// EncodeArgs are the arguments of the encode command.
type EncodeArgs struct {
	FilePath   string
	ChunkType  string
	Message    string
	OutputPath string // FilePath when empty
}

// DecodeArgs are the arguments of the decode command.
type DecodeArgs struct {
	FilePath  string
	ChunkType string
}

// RemoveArgs are the arguments of the remove command.
type RemoveArgs struct {
	FilePath  string
	ChunkType string
}

// PrintArgs are the arguments of the print command.
type PrintArgs struct {
	FilePath   string
	SkipBinary bool
}

// InspectArgs are the arguments of the inspect command.
type InspectArgs struct {
	FilePath string
	Color    bool
}

// Runner executes commands, printing results to Out and creating new files
// with FileMode.
type Runner struct {
	Out      io.Writer
	FileMode os.FileMode
}

// NewRunner returns a Runner that prints to out.
func NewRunner(out io.Writer, mode os.FileMode) *Runner {
	return &Runner{Out: out, FileMode: mode}
}

// Encode appends a chunk holding the message to the file and writes the
// result to the output path.
func (r *Runner) Encode(args EncodeArgs) error {
	t, err := pngme.ParseChunkType(args.ChunkType)
	if err != nil {
		return err
	}
	png, err := load(args.FilePath)
	if err != nil {
		return err
	}
	png.AppendChunk(pngme.NewChunk(t, []byte(args.Message)))

	out := args.OutputPath
	if out == "" {
		out = args.FilePath
	}
	if err := writeFile(out, png.Bytes(), r.FileMode); err != nil {
		return err
	}
	logger.Log("encoded %d byte message as %s chunk into %s", len(args.Message), t, out)
	return nil
}

// Decode prints the data of the first chunk of the given type. Nothing is
// printed when the file has no such chunk.
func (r *Runner) Decode(args DecodeArgs) error {
	if _, err := pngme.ParseChunkType(args.ChunkType); err != nil {
		return err
	}
	png, err := load(args.FilePath)
	if err != nil {
		return err
	}
	c, ok := png.ChunkByType(args.ChunkType)
	if !ok {
		logger.Log("no %s chunk in %s", args.ChunkType, args.FilePath)
		return nil
	}
	msg, err := c.DataString()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.Out, msg)
	return err
}

// Remove deletes the first chunk of the given type and writes the file back.
func (r *Runner) Remove(args RemoveArgs) error {
	png, err := load(args.FilePath)
	if err != nil {
		return err
	}
	c, err := png.RemoveFirstChunk(args.ChunkType)
	if err != nil {
		return fmt.Errorf("%s: %w", args.FilePath, err)
	}
	if err := writeFile(args.FilePath, png.Bytes(), r.FileMode); err != nil {
		return err
	}
	logger.Log("removed %d byte %s chunk from %s", c.Length(), c.Type(), args.FilePath)
	return nil
}

// Print prints the data of every chunk, one per line, in file order.
func (r *Runner) Print(args PrintArgs) error {
	png, err := load(args.FilePath)
	if err != nil {
		return err
	}
	for i, c := range png.Chunks() {
		s, err := c.DataString()
		if err != nil {
			if args.SkipBinary {
				logger.Log("skipping chunk %d (%s): %v", i, c.Type(), err)
				continue
			}
			return fmt.Errorf("chunk %d: %w", i, err)
		}
		if _, err := fmt.Fprintln(r.Out, s); err != nil {
			return err
		}
	}
	return nil
}

// Inspect prints a table describing every chunk.
func (r *Runner) Inspect(args InspectArgs) error {
	png, err := load(args.FilePath)
	if err != nil {
		return err
	}
	return render.Table(r.Out, png.Chunks(), args.Color)
}

func load(path string) (*pngme.Png, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading png: %w", err)
	}
	png, err := pngme.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Log("read %s: %d bytes, %d chunks", path, len(data), len(png.Chunks()))
	return png, nil
}

// writeFile replaces path, or the file it links to, with data. The data goes
// to a temporary file in the same directory first, so a failed write leaves
// the original untouched. An existing file keeps its permissions; a new one
// gets mode.
func writeFile(path string, data []byte, mode os.FileMode) error {
	// write through symlinks instead of replacing the link
	if target, err := filepath.EvalSymlinks(path); err == nil {
		path = target
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("resolving output path: %w", err)
	}
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking output file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath) // Clean up temp file
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return fmt.Errorf("closing temporary file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return fmt.Errorf("setting file mode: %w", err)
	}

	// Atomically rename temp file to final location
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return fmt.Errorf("moving output file: %w", err)
	}
	return nil
}
