package command

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/928799934/go-pngme"
)

// writeImage writes a real 2x2 PNG image and returns its path.
func writeImage(t *testing.T) string {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	m.Set(1, 1, color.NRGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))
	path := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0640))
	return path
}

// writeChunks writes a PNG made only of text chunks and returns its path.
func writeChunks(t *testing.T, kv ...string) string {
	t.Helper()
	p := pngme.New()
	for i := 0; i < len(kv); i += 2 {
		ct, err := pngme.ParseChunkType(kv[i])
		require.NoError(t, err)
		p.AppendChunk(pngme.NewChunk(ct, []byte(kv[i+1])))
	}
	path := filepath.Join(t.TempDir(), "chunks.png")
	require.NoError(t, os.WriteFile(path, p.Bytes(), 0644))
	return path
}

func newTestRunner() (*Runner, *bytes.Buffer) {
	var out bytes.Buffer
	return NewRunner(&out, 0644), &out
}

func TestEncodeDecode(t *testing.T) {
	path := writeChunks(t)
	r, out := newTestRunner()

	require.NoError(t, r.Encode(EncodeArgs{FilePath: path, ChunkType: "teSt", Message: "hello"}))
	require.NoError(t, r.Decode(DecodeArgs{FilePath: path, ChunkType: "teSt"}))
	assert.Equal(t, "hello\n", out.String())
}

func TestEncodeIntoImage(t *testing.T) {
	path := writeImage(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	r, out := newTestRunner()

	require.NoError(t, r.Encode(EncodeArgs{FilePath: path, ChunkType: "ruSt", Message: "secret"}))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after[:len(before)], "existing chunks are kept byte for byte")
	assert.Len(t, after, len(before)+len("secret")+12)

	// the result is still an image
	_, err = png.Decode(bytes.NewReader(after))
	require.NoError(t, err)

	require.NoError(t, r.Decode(DecodeArgs{FilePath: path, ChunkType: "ruSt"}))
	assert.Equal(t, "secret\n", out.String())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), fi.Mode().Perm(), "permissions are preserved")
}

func TestEncodeOutputPath(t *testing.T) {
	path := writeImage(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	outPath := filepath.Join(t.TempDir(), "out.png")
	r, out := newTestRunner()
	r.FileMode = 0600

	require.NoError(t, r.Encode(EncodeArgs{FilePath: path, ChunkType: "ruSt", Message: "secret", OutputPath: outPath}))

	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, unchanged)

	fi, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())

	require.NoError(t, r.Decode(DecodeArgs{FilePath: outPath, ChunkType: "ruSt"}))
	assert.Equal(t, "secret\n", out.String())
}

func TestEncodeErrors(t *testing.T) {
	r, _ := newTestRunner()

	err := r.Encode(EncodeArgs{FilePath: writeImage(t), ChunkType: "r5St", Message: "x"})
	assert.ErrorIs(t, err, pngme.ErrInvalidChunkType)

	err = r.Encode(EncodeArgs{FilePath: filepath.Join(t.TempDir(), "missing.png"), ChunkType: "ruSt", Message: "x"})
	assert.ErrorIs(t, err, fs.ErrNotExist)

	notPng := filepath.Join(t.TempDir(), "text.png")
	require.NoError(t, os.WriteFile(notPng, []byte("just some text"), 0644))
	outPath := filepath.Join(t.TempDir(), "out.png")
	err = r.Encode(EncodeArgs{FilePath: notPng, ChunkType: "ruSt", Message: "x", OutputPath: outPath})
	assert.ErrorIs(t, err, pngme.ErrInvalidSignature)
	_, err = os.Stat(outPath)
	assert.ErrorIs(t, err, fs.ErrNotExist, "no output is written on failure")
}

func TestDecodeMissingChunk(t *testing.T) {
	r, out := newTestRunner()
	require.NoError(t, r.Decode(DecodeArgs{FilePath: writeImage(t), ChunkType: "noNe"}))
	assert.Empty(t, out.String())
}

func TestDecodeInvalidType(t *testing.T) {
	r, _ := newTestRunner()
	err := r.Decode(DecodeArgs{FilePath: writeImage(t), ChunkType: "toolong"})
	assert.ErrorIs(t, err, pngme.ErrInvalidChunkType)
}

func TestDecodeBinaryChunk(t *testing.T) {
	r, _ := newTestRunner()
	err := r.Decode(DecodeArgs{FilePath: writeImage(t), ChunkType: "IDAT"})
	assert.ErrorIs(t, err, pngme.ErrInvalidUTF8)
}

func TestRemove(t *testing.T) {
	path := writeChunks(t, "aaAa", "one", "bbBb", "two", "aaAa", "three")
	r, out := newTestRunner()

	require.NoError(t, r.Remove(RemoveArgs{FilePath: path, ChunkType: "aaAa"}))
	require.NoError(t, r.Print(PrintArgs{FilePath: path}))
	assert.Equal(t, "two\nthree\n", out.String())
}

func TestRemoveMissing(t *testing.T) {
	path := writeImage(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	r, _ := newTestRunner()

	err = r.Remove(RemoveArgs{FilePath: path, ChunkType: "noNe"})
	assert.ErrorIs(t, err, pngme.ErrChunkNotFound)
	err = r.Remove(RemoveArgs{FilePath: path, ChunkType: "no"})
	assert.ErrorIs(t, err, pngme.ErrInvalidChunkType)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPrint(t *testing.T) {
	path := writeChunks(t, "frSt", "first", "seCd", "", "thRd", "third")
	r, out := newTestRunner()
	require.NoError(t, r.Print(PrintArgs{FilePath: path}))
	assert.Equal(t, "first\n\nthird\n", out.String())
}

func TestPrintBinary(t *testing.T) {
	path := writeImage(t)
	r, out := newTestRunner()
	require.NoError(t, r.Encode(EncodeArgs{FilePath: path, ChunkType: "ruSt", Message: "hidden"}))

	err := r.Print(PrintArgs{FilePath: path})
	assert.ErrorIs(t, err, pngme.ErrInvalidUTF8)

	out.Reset()
	require.NoError(t, r.Print(PrintArgs{FilePath: path, SkipBinary: true}))
	// IHDR happens to be valid UTF-8 and IEND prints as an empty line
	assert.True(t, strings.HasSuffix(out.String(), "\n\nhidden\n"), "got %q", out.String())
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))
}

func TestInspect(t *testing.T) {
	r, out := newTestRunner()
	require.NoError(t, r.Inspect(InspectArgs{FilePath: writeImage(t)}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "IHDR")
	assert.Contains(t, lines[2], "IDAT")
	assert.Contains(t, lines[3], "IEND")
}

func TestWriteFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, writeFile(path, []byte("one"), 0644))
	require.NoError(t, writeFile(path, []byte("two"), 0600))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteFileThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.png")
	link := filepath.Join(dir, "link.png")
	require.NoError(t, os.WriteFile(target, []byte("one"), 0640))
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, writeFile(link, []byte("two"), 0644))

	fi, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink, "link is still a symlink")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	fi, err = os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), fi.Mode().Perm())
}

func TestEncodeThroughSymlink(t *testing.T) {
	target := writeChunks(t)
	link := filepath.Join(t.TempDir(), "link.png")
	require.NoError(t, os.Symlink(target, link))
	r, out := newTestRunner()

	require.NoError(t, r.Encode(EncodeArgs{FilePath: link, ChunkType: "teSt", Message: "hello"}))
	require.NoError(t, r.Decode(DecodeArgs{FilePath: target, ChunkType: "teSt"}))
	assert.Equal(t, "hello\n", out.String())
}
