package classify

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spritegen/parallel"
	"spritegen/sprite"

	"github.com/alecthomas/kong"
)

func writeBlock(t *testing.T, path string, w, h int, r image.Rectangle) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// fixture writes one image of each archetype into a new folder.
func fixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeBlock(t, filepath.Join(dir, "tall.png"), 32, 64, image.Rect(8, 4, 24, 60))
	writeBlock(t, filepath.Join(dir, "wide.png"), 64, 32, image.Rect(2, 8, 62, 24))
	writeBlock(t, filepath.Join(dir, "square.png"), 64, 64, image.Rect(16, 16, 48, 48))
	return dir
}

func run(t *testing.T, out *bytes.Buffer, args ...string) error {
	t.Helper()

	var cli CLICmd
	parser, err := kong.New(&cli, kong.Writers(out, out), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	pool := parallel.Start(context.Background(), 2)
	kctx.BindTo(context.Background(), (*context.Context)(nil))
	return kctx.Run(pool.Do, pool.Wait)
}

func TestCopy(t *testing.T) {
	dir := fixture(t)

	if err := run(t, &bytes.Buffer{}, "cp", "--scan", dir); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		folder, name string
	}{
		{"tall_object", "tall.png"},
		{"wide_object", "wide.png"},
		{"square_object", "square.png"},
	}
	for _, tt := range tests {
		if _, err := os.Stat(filepath.Join(dir, tt.folder, tt.name)); err != nil {
			t.Errorf("%s was not copied to %s: %v", tt.name, tt.folder, err)
		}
		if _, err := os.Stat(filepath.Join(dir, tt.name)); err != nil {
			t.Errorf("source %s should be kept: %v", tt.name, err)
		}
	}
}

func TestMove(t *testing.T) {
	dir := fixture(t)
	tall := t.TempDir()

	if err := run(t, &bytes.Buffer{}, "mv", "--scan", dir, "--tall", tall); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(tall, "tall.png")); err != nil {
		t.Errorf("tall image was not moved: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "wide_object", "wide.png")); err != nil {
		t.Errorf("wide image was not moved: %v", err)
	}
	for _, name := range []string{"tall.png", "wide.png", "square.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("source %s should be gone", name)
		}
	}
}

func TestExistingDestination(t *testing.T) {
	dir := fixture(t)
	if err := os.Mkdir(filepath.Join(dir, "tall_object"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tall_object", "tall.png"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(t, &bytes.Buffer{}, "cp", "--scan", dir); err == nil {
		t.Fatal("expected an error for an existing destination")
	}

	b, err := os.ReadFile(filepath.Join(dir, "tall_object", "tall.png"))
	if err != nil || string(b) != "keep" {
		t.Error("existing destination was overwritten")
	}
	if _, err := os.Stat(filepath.Join(dir, "wide_object", "wide.png")); err != nil {
		t.Error("other images should still be copied")
	}
}

func TestList(t *testing.T) {
	dir := fixture(t)

	var out bytes.Buffer
	if err := run(t, &out, "ls", "--scan", dir, "--colors", "2"); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"square.png\tsquare_object\t64x64+32+32\t",
		"tall.png\ttall_object\t32x112+48+8\t",
		"wide.png\twide_object\t120x32+4+48\t",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	for i, prefix := range want {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
		if !strings.Contains(lines[i], "#") {
			t.Errorf("line %d has no colours", i)
		}
	}
}

func TestValidateFlags(t *testing.T) {
	dir := fixture(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing scan", []string{"cp", "--scan", filepath.Join(dir, "missing")}},
		{"scan is a file", []string{"mv", "--scan", filepath.Join(dir, "tall.png")}},
		{"no colours", []string{"ls", "--scan", dir, "--colors", "0"}},
		{"bad canvas", []string{"cp", "--scan", dir, "--canvas", "0"}},
		{"bad metric", []string{"ls", "--scan", dir, "--metric", "hsv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(t, &bytes.Buffer{}, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestInspectBrokenImage(t *testing.T) {
	name := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(name, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv, err := sprite.NewConverter(sprite.DefaultOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}

	e := Inspect(conv, name, 3)
	if e.Err == nil {
		t.Fatal("expected an error")
	}
	if !strings.HasPrefix(e.String(), "broken.png\terror\t") {
		t.Errorf("String() = %q", e.String())
	}
}

func TestMoveFileFallback(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := copyFile(src, filepath.Join(dir, "b.png")); err != nil {
		t.Fatal(err)
	}
	if err := copyFile(src, filepath.Join(dir, "b.png")); err == nil {
		t.Error("copy onto an existing file should fail")
	}
	if err := moveFile(src, filepath.Join(dir, "c.png")); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "c.png"))
	if err != nil || string(b) != "data" {
		t.Errorf("moved contents = %q, %v", b, err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after a move")
	}
}
