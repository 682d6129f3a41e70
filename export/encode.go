package export

import (
	"encoding/json"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"
	"sync"

	"spritegen/palette"
	"spritegen/sprite"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Sheet formats understood by WriteSheet.
var SheetFormats = []string{"png", "gif", "bmp", "tiff"}

// WriteSheet encodes the sprite sheet of r in the given format. Sheets are
// written paletted whenever the sprite palette allows it.
func WriteSheet(w io.Writer, r *sprite.Result, scale int, format string) error {
	var img image.Image = SheetImage(r, scale)
	if p := Paletted(img, r.Palette); p != nil {
		img = p
	}

	switch format {
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG sheet: %w", err)
		}
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF sheet: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP sheet: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF sheet: %w", err)
		}
	default:
		return fmt.Errorf("unsupported sheet format: %s", format)
	}
	return nil
}

func WritePNG(w io.Writer, r *sprite.Result, scale int) error {
	return WriteSheet(w, r, scale, "png")
}

// WriteJSON writes r in the matrix/type/dimensions/palette layout.
func WriteJSON(w io.Writer, r *sprite.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("could not encode result: %w", err)
	}
	return nil
}

// ReadJSON reads a result written by WriteJSON.
func ReadJSON(rd io.Reader) (*sprite.Result, error) {
	var r sprite.Result
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("could not decode result: %w", err)
	}
	return &r, nil
}

// WritePalette writes the sprite palette as a RIFF .pal file.
func WritePalette(w io.Writer, r *sprite.Result) error {
	if _, err := palette.WriteRIFF(w, r.Palette); err != nil {
		return fmt.Errorf("could not write palette: %w", err)
	}
	return nil
}

// WriteSwatch writes a PNG strip with one tile per palette colour.
func WriteSwatch(w io.Writer, r *sprite.Result, tile int) error {
	enc := png.Encoder{
		CompressionLevel: png.BestCompression,
		BufferPool:       pngPool,
	}
	if err := enc.Encode(w, palette.Swatch(r.Palette, tile)); err != nil {
		return fmt.Errorf("could not encode swatch: %w", err)
	}
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
