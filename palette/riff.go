package palette

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}

	palVersion = []byte{0x00, 0x03}
)

// ReadRIFF loads every palette chunk of a RIFF PAL document into one palette.
func ReadRIFF(r io.Reader) (Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	var cols []RGB
	for i := 0; ; i++ {
		id, _, data, err := rd.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("could not read chunk #%d: %w", i, err)
		}

		if id != dataType {
			return nil, fmt.Errorf("unsupported chunk type in #%d: %s", i, string(id[:]))
		}

		chunk, err := readChunk(data, i)
		if err != nil {
			return nil, err
		}
		cols = append(cols, chunk...)
	}

	return New(cols...), nil
}

func readChunk(r io.Reader, idx int) ([]RGB, error) {
	head := make([]byte, 4)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("could not read header of chunk #%d: %w", idx, err)
	}

	if head[0] != palVersion[0] || head[1] != palVersion[1] {
		return nil, fmt.Errorf("unsupported palette version in chunk #%d: %#04x", idx, binary.BigEndian.Uint16(head))
	}

	count := int(binary.LittleEndian.Uint16(head[2:]))
	entries := make([]byte, count*4)
	if _, err := io.ReadFull(r, entries); err != nil {
		return nil, fmt.Errorf("could not read %d colors from chunk #%d: %w", count, idx, err)
	}

	res := make([]RGB, count)
	for i := range count {
		res[i] = RGB{R: entries[i*4], G: entries[i*4+1], B: entries[i*4+2]}
	}
	return res, nil
}

// WriteRIFF writes p as a single-chunk RIFF PAL document.
func WriteRIFF(w io.Writer, p Palette) (int64, error) {
	payload := 4 + len(p)*4
	size := 4 + 8 + payload

	buf := make([]byte, 0, 8+size)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(payload))
	buf = append(buf, palVersion...)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(p)))
	for _, c := range p {
		buf = append(buf, c.R, c.G, c.B, 0x00)
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("could not write palette: %w", err)
	} else if n != len(buf) {
		return int64(n), fmt.Errorf("wrote only %d/%d bytes", n, len(buf))
	}
	return int64(n), nil
}
