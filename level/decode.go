package level

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Binary layout sizes
const (
	headerSize  = 6
	paletteSize = PaletteSize * 3
	bytesPerRow = Columns * 2
	indexEntry  = 4
)

var (
	ErrTruncated   = errors.New("level data truncated")
	ErrCellLength  = errors.New("cell data is not a whole number of rows")
	ErrBadIndex    = errors.New("level index is malformed")
	ErrEmptyLevels = errors.New("no levels in set")
)

type header struct {
	Gravity uint16
	Fuel    uint16
	Oxygen  uint16
}

// Decode builds a level from its uncompressed byte image
// Layout: gravity, fuel, oxygen (little-endian uint16), 72 VGA rgb triples,
// then two bytes per cell (color, flags), 14 bytes per row
func Decode(name string, data []byte) (*Level, error) {
	r := bytes.NewReader(data)

	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%s header: %w", name, ErrTruncated)
	}

	var raw [paletteSize]uint8
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("%s palette: %w", name, ErrTruncated)
	}
	var pal Palette
	for i := range pal {
		pal[i] = VGAColor(raw[i*3], raw[i*3+1], raw[i*3+2])
	}

	body := data[headerSize+paletteSize:]
	if len(body)%bytesPerRow != 0 {
		return nil, fmt.Errorf("%s: %w: %d bytes", name, ErrCellLength, len(body))
	}
	rows := len(body) / bytesPerRow

	cells := make([][]Cell, Columns)
	for x := range cells {
		col := make([]Cell, rows)
		for y := range col {
			idx := x*2 + y*bytesPerRow
			col[y] = NewCellFromBytes(&pal, body[idx], body[idx+1])
		}
		cells[x] = col
	}

	lvl, err := New(name, int(h.Gravity), int(h.Fuel), int(h.Oxygen), pal, cells)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return lvl, nil
}

// DecodeSet splits a multi-level image by its leading index and decodes every level
// The index is a run of (start, size) uint16 pairs ending where the first level begins;
// size counts the cell bytes following the level's header and palette
func DecodeSet(data []byte) ([]*Level, error) {
	if len(data) < indexEntry {
		return nil, ErrEmptyLevels
	}

	first := int(binary.LittleEndian.Uint16(data))
	if first < indexEntry || first > len(data) || first%indexEntry != 0 {
		return nil, fmt.Errorf("%w: first level at %d", ErrBadIndex, first)
	}

	levels := make([]*Level, 0, first/indexEntry)
	for off := 0; off < first; off += indexEntry {
		start := int(binary.LittleEndian.Uint16(data[off:]))
		size := int(binary.LittleEndian.Uint16(data[off+2:]))
		end := start + headerSize + paletteSize + size
		if start < first || end > len(data) {
			return nil, fmt.Errorf("%w: entry %d spans %d..%d of %d", ErrBadIndex, off/indexEntry, start, end, len(data))
		}

		name := "Demo Level"
		if n := off / indexEntry; n > 0 {
			name = fmt.Sprintf("Level %d", n)
		}
		lvl, err := Decode(name, data[start:end])
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// Encode writes a level back to its uncompressed byte image
func Encode(l *Level) []byte {
	var buf bytes.Buffer
	h := header{Gravity: uint16(l.Gravity), Fuel: uint16(l.Fuel), Oxygen: uint16(l.Oxygen)}
	_ = binary.Write(&buf, binary.LittleEndian, h)
	for _, c := range l.Palette {
		buf.Write([]byte{c.R / 4, c.G / 4, c.B / 4})
	}
	for y := 0; y < l.Length(); y++ {
		for x := 0; x < Columns; x++ {
			c := l.CellAt(x, y)
			buf.Write([]byte{c.Raw, c.Flags})
		}
	}
	return buf.Bytes()
}
