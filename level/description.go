package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

var (
	ErrRowWidth   = errors.New("row must have 7 cells")
	ErrCellToken  = errors.New("invalid cell token")
	ErrColorToken = errors.New("invalid palette color")
	ErrNoRows     = errors.New("description has no rows")
	ErrUnknownKey = errors.New("unknown key in description")
)

// Description is the TOML text form of a level
// Rows run from the start line forward; each row holds 7 space-separated cells.
// A cell is "." for void, or hex "CC" / "CCFF" giving the color byte and flag byte.
type Description struct {
	Name    string   `toml:"name"`
	Gravity int      `toml:"gravity"`
	Fuel    int      `toml:"fuel"`
	Oxygen  int      `toml:"oxygen"`
	Palette []string `toml:"palette"`
	Rows    []string `toml:"rows"`
}

// LoadDescription reads a TOML level description from disk
func LoadDescription(filename string) (*Level, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", filename, err)
	}
	return ParseDescription(string(data))
}

// Builtin loads one of the levels shipped with the package, by file stem
func Builtin(name string) (*Level, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("builtin level %q: %w", name, err)
	}
	return ParseDescription(string(data))
}

// BuiltinNames lists the shipped levels
func BuiltinNames() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	return names
}

// ParseDescription decodes TOML text into a level
func ParseDescription(text string) (*Level, error) {
	var d Description
	md, err := toml.Decode(text, &d)
	if err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, undecoded[0].String())
	}
	return d.Build()
}

// Build converts the description into a level
func (d *Description) Build() (*Level, error) {
	if len(d.Rows) == 0 {
		return nil, ErrNoRows
	}

	pal := DefaultPalette()
	for i, s := range d.Palette {
		if i >= PaletteSize {
			break
		}
		c, err := parseColor(s)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		pal[i] = c
	}

	cells := make([][]Cell, Columns)
	for x := range cells {
		cells[x] = make([]Cell, len(d.Rows))
	}
	for y, row := range d.Rows {
		tokens := strings.Fields(row)
		if len(tokens) != Columns {
			return nil, fmt.Errorf("row %d: %w, got %d", y, ErrRowWidth, len(tokens))
		}
		for x, tok := range tokens {
			color, flags, err := parseCell(tok)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", y, x, err)
			}
			cells[x][y] = NewCellFromBytes(&pal, color, flags)
		}
	}

	return New(d.Name, d.Gravity, d.Fuel, d.Oxygen, pal, cells)
}

func parseCell(tok string) (color, flags uint8, err error) {
	if tok == "." {
		return 0, 0, nil
	}
	if len(tok) != 2 && len(tok) != 4 {
		return 0, 0, fmt.Errorf("%w: %q", ErrCellToken, tok)
	}
	v, err := strconv.ParseUint(tok, 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrCellToken, tok)
	}
	if len(tok) == 2 {
		return uint8(v), 0, nil
	}
	return uint8(v >> 8), uint8(v), nil
}

func parseColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrColorToken, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrColorToken, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
