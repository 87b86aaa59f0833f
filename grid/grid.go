// Package grid decodes backend text and color lines into renderable cells.
package grid

import (
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mimic/palette"
)

// ErrMalformedFrameData is returned when a text/color line pair violates the row contract
var ErrMalformedFrameData = errors.New("malformed frame data")

// digitError marks a bad palette digit as malformed frame data while keeping the palette cause
type digitError struct {
	err error
}

func (e digitError) Error() string { return e.err.Error() }

func (e digitError) Unwrap() error { return e.err }

func (e digitError) Is(target error) bool { return target == ErrMalformedFrameData }

// Cell represents a single decoded terminal cell
type Cell struct {
	Rune rune
	Fg   palette.RGB
	Bg   palette.RGB
}

// DecodeRow turns one text line and one color line into width cells
// text must hold at least width runes; colorLine must hold exactly 2*width palette digits,
// backgrounds first, then foregrounds
func DecodeRow(width int, text, colorLine string) ([]Cell, error) {
	if width < 0 {
		return nil, errors.Wrapf(ErrMalformedFrameData, "negative width %d", width)
	}
	if len(colorLine) != 2*width {
		return nil, errors.Wrapf(ErrMalformedFrameData, "color line has %d digits, want %d", len(colorLine), 2*width)
	}

	cells := make([]Cell, width)
	offset := 0
	for x := 0; x < width; x++ {
		if offset >= len(text) {
			return nil, errors.Wrapf(ErrMalformedFrameData, "text line has %d characters, want %d", x, width)
		}
		r, size := utf8.DecodeRuneInString(text[offset:])
		offset += size

		bg, err := palette.Decode(rune(colorLine[x]))
		if err != nil {
			return nil, errors.Wrapf(digitError{err}, "%s: background at column %d", ErrMalformedFrameData, x)
		}
		fg, err := palette.Decode(rune(colorLine[x+width]))
		if err != nil {
			return nil, errors.Wrapf(digitError{err}, "%s: foreground at column %d", ErrMalformedFrameData, x)
		}

		cells[x] = Cell{Rune: r, Fg: fg, Bg: bg}
	}
	return cells, nil
}
