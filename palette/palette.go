// Package palette maps the 16-entry device palette to packed RGB values.
//
// Every palette index has exactly one hex digit ('0'-'9', 'a'-'f') and one RGB constant.
// Lookups read constant tables only and are safe for concurrent use.
package palette

import (
	"github.com/pkg/errors"
)

// ErrInvalidColorDigit is returned when a character is not a palette digit
var ErrInvalidColorDigit = errors.New("invalid color digit")

// Index is a palette slot in the range 0-15
type Index uint8

// Count is the number of palette entries
const Count = 16

// RGB is a packed 0xRRGGBB color
type RGB uint32

// Palette colors, indexed by their hex digit
const (
	White     RGB = 0xf0f0f0
	Orange    RGB = 0xf2b233
	Magenta   RGB = 0xe57fd8
	LightBlue RGB = 0x99b2f2
	Yellow    RGB = 0xdede6c
	Lime      RGB = 0x7fcc19
	Pink      RGB = 0xf2b2cc
	Gray      RGB = 0x4c4c4c
	LightGray RGB = 0x999999
	Cyan      RGB = 0x4c99b2
	Purple    RGB = 0xb266e5
	Blue      RGB = 0x3366cc
	Brown     RGB = 0x7f664c
	Green     RGB = 0x57a64e
	Red       RGB = 0xcc4c4c
	Black     RGB = 0x000000
)

// colors is ordered by palette index
var colors = [Count]RGB{
	Black,     // 0
	Red,       // 1
	Green,     // 2
	Brown,     // 3
	Blue,      // 4
	Purple,    // 5
	Cyan,      // 6
	LightGray, // 7
	Gray,      // 8
	Pink,      // 9
	Lime,      // a
	Yellow,    // b
	LightBlue, // c
	Magenta,   // d
	Orange,    // e
	White,     // f
}

const digits = "0123456789abcdef"

// Components splits the packed value into channels
func (c RGB) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Color returns the RGB value for the index
func (i Index) Color() RGB {
	return colors[i&0x0f]
}

// Digit returns the lower-case hex digit for the index
func (i Index) Digit() rune {
	return rune(digits[i&0x0f])
}

// ParseDigit converts a hex digit to its palette index
// Upper-case digits are accepted
func ParseDigit(digit rune) (Index, error) {
	switch {
	case digit >= '0' && digit <= '9':
		return Index(digit - '0'), nil
	case digit >= 'a' && digit <= 'f':
		return Index(digit-'a') + 10, nil
	case digit >= 'A' && digit <= 'F':
		return Index(digit-'A') + 10, nil
	}
	return 0, errors.Wrapf(ErrInvalidColorDigit, "%q", digit)
}

// Decode converts a single hex digit to its RGB value
func Decode(digit rune) (RGB, error) {
	idx, err := ParseDigit(digit)
	if err != nil {
		return 0, err
	}
	return idx.Color(), nil
}

// FromIndex converts a numeric palette index to its RGB value
// Backends report cursor color as an integer rather than a digit
func FromIndex(n int) (RGB, error) {
	if n < 0 || n >= Count {
		return 0, errors.Wrapf(ErrInvalidColorDigit, "index %d", n)
	}
	return colors[n], nil
}
