package xopp

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color with 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

// String formats the color in the #rrggbbaa form used in documents.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// The color keywords allowed for strokes and text.
var strokeColors = map[string]Color{
	"black":      {0x00, 0x00, 0x00, 0xff},
	"blue":       {0x33, 0x33, 0xcc, 0xff},
	"red":        {0xff, 0x00, 0x00, 0xff},
	"green":      {0x00, 0x80, 0x00, 0xff},
	"gray":       {0x80, 0x80, 0x80, 0xff},
	"lightblue":  {0x00, 0xc0, 0xff, 0xff},
	"lightgreen": {0x00, 0xff, 0x00, 0xff},
	"magenta":    {0xff, 0x00, 0xff, 0xff},
	"orange":     {0xff, 0x80, 0x00, 0xff},
	"yellow":     {0xff, 0xff, 0x00, 0xff},
	"white":      {0xff, 0xff, 0xff, 0xff},
}

// The color keywords allowed for backgrounds.
// Same keyword, different color: "blue" as a background is not "blue"
// as a stroke.
var backgroundColors = map[string]Color{
	"white":  {0xff, 0xff, 0xff, 0xff},
	"blue":   {0xa0, 0xe8, 0xff, 0xff},
	"pink":   {0xff, 0xc0, 0xd4, 0xff},
	"green":  {0x80, 0xff, 0xc0, 0xff},
	"orange": {0xff, 0xc0, 0x80, 0xff},
	"yellow": {0xff, 0xff, 0x80, 0xff},
}

// ParseStrokeColor reads the color of a stroke or text, either one of the
// stroke color keywords or a #rrggbbaa hex value.
func ParseStrokeColor(s string) (Color, error) {
	if c, ok := strokeColors[s]; ok {
		return c, nil
	}
	return parseHexColor(s)
}

// ParseBackgroundColor reads the color of a page background, either one of
// the background color keywords or a #rrggbbaa hex value.
func ParseBackgroundColor(s string) (Color, error) {
	if c, ok := backgroundColors[s]; ok {
		return c, nil
	}
	return parseHexColor(s)
}

// parseHexColor reads a hex color value, with or without the leading '#'.
// The digits are taken as one 32 bit rrggbbaa value, so values shorter than
// eight digits fill from the low end: "#fff" is a faint opaque blue, not
// white.
func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%q is not a #rrggbbaa color", s)
	}

	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
