package xopp

import (
	"strconv"
	"strings"
)

// parseFloats reads a space separated list of decimal values.
// Tokens that do not parse as a number are dropped.
func parseFloats(s string) []float64 {
	parts := strings.Split(strings.TrimSpace(s), " ")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}
		vals = append(vals, f)
	}
	return vals
}

// parseCoords reads the coordinate list of a stroke, space separated decimal
// values taken pairwise as x and y. A trailing value without a partner is
// dropped.
func parseCoords(s string) []Point {
	vals := parseFloats(s)
	points := make([]Point, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		points = append(points, Point{X: vals[i], Y: vals[i+1]})
	}
	return points
}

// fmtFloat formats a decimal value for a document,
// with exactly three digits after the point.
func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

func fmtFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, f := range vals {
		parts[i] = fmtFloat(f)
	}
	return strings.Join(parts, " ")
}

func fmtCoords(points []Point) string {
	parts := make([]string, 0, len(points)*2)
	for _, p := range points {
		parts = append(parts, fmtFloat(p.X), fmtFloat(p.Y))
	}
	return strings.Join(parts, " ")
}
