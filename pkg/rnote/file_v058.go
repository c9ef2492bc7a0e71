package rnote

import (
	"encoding/json"
	"fmt"
)

// FileV058 is the native document schema used by app versions 0.5.0 through
// 0.5.8. The document settings tree is still called "sheet" here.
type FileV058 struct {
	Sheet         interface{} `json:"sheet"`
	StoreSnapshot interface{} `json:"store_snapshot"`
}

// element is a single input sample of a stroke: a position and the pen
// pressure at that position.
type element struct {
	Pos      [2]float64 `json:"pos"`
	Pressure float64    `json:"pressure"`
}

// segmentV058 is one segment of a brushstroke path up to 0.5.8. Every
// variant carries its own absolute positions. Exactly one variant is set.
type segmentV058 struct {
	Dot     *dotSegment     `json:"dot,omitempty"`
	Line    *lineSegment    `json:"line,omitempty"`
	QuadBez *quadBezSegment `json:"quadbez,omitempty"`
	CubBez  *cubBezSegment  `json:"cubbez,omitempty"`
}

type dotSegment struct {
	Element element `json:"element"`
}

type lineSegment struct {
	Start element `json:"start"`
	End   element `json:"end"`
}

type quadBezSegment struct {
	Start element    `json:"start"`
	Cp    [2]float64 `json:"cp"`
	End   element    `json:"end"`
}

type cubBezSegment struct {
	Start element    `json:"start"`
	Cp1   [2]float64 `json:"cp1"`
	Cp2   [2]float64 `json:"cp2"`
	End   element    `json:"end"`
}

// start is the position where the segment begins.
func (s segmentV058) start() element {
	switch {
	case s.Dot != nil:
		return s.Dot.Element
	case s.Line != nil:
		return s.Line.Start
	case s.QuadBez != nil:
		return s.QuadBez.Start
	case s.CubBez != nil:
		return s.CubBez.Start
	}
	return element{}
}

// rework converts the segment to the form used since 0.5.9.
// Dots become zero length lines.
func (s segmentV058) rework() segmentV059 {
	switch {
	case s.Dot != nil:
		return segmentV059{LineTo: &lineTo{End: s.Dot.Element}}
	case s.Line != nil:
		return segmentV059{LineTo: &lineTo{End: s.Line.End}}
	case s.QuadBez != nil:
		return segmentV059{QuadBezTo: &quadBezTo{Cp: s.QuadBez.Cp, End: s.QuadBez.End}}
	case s.CubBez != nil:
		return segmentV059{CubBezTo: &cubBezTo{Cp1: s.CubBez.Cp1, Cp2: s.CubBez.Cp2, End: s.CubBez.End}}
	}
	return segmentV059{}
}

// decodeSegmentsV058 reads a brushstroke path from the generic JSON tree
// form. Segments with an unknown variant tag fail the decode.
func decodeSegmentsV058(v interface{}) ([]segmentV058, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var segments []segmentV058
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("cannot decode path: %v", err)
	}
	for i := range segments {
		s := &segments[i]
		if s.Dot == nil && s.Line == nil && s.QuadBez == nil && s.CubBez == nil {
			return nil, fmt.Errorf("path segment %v has an unknown variant", i)
		}
	}
	return segments, nil
}
