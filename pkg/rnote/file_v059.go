package rnote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/flxzt/rnotefmt"
)

// FileV059 is the native document schema of version 0.5.9.
//
// The app level content is not interpreted here. The document settings and
// the stroke store pass through as generic JSON trees, only the parts the
// migrations rework are given concrete types.
type FileV059 struct {
	// Document holds the document wide settings. Saved as "document"
	// since 0.5.9, the old name "sheet" is still accepted on load.
	Document interface{} `json:"document"`
	// StoreSnapshot is the serialized stroke store.
	StoreSnapshot interface{} `json:"store_snapshot"`
}

func (f *FileV059) UnmarshalJSON(b []byte) error {
	var raw struct {
		Document      json.RawMessage `json:"document"`
		Sheet         json.RawMessage `json:"sheet"`
		StoreSnapshot json.RawMessage `json:"store_snapshot"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	doc := raw.Document
	if doc == nil {
		doc = raw.Sheet
	}
	if doc != nil {
		if err := decodeJSON(doc, &f.Document); err != nil {
			return err
		}
	}
	if raw.StoreSnapshot != nil {
		if err := decodeJSON(raw.StoreSnapshot, &f.StoreSnapshot); err != nil {
			return err
		}
	}
	return nil
}

// penPath is the brushstroke path representation since 0.5.9: an explicit
// start element followed by segments that continue from the previous
// position.
type penPath struct {
	Start    element       `json:"start"`
	Segments []segmentV059 `json:"segments"`
}

// segmentV059 is one path segment since 0.5.9. Exactly one variant is set.
type segmentV059 struct {
	LineTo    *lineTo    `json:"lineto,omitempty"`
	QuadBezTo *quadBezTo `json:"quadbezto,omitempty"`
	CubBezTo  *cubBezTo  `json:"cubbezto,omitempty"`
}

type lineTo struct {
	End element `json:"end"`
}

type quadBezTo struct {
	Cp  [2]float64 `json:"cp"`
	End element    `json:"end"`
}

type cubBezTo struct {
	Cp1 [2]float64 `json:"cp1"`
	Cp2 [2]float64 `json:"cp2"`
	End element    `json:"end"`
}

// upgradeFileV058 converts a 0.5.8 document to the 0.5.9 schema: the
// settings tree moves from "sheet" to "document", and brushstroke paths
// change to the start plus segments form.
func upgradeFileV058(old FileV058) (FileV059, error) {
	if err := reworkBrushstrokePaths(old.StoreSnapshot); err != nil {
		return FileV059{}, err
	}
	return FileV059{
		Document:      old.Sheet,
		StoreSnapshot: old.StoreSnapshot,
	}, nil
}

// reworkBrushstrokePaths rewrites the path of every brushstroke in the store
// snapshot, in place. Vacant slots and other stroke kinds are left alone.
// A brushstroke whose path does not have the expected shape fails the whole
// conversion.
func reworkBrushstrokePaths(snapshot interface{}) error {
	store, ok := snapshot.(map[string]interface{})
	if !ok {
		return errors.New("store snapshot is not a JSON object")
	}
	components, ok := store["stroke_components"].([]interface{})
	if !ok {
		return errors.New("store snapshot has no stroke_components array")
	}

	for i, entry := range components {
		slot, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		value, ok := slot["value"].(map[string]interface{})
		if !ok {
			// vacant slot
			continue
		}
		tagged, ok := value["brushstroke"]
		if !ok {
			// some other stroke kind, not affected
			continue
		}
		brush, ok := tagged.(map[string]interface{})
		if !ok {
			return fmt.Errorf("stroke_components[%v]: brushstroke is not a JSON object", i)
		}
		oldPath, ok := brush["path"]
		if !ok {
			return fmt.Errorf("stroke_components[%v]: brushstroke has no path", i)
		}
		segments, err := decodeSegmentsV058(oldPath)
		if err != nil {
			return rnotefmt.Wrap(err, "stroke_components[%v]", i)
		}
		path, err := toJSONValue(reworkPath(segments))
		if err != nil {
			return err
		}
		brush["path"] = path
	}
	return nil
}

// reworkPath builds the start plus segments form of a path. The start
// element is taken from the first old segment. That first segment is then
// still converted like all the others, so the new path begins with a segment
// leading to its own start position.
// TODO check whether the first segment should be dropped from the converted
// list, the start element already covers it.
func reworkPath(old []segmentV058) penPath {
	path := penPath{
		Segments: make([]segmentV059, 0, len(old)),
	}
	if len(old) > 0 {
		path.Start = old[0].start()
	}
	for _, s := range old {
		path.Segments = append(path.Segments, s.rework())
	}
	return path
}
