package xopp

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/flxzt/rnotefmt"
	"github.com/flxzt/rnotefmt/internal/logging"
)

// findAttr looks up an attribute by name. Namespaces are ignored.
func findAttr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func requiredAttr(d *xml.Decoder, start xml.StartElement, name string) (string, error) {
	v, ok := findAttr(start, name)
	if !ok {
		return "", rnotefmt.NewMissingAttribute(start.Name.Local, name, d.InputOffset())
	}
	return v, nil
}

func floatAttr(d *xml.Decoder, start xml.StartElement, name string) (float64, error) {
	v, err := requiredAttr(d, start, name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, rnotefmt.NewInvalidAttribute(start.Name.Local, name, v, d.InputOffset(), err)
	}
	return f, nil
}

// textContent reads the character data of the current element up to its
// closing tag. Child elements are skipped.
func textContent(d *xml.Decoder) (string, error) {
	var b strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if err := d.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

// UnmarshalXML decodes the document element.
// Its name is not checked, apps disagree on what to call it.
// Unknown child elements are skipped.
func (r *Root) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if v, ok := findAttr(start, "fileversion"); ok {
		r.FileVersion = v
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "title":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				r.Title = s
			case "preview":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				r.Preview = strings.TrimSpace(s)
			case "page":
				var p Page
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				r.Pages = append(r.Pages, p)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *Page) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var err error
	if p.Width, err = floatAttr(d, start, "width"); err != nil {
		return err
	}
	if p.Height, err = floatAttr(d, start, "height"); err != nil {
		return err
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "background":
				if err := d.DecodeElement(&p.Background, &t); err != nil {
					return err
				}
			case "layer":
				var l Layer
				if err := d.DecodeElement(&l, &t); err != nil {
					return err
				}
				p.Layers = append(p.Layers, l)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (b *Background) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if v, ok := findAttr(start, "name"); ok {
		name := v
		b.Name = &name
	}

	typ, err := requiredAttr(d, start, "type")
	if err != nil {
		return err
	}
	switch typ {
	case "solid":
		b.Type = BackgroundSolid
		v, err := requiredAttr(d, start, "color")
		if err != nil {
			return err
		}
		if b.Color, err = ParseBackgroundColor(v); err != nil {
			return rnotefmt.NewInvalidAttribute(start.Name.Local, "color", v, d.InputOffset(), err)
		}
		// An unreadable style does not fail the load, the page content
		// is intact without it.
		if v, ok := findAttr(start, "style"); ok {
			style, known := backgroundStyleFromName(v)
			if !known {
				logging.Warning("Unknown background style %q, falling back to %v", v, StylePlain)
			}
			b.Style = style
		}
	case "pixmap":
		b.Type = BackgroundPixmap
		v, err := requiredAttr(d, start, "domain")
		if err != nil {
			return err
		}
		dom, known := pixmapDomainFromName(v)
		if !known {
			return rnotefmt.NewInvalidAttribute(start.Name.Local, "domain", v, d.InputOffset(), nil)
		}
		b.Domain = dom
		if b.Filename, err = requiredAttr(d, start, "filename"); err != nil {
			return err
		}
	case "pdf":
		b.Type = BackgroundPdf
	default:
		return rnotefmt.NewInvalidAttribute(start.Name.Local, "type", typ, d.InputOffset(), nil)
	}

	return d.Skip()
}

func (l *Layer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if v, ok := findAttr(start, "name"); ok {
		name := v
		l.Name = &name
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "stroke":
				var s Stroke
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				l.Strokes = append(l.Strokes, s)
			case "text":
				var x Text
				if err := d.DecodeElement(&x, &t); err != nil {
					return err
				}
				l.Texts = append(l.Texts, x)
			case "image":
				var i Image
				if err := d.DecodeElement(&i, &t); err != nil {
					return err
				}
				l.Images = append(l.Images, i)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (s *Stroke) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	tool, err := requiredAttr(d, start, "tool")
	if err != nil {
		return err
	}
	// unknown tool names are tolerated, the stroke loads with the default
	if t, known := toolFromName(tool); known {
		s.Tool = t
	}

	v, err := requiredAttr(d, start, "color")
	if err != nil {
		return err
	}
	if s.Color, err = ParseStrokeColor(v); err != nil {
		return rnotefmt.NewInvalidAttribute(start.Name.Local, "color", v, d.InputOffset(), err)
	}

	if v, ok := findAttr(start, "fill"); ok {
		fill, err := strconv.Atoi(v)
		if err != nil {
			return rnotefmt.NewInvalidAttribute(start.Name.Local, "fill", v, d.InputOffset(), err)
		}
		s.Fill = &fill
	}

	if v, err = requiredAttr(d, start, "width"); err != nil {
		return err
	}
	s.Widths = parseFloats(v)

	if v, ok := findAttr(start, "fn"); ok {
		s.AudioFilename = v
	}

	text, err := textContent(d)
	if err != nil {
		return err
	}
	s.Coords = parseCoords(text)
	return nil
}

func (t *Text) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var err error
	if t.Font, err = requiredAttr(d, start, "font"); err != nil {
		return err
	}
	if t.Size, err = floatAttr(d, start, "size"); err != nil {
		return err
	}
	if t.X, err = floatAttr(d, start, "x"); err != nil {
		return err
	}
	if t.Y, err = floatAttr(d, start, "y"); err != nil {
		return err
	}
	v, err := requiredAttr(d, start, "color")
	if err != nil {
		return err
	}
	if t.Color, err = ParseStrokeColor(v); err != nil {
		return rnotefmt.NewInvalidAttribute(start.Name.Local, "color", v, d.InputOffset(), err)
	}

	if t.Text, err = textContent(d); err != nil {
		return err
	}
	return nil
}

func (i *Image) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var err error
	if i.Left, err = floatAttr(d, start, "left"); err != nil {
		return err
	}
	if i.Top, err = floatAttr(d, start, "top"); err != nil {
		return err
	}
	if i.Right, err = floatAttr(d, start, "right"); err != nil {
		return err
	}
	if i.Bottom, err = floatAttr(d, start, "bottom"); err != nil {
		return err
	}

	if i.Data, err = textContent(d); err != nil {
		return err
	}
	return nil
}
