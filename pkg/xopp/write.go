package xopp

import (
	"encoding/xml"
	"io"
	"strconv"
)

const generatorComment = " Xournal document - see https://github.com/xournalpp/xournalpp "

// writeXML writes the document tree as indented XML.
func writeXML(w io.Writer, r *Root) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	e := xml.NewEncoder(w)
	e.Indent("", "    ")
	if err := e.EncodeToken(xml.Comment(generatorComment)); err != nil {
		return err
	}
	if err := e.Encode(r); err != nil {
		return err
	}
	if err := e.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func element(name string) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}}
}

func (r *Root) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	version := r.FileVersion
	if version == "" {
		version = FileVersion
	}
	start := xml.StartElement{
		Name: xml.Name{Local: "xournal"},
		Attr: []xml.Attr{attr("fileversion", version)},
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(r.Title, element("title")); err != nil {
		return err
	}
	if r.Preview != "" {
		if err := e.EncodeElement(r.Preview, element("preview")); err != nil {
			return err
		}
	}
	for i := range r.Pages {
		if err := e.EncodeElement(&r.Pages[i], element("page")); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (p *Page) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{
		attr("width", fmtFloat(p.Width)),
		attr("height", fmtFloat(p.Height)),
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(&p.Background, element("background")); err != nil {
		return err
	}
	for i := range p.Layers {
		l := &p.Layers[i]
		if l.IsEmpty() {
			continue
		}
		if err := e.EncodeElement(l, element("layer")); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (b *Background) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if b.Name != nil {
		start.Attr = append(start.Attr, attr("name", *b.Name))
	}
	start.Attr = append(start.Attr, attr("type", b.Type.String()))
	switch b.Type {
	case BackgroundSolid:
		start.Attr = append(start.Attr,
			attr("color", b.Color.String()),
			attr("style", b.Style.String()))
	case BackgroundPixmap:
		start.Attr = append(start.Attr,
			attr("domain", b.Domain.String()),
			attr("filename", b.Filename))
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// MarshalXML writes the layer content in a fixed order:
// strokes first, then texts, then images.
func (l *Layer) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if l.Name != nil {
		start.Attr = append(start.Attr, attr("name", *l.Name))
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for i := range l.Strokes {
		if err := e.EncodeElement(&l.Strokes[i], element("stroke")); err != nil {
			return err
		}
	}
	for i := range l.Texts {
		if err := e.EncodeElement(&l.Texts[i], element("text")); err != nil {
			return err
		}
	}
	for i := range l.Images {
		if err := e.EncodeElement(&l.Images[i], element("image")); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (s *Stroke) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr,
		attr("tool", s.Tool.String()),
		attr("color", s.Color.String()))
	if s.Fill != nil {
		start.Attr = append(start.Attr, attr("fill", strconv.Itoa(*s.Fill)))
	}
	start.Attr = append(start.Attr, attr("width", fmtFloats(s.Widths)))
	if s.AudioFilename != "" {
		start.Attr = append(start.Attr, attr("fn", s.AudioFilename))
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.CharData(fmtCoords(s.Coords))); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (t *Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr,
		attr("font", t.Font),
		attr("size", fmtFloat(t.Size)),
		attr("x", fmtFloat(t.X)),
		attr("y", fmtFloat(t.Y)),
		attr("color", t.Color.String()))

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.CharData(t.Text)); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (i *Image) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr,
		attr("left", fmtFloat(i.Left)),
		attr("top", fmtFloat(i.Top)),
		attr("right", fmtFloat(i.Right)),
		attr("bottom", fmtFloat(i.Bottom)))

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.CharData(i.Data)); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}
