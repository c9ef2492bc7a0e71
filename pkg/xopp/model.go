package xopp

import (
	"github.com/flxzt/rnotefmt"
)

// Tool is the drawing tool a stroke was made with.
type Tool int

const (
	Pen Tool = iota
	Highlighter
	Eraser
)

func (t Tool) String() string {
	switch t {
	case Pen:
		return "pen"
	case Highlighter:
		return "highlighter"
	case Eraser:
		return "eraser"
	default:
		return "UNKNOWN"
	}
}

// toolFromName looks up a tool by its name in the document.
// Unknown names are tolerated, the caller keeps its default.
func toolFromName(s string) (Tool, bool) {
	switch s {
	case "pen":
		return Pen, true
	case "highlighter":
		return Highlighter, true
	case "eraser":
		return Eraser, true
	}
	return Pen, false
}

// BackgroundType tells what kind of background a page has.
type BackgroundType int

const (
	BackgroundSolid BackgroundType = iota
	BackgroundPixmap
	BackgroundPdf
)

func (b BackgroundType) String() string {
	switch b {
	case BackgroundSolid:
		return "solid"
	case BackgroundPixmap:
		return "pixmap"
	case BackgroundPdf:
		return "pdf"
	default:
		return "UNKNOWN"
	}
}

// BackgroundStyle is the ruling pattern drawn on a solid background.
type BackgroundStyle int

const (
	StylePlain BackgroundStyle = iota
	StyleLined
	StyleRuled
	StyleStaves
	StyleGraph
	StyleDotted
	StyleIsoDotted
	StyleIsoGraph
)

func (s BackgroundStyle) String() string {
	switch s {
	case StylePlain:
		return "plain"
	case StyleLined:
		return "lined"
	case StyleRuled:
		return "ruled"
	case StyleStaves:
		return "staves"
	case StyleGraph:
		return "graph"
	case StyleDotted:
		return "dotted"
	case StyleIsoDotted:
		return "isodotted"
	case StyleIsoGraph:
		return "isograph"
	default:
		return "UNKNOWN"
	}
}

func backgroundStyleFromName(s string) (BackgroundStyle, bool) {
	switch s {
	case "plain":
		return StylePlain, true
	case "lined":
		return StyleLined, true
	case "ruled":
		return StyleRuled, true
	case "staves":
		return StyleStaves, true
	case "graph":
		return StyleGraph, true
	case "dotted":
		return StyleDotted, true
	case "isodotted":
		return StyleIsoDotted, true
	case "isograph":
		return StyleIsoGraph, true
	}
	return StylePlain, false
}

// PixmapDomain tells how the filename of a pixmap background is to be
// resolved.
type PixmapDomain int

const (
	DomainAbsolute PixmapDomain = iota
	DomainAttach
	DomainClone
)

func (d PixmapDomain) String() string {
	switch d {
	case DomainAbsolute:
		return "absolute"
	case DomainAttach:
		return "attach"
	case DomainClone:
		return "clone"
	default:
		return "UNKNOWN"
	}
}

func pixmapDomainFromName(s string) (PixmapDomain, bool) {
	switch s {
	case "absolute":
		return DomainAbsolute, true
	case "attach":
		return DomainAttach, true
	case "clone":
		return DomainClone, true
	}
	return DomainAbsolute, false
}

// Root is a complete document with all of its pages.
type Root struct {
	// FileVersion is the format version the document was saved with.
	FileVersion string
	Title       string
	// Preview is a base64 encoded raster image of the first page,
	// without surrounding whitespace. Empty if the document has none.
	Preview string
	Pages   []Page
}

// Validate checks the document for values that cannot be saved.
func (r *Root) Validate() error {
	for i := range r.Pages {
		if err := r.Pages[i].Validate(); err != nil {
			return rnotefmt.Wrap(err, "page %v", i)
		}
	}
	return nil
}

// Page is a single page with its background and content layers.
type Page struct {
	// Width and Height are the page size in points.
	Width      float64
	Height     float64
	Background Background
	Layers     []Layer
}

func (p *Page) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return rnotefmt.NewValidationError("page size must be positive, got %v x %v", p.Width, p.Height)
	}
	if err := p.Background.Validate(); err != nil {
		return rnotefmt.Wrap(err, "background")
	}
	for i := range p.Layers {
		if err := p.Layers[i].Validate(); err != nil {
			return rnotefmt.Wrap(err, "layer %v", i)
		}
	}
	return nil
}

// Background is the background of a page. Type tells which of the
// remaining fields apply.
type Background struct {
	// Name is optional, nil means the attribute is absent.
	Name *string
	Type BackgroundType
	// Color and Style describe a solid background.
	Color Color
	Style BackgroundStyle
	// Domain and Filename locate the image of a pixmap background.
	Domain   PixmapDomain
	Filename string
}

func (b *Background) Validate() error {
	switch b.Type {
	case BackgroundSolid:
		if b.Style < StylePlain || b.Style > StyleIsoGraph {
			return rnotefmt.NewValidationError("invalid background style %v", int(b.Style))
		}
	case BackgroundPixmap:
		if b.Domain < DomainAbsolute || b.Domain > DomainClone {
			return rnotefmt.NewValidationError("invalid pixmap domain %v", int(b.Domain))
		}
		if b.Filename == "" {
			return rnotefmt.NewValidationError("pixmap background must have a filename")
		}
	case BackgroundPdf:
		// carries no attributes of its own
	default:
		return rnotefmt.NewValidationError("invalid background type %v", int(b.Type))
	}
	return nil
}

// Layer is one content layer of a page.
type Layer struct {
	// Name is optional, nil means the attribute is absent.
	Name    *string
	Strokes []Stroke
	Texts   []Text
	Images  []Image
}

// IsEmpty tells if the layer has no content at all.
// Empty layers are not written to documents.
func (l *Layer) IsEmpty() bool {
	return len(l.Strokes) == 0 && len(l.Texts) == 0 && len(l.Images) == 0
}

func (l *Layer) Validate() error {
	for i := range l.Strokes {
		if err := l.Strokes[i].Validate(); err != nil {
			return rnotefmt.Wrap(err, "stroke %v", i)
		}
	}
	for i := range l.Texts {
		if err := l.Texts[i].Validate(); err != nil {
			return rnotefmt.Wrap(err, "text %v", i)
		}
	}
	for i := range l.Images {
		if err := l.Images[i].Validate(); err != nil {
			return rnotefmt.Wrap(err, "image %v", i)
		}
	}
	return nil
}

// Stroke is a single continuous pen stroke.
type Stroke struct {
	Tool  Tool
	Color Color
	// Fill is the fill opacity for closed shapes, nil if the stroke is
	// not filled.
	Fill *int
	// Widths holds the base width of the stroke, optionally followed by
	// one width per coordinate pair for pressure sensitive strokes.
	Widths []float64
	// AudioFilename links a recording to the stroke. Empty for none.
	AudioFilename string
	// Timestamp is the position of the stroke in its audio recording, in
	// milliseconds. Nothing fills it in yet, the ts attribute is ignored
	// on load and the field is never written.
	Timestamp uint64
	Coords    []Point
}

func (s *Stroke) Validate() error {
	if s.Tool < Pen || s.Tool > Eraser {
		return rnotefmt.NewValidationError("invalid tool %v", int(s.Tool))
	}
	if len(s.Widths) == 0 {
		return rnotefmt.NewValidationError("stroke must have a width")
	}
	if len(s.Coords) == 0 {
		return rnotefmt.NewValidationError("stroke must have coordinates")
	}
	if s.Fill != nil && (*s.Fill < -1 || *s.Fill > 255) {
		return rnotefmt.NewValidationError("fill %v out of range -1..255", *s.Fill)
	}
	return nil
}

// Point is a single x/y coordinate pair.
type Point struct {
	X float64
	Y float64
}

// Text is a block of text placed on a page.
type Text struct {
	Font string
	// Size is the font size in points.
	Size float64
	// X and Y position the top left corner of the text.
	X     float64
	Y     float64
	Color Color
	Text  string
}

func (t *Text) Validate() error {
	if t.Font == "" {
		return rnotefmt.NewValidationError("text must have a font")
	}
	if t.Size <= 0 {
		return rnotefmt.NewValidationError("font size must be positive, got %v", t.Size)
	}
	return nil
}

// Image is a raster image placed on a page.
type Image struct {
	// Left, Top, Right and Bottom are the edges of the image on the page.
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
	// Data is the image content, base64 encoded.
	Data string
}

func (i *Image) Validate() error {
	if i.Right <= i.Left || i.Bottom <= i.Top {
		return rnotefmt.NewValidationError("image area is empty")
	}
	if i.Data == "" {
		return rnotefmt.NewValidationError("image has no data")
	}
	return nil
}
