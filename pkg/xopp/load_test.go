package xopp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flxzt/rnotefmt"
	"github.com/flxzt/rnotefmt/internal/compress"
)

// pack wraps a raw XML document in the gzip envelope, like a saved file.
func pack(t *testing.T, doc string) []byte {
	t.Helper()
	data, err := compress.Compress([]byte(doc), "")
	require.NoError(t, err)
	return data
}

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<xournal fileversion="4">
<title>Test Notes</title>
<preview>
aGVsbG8=
</preview>
<page width="595.27559" height="841.88976">
<background type="solid" color="#ffffffff" style="lined"/>
<layer name="Layer 1">
<stroke tool="pen" color="blue" width="1.41 0.8 0.9">10 20 30.5 40.25</stroke>
<text font="Sans" size="12" x="50" y="60" color="#00c0ffff">hello world</text>
<image left="1" top="2" right="3" bottom="4">aW1n</image>
</layer>
<layer/>
</page>
</xournal>`

func TestReadDocument(t *testing.T) {
	root, err := Read(pack(t, sampleDoc))
	require.NoError(t, err)

	require.Equal(t, "4", root.FileVersion)
	require.Equal(t, "Test Notes", root.Title)
	require.Equal(t, "aGVsbG8=", root.Preview, "preview should be trimmed")
	require.Len(t, root.Pages, 1)

	page := root.Pages[0]
	require.Equal(t, 595.27559, page.Width)
	require.Equal(t, 841.88976, page.Height)

	bg := page.Background
	require.Equal(t, BackgroundSolid, bg.Type)
	require.Equal(t, Color{0xff, 0xff, 0xff, 0xff}, bg.Color)
	require.Equal(t, StyleLined, bg.Style)
	require.Nil(t, bg.Name)

	// the empty layer is kept in memory, only writing drops it
	require.Len(t, page.Layers, 2)

	layer := page.Layers[0]
	require.NotNil(t, layer.Name)
	require.Equal(t, "Layer 1", *layer.Name)
	require.Len(t, layer.Strokes, 1)
	require.Len(t, layer.Texts, 1)
	require.Len(t, layer.Images, 1)

	stroke := layer.Strokes[0]
	require.Equal(t, Pen, stroke.Tool)
	require.Equal(t, Color{0x33, 0x33, 0xcc, 0xff}, stroke.Color, "keyword blue")
	require.Equal(t, []float64{1.41, 0.8, 0.9}, stroke.Widths)
	require.Equal(t, []Point{{10, 20}, {30.5, 40.25}}, stroke.Coords)
	require.Nil(t, stroke.Fill)

	text := layer.Texts[0]
	require.Equal(t, "Sans", text.Font)
	require.Equal(t, 12.0, text.Size)
	require.Equal(t, 50.0, text.X)
	require.Equal(t, 60.0, text.Y)
	require.Equal(t, Color{0x00, 0xc0, 0xff, 0xff}, text.Color)
	require.Equal(t, "hello world", text.Text)

	image := layer.Images[0]
	require.Equal(t, 1.0, image.Left)
	require.Equal(t, 2.0, image.Top)
	require.Equal(t, 3.0, image.Right)
	require.Equal(t, 4.0, image.Bottom)
	require.Equal(t, "aW1n", image.Data)
}

func TestReadUnknownElements(t *testing.T) {
	doc := `<xournal fileversion="4">
<metadata><author>nobody</author></metadata>
<title>t</title>
<page width="100" height="100">
<sizechange/>
<background type="pdf"/>
<layer>
<widget><nested attr="1">deep</nested></widget>
<stroke tool="pen" color="black" width="1">1 2</stroke>
</layer>
</page>
</xournal>`

	root, err := Read(pack(t, doc))
	require.NoError(t, err)
	require.Len(t, root.Pages, 1)
	require.Equal(t, BackgroundPdf, root.Pages[0].Background.Type)
	require.Len(t, root.Pages[0].Layers, 1)
	require.Len(t, root.Pages[0].Layers[0].Strokes, 1)
}

func TestReadStrokeLeniency(t *testing.T) {
	t.Run("unknown tool keeps default", func(t *testing.T) {
		doc := `<x><page width="1" height="1"><background type="pdf"/><layer>
<stroke tool="chainsaw" color="black" width="1">1 2</stroke>
</layer></page></x>`
		root, err := Read(pack(t, doc))
		require.NoError(t, err)
		require.Equal(t, Pen, root.Pages[0].Layers[0].Strokes[0].Tool)
	})

	t.Run("highlighter", func(t *testing.T) {
		doc := `<x><page width="1" height="1"><background type="pdf"/><layer>
<stroke tool="highlighter" color="black" width="1">1 2</stroke>
</layer></page></x>`
		root, err := Read(pack(t, doc))
		require.NoError(t, err)
		require.Equal(t, Highlighter, root.Pages[0].Layers[0].Strokes[0].Tool)
	})

	t.Run("bad width tokens dropped", func(t *testing.T) {
		doc := `<x><page width="1" height="1"><background type="pdf"/><layer>
<stroke tool="pen" color="black" width="1.41 abc 2.0">1 2</stroke>
</layer></page></x>`
		root, err := Read(pack(t, doc))
		require.NoError(t, err)
		require.Equal(t, []float64{1.41, 2.0}, root.Pages[0].Layers[0].Strokes[0].Widths)
	})

	t.Run("audio filename", func(t *testing.T) {
		doc := `<x><page width="1" height="1"><background type="pdf"/><layer>
<stroke tool="pen" color="black" width="1" fn="rec.ogg" ts="0">1 2</stroke>
</layer></page></x>`
		root, err := Read(pack(t, doc))
		require.NoError(t, err)
		require.Equal(t, "rec.ogg", root.Pages[0].Layers[0].Strokes[0].AudioFilename)
		require.Zero(t, root.Pages[0].Layers[0].Strokes[0].Timestamp, "ts attribute is ignored")
	})

	t.Run("short hex colors load", func(t *testing.T) {
		// some apps write six digit colors without an alpha value
		doc := `<x><page width="1" height="1">
<background type="solid" color="#ffffff" style="plain"/>
<layer>
<stroke tool="pen" color="#fff" width="1">1 2</stroke>
</layer></page></x>`
		root, err := Read(pack(t, doc))
		require.NoError(t, err)
		require.Equal(t, Color{0x00, 0xff, 0xff, 0xff}, root.Pages[0].Background.Color)
		require.Equal(t, Color{0x00, 0x00, 0x0f, 0xff}, root.Pages[0].Layers[0].Strokes[0].Color)
	})

	t.Run("fill", func(t *testing.T) {
		doc := `<x><page width="1" height="1"><background type="pdf"/><layer>
<stroke tool="pen" color="black" fill="128" width="1">1 2</stroke>
</layer></page></x>`
		root, err := Read(pack(t, doc))
		require.NoError(t, err)
		fill := root.Pages[0].Layers[0].Strokes[0].Fill
		require.NotNil(t, fill)
		require.Equal(t, 128, *fill)
	})
}

func TestReadBackgroundLeniency(t *testing.T) {
	t.Run("unknown style falls back to plain", func(t *testing.T) {
		doc := `<x><page width="1" height="1">
<background type="solid" color="white" style="swirly"/>
</page></x>`
		root, err := Read(pack(t, doc))
		require.NoError(t, err)
		require.Equal(t, StylePlain, root.Pages[0].Background.Style)
	})

	t.Run("missing style falls back to plain", func(t *testing.T) {
		doc := `<x><page width="1" height="1">
<background type="solid" color="white"/>
</page></x>`
		root, err := Read(pack(t, doc))
		require.NoError(t, err)
		require.Equal(t, StylePlain, root.Pages[0].Background.Style)
	})

	t.Run("pixmap", func(t *testing.T) {
		doc := `<x><page width="1" height="1">
<background name="paper" type="pixmap" domain="attach" filename="bg.png"/>
</page></x>`
		root, err := Read(pack(t, doc))
		require.NoError(t, err)
		bg := root.Pages[0].Background
		require.Equal(t, BackgroundPixmap, bg.Type)
		require.Equal(t, DomainAttach, bg.Domain)
		require.Equal(t, "bg.png", bg.Filename)
		require.NotNil(t, bg.Name)
		require.Equal(t, "paper", *bg.Name)
	})
}

func TestReadHardFailures(t *testing.T) {
	missing := []struct {
		name string
		doc  string
	}{
		{"page width", `<x><page height="1"><background type="pdf"/></page></x>`},
		{"background type", `<x><page width="1" height="1"><background/></page></x>`},
		{"solid color", `<x><page width="1" height="1"><background type="solid" style="plain"/></page></x>`},
		{"pixmap domain", `<x><page width="1" height="1"><background type="pixmap" filename="f"/></page></x>`},
		{"pixmap filename", `<x><page width="1" height="1"><background type="pixmap" domain="attach"/></page></x>`},
		{"stroke tool", `<x><page width="1" height="1"><background type="pdf"/><layer><stroke color="black" width="1">1 2</stroke></layer></page></x>`},
		{"stroke color", `<x><page width="1" height="1"><background type="pdf"/><layer><stroke tool="pen" width="1">1 2</stroke></layer></page></x>`},
		{"stroke width", `<x><page width="1" height="1"><background type="pdf"/><layer><stroke tool="pen" color="black">1 2</stroke></layer></page></x>`},
		{"text font", `<x><page width="1" height="1"><background type="pdf"/><layer><text size="12" x="1" y="1" color="black">t</text></layer></page></x>`},
		{"image edge", `<x><page width="1" height="1"><background type="pdf"/><layer><image left="1" top="2" right="3">d</image></layer></page></x>`},
	}
	for _, tt := range missing {
		t.Run("missing "+tt.name, func(t *testing.T) {
			_, err := Read(pack(t, tt.doc))
			require.Error(t, err)
			require.True(t, rnotefmt.IsMissingAttribute(err), "got %v", err)
		})
	}

	invalid := []struct {
		name string
		doc  string
	}{
		{"page width", `<x><page width="abc" height="1"><background type="pdf"/></page></x>`},
		{"background type", `<x><page width="1" height="1"><background type="space"/></page></x>`},
		{"background color", `<x><page width="1" height="1"><background type="solid" color="octarine" style="plain"/></page></x>`},
		{"pixmap domain", `<x><page width="1" height="1"><background type="pixmap" domain="internet" filename="f"/></page></x>`},
		{"stroke color", `<x><page width="1" height="1"><background type="pdf"/><layer><stroke tool="pen" color="octarine" width="1">1 2</stroke></layer></page></x>`},
		{"stroke fill", `<x><page width="1" height="1"><background type="pdf"/><layer><stroke tool="pen" color="black" fill="ff" width="1">1 2</stroke></layer></page></x>`},
		{"text size", `<x><page width="1" height="1"><background type="pdf"/><layer><text font="Sans" size="big" x="1" y="1" color="black">t</text></layer></page></x>`},
	}
	for _, tt := range invalid {
		t.Run("invalid "+tt.name, func(t *testing.T) {
			_, err := Read(pack(t, tt.doc))
			require.Error(t, err)
			require.True(t, rnotefmt.IsInvalidAttribute(err), "got %v", err)
		})
	}
}

func TestReadMalformed(t *testing.T) {
	t.Run("not gzip", func(t *testing.T) {
		_, err := Read([]byte("<xournal></xournal>"))
		require.Error(t, err)
		require.True(t, rnotefmt.IsMalformedPayload(err), "got %v", err)
	})

	t.Run("broken markup", func(t *testing.T) {
		_, err := Read(pack(t, `<xournal><page width="1"`))
		require.Error(t, err)
		require.True(t, rnotefmt.IsMalformedPayload(err), "got %v", err)
	})

	t.Run("no document element", func(t *testing.T) {
		_, err := Read(pack(t, `   `))
		require.Error(t, err)
		require.True(t, rnotefmt.IsMalformedPayload(err), "got %v", err)
	})

	t.Run("not utf8", func(t *testing.T) {
		_, err := Read(pack(t, "<x>\xff\xfe</x>"))
		require.Error(t, err)
		require.True(t, rnotefmt.IsMalformedPayload(err), "got %v", err)
	})
}

func TestReadLeavesReceiverOnError(t *testing.T) {
	root := Root{Title: "before"}
	err := root.UnmarshalBinary(pack(t, `<x><page width="abc" height="1"/></x>`))
	require.Error(t, err)
	require.Equal(t, "before", root.Title, "failed load must not modify the document")
}
