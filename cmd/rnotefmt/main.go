package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/flxzt/rnotefmt"
	"github.com/flxzt/rnotefmt/internal/compress"
	"github.com/flxzt/rnotefmt/internal/fs"
	"github.com/flxzt/rnotefmt/internal/imaging"
	"github.com/flxzt/rnotefmt/pkg/rnote"
	"github.com/flxzt/rnotefmt/pkg/xopp"
)

const (
	checkmark = "✓"
	crossmark = "✗"
)

func main() {
	app := kingpin.New("rnotefmt", "Inspect and convert note documents")
	app.HelpFlag.Short('h')
	logLevel := app.Flag("log", "Log level (debug, info, warning, error)").Default("warning").String()

	info := app.Command("info", "Show a summary of one or more documents").Default()
	var (
		infoFiles    = info.Arg("file", "Documents to inspect").Required().ExistingFiles()
		infoValidate = info.Flag("validate", "Also check the document content").Bool()
	)

	preview := app.Command("preview", "Extract the embedded preview image")
	var (
		previewFile  = preview.Arg("file", "Document to read").Required().ExistingFile()
		previewOut   = preview.Flag("output", "Output file (PNG)").Short('o').String()
		previewWidth = preview.Flag("width", "Scale to this width in pixels").Int()
	)

	repack := app.Command("repack", "Rewrite a document in canonical form")
	var (
		repackFile = repack.Arg("file", "Document to rewrite").Required().ExistingFile()
		repackOut  = repack.Flag("output", "Output file, defaults to the input").Short('o').String()
	)

	migrate := app.Command("migrate", "Rewrite native documents under the current schema version")
	var (
		migrateFiles = migrate.Arg("file", "Documents to migrate").Required().ExistingFiles()
		migrateOut   = migrate.Flag("output", "Output directory").Short('o').Default(".").String()
	)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	rnotefmt.SetLogLevel(*logLevel)

	var err error
	switch command {
	case "info":
		err = doInfo(*infoFiles, *infoValidate)
	case "preview":
		err = doPreview(*previewFile, *previewOut, *previewWidth)
	case "repack":
		err = doRepack(*repackFile, *repackOut)
	case "migrate":
		err = doMigrate(*migrateFiles, *migrateOut)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// isNative tells native and foreign documents apart by their payload,
// JSON against XML.
func isNative(data []byte) (bool, error) {
	raw, err := compress.Decompress(data)
	if err != nil {
		return false, rnotefmt.NewMalformedPayload(err)
	}
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{', nil
}

// info -------------------------------------------------------------------

func doInfo(paths []string, validate bool) error {
	for _, path := range paths {
		if err := showInfo(path, validate); err != nil {
			return rnotefmt.Wrap(err, "%v", path)
		}
	}
	return nil
}

func showInfo(path string, validate bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	native, err := isNative(data)
	if err != nil {
		return err
	}
	if native {
		return showNativeInfo(path, data)
	}
	return showForeignInfo(path, data, validate)
}

func showForeignInfo(path string, data []byte, validate bool) error {
	root, err := xopp.Read(data)
	if err != nil {
		return err
	}

	var strokes, texts, images int
	for _, p := range root.Pages {
		for _, l := range p.Layers {
			strokes += len(l.Strokes)
			texts += len(l.Texts)
			images += len(l.Images)
		}
	}

	fmt.Printf("%v: Xournal document (file version %v)\n", path, root.FileVersion)
	fmt.Printf("  title:   %v\n", root.Title)
	fmt.Printf("  preview: %v\n", yesNo(root.Preview != ""))
	fmt.Printf("  pages:   %v\n", len(root.Pages))
	fmt.Printf("  content: %v strokes, %v texts, %v images\n", strokes, texts, images)

	if validate {
		if err := root.Validate(); err != nil {
			fmt.Printf("%v invalid: %v\n", crossmark, err)
			return err
		}
		fmt.Printf("%v valid\n", checkmark)
	}
	return nil
}

func showNativeInfo(path string, data []byte) error {
	version, err := rnote.ReadVersion(data)
	if err != nil {
		return err
	}
	f, err := rnote.Read(data)
	if err != nil {
		return err
	}

	occupied, vacant := countStrokes(f)
	fmt.Printf("%v: native document (version %v)\n", path, version)
	if version != rnote.CurrentVersion {
		fmt.Printf("  loads as: %v\n", rnote.CurrentVersion)
	}
	fmt.Printf("  strokes:  %v (%v vacant slots)\n", occupied, vacant)
	return nil
}

// countStrokes counts the occupied and vacant slots of the stroke store.
func countStrokes(f *rnote.File) (occupied, vacant int) {
	store, ok := f.StoreSnapshot.(map[string]interface{})
	if !ok {
		return 0, 0
	}
	components, ok := store["stroke_components"].([]interface{})
	if !ok {
		return 0, 0
	}
	for _, entry := range components {
		slot, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		if slot["value"] == nil {
			vacant++
		} else {
			occupied++
		}
	}
	return occupied, vacant
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// preview ----------------------------------------------------------------

func doPreview(path, out string, width int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	root, err := xopp.Read(data)
	if err != nil {
		return rnotefmt.Wrap(err, "%v", path)
	}
	if root.Preview == "" {
		return fmt.Errorf("%v has no embedded preview", path)
	}

	// some apps wrap the base64 data across lines
	clean := strings.Map(dropSpace, root.Preview)
	raw, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return rnotefmt.Wrap(err, "decode preview")
	}
	img, err := imaging.Decode(raw)
	if err != nil {
		return rnotefmt.Wrap(err, "decode preview")
	}
	if width > 0 {
		img = imaging.Resize(img, width)
	}

	if out == "" {
		out = replaceExt(path, ".png")
	}
	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, img); err != nil {
		return err
	}
	if err := fs.WriteFile(out, buf.Bytes()); err != nil {
		return err
	}

	fmt.Printf("%v preview saved as %q\n", checkmark, out)
	return nil
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// repack -----------------------------------------------------------------

func doRepack(path, out string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	root, err := xopp.Read(data)
	if err != nil {
		return rnotefmt.Wrap(err, "%v", path)
	}

	packed, err := root.MarshalBinary()
	if err != nil {
		return err
	}
	if out == "" {
		out = path
	}
	if err := fs.WriteFile(out, packed); err != nil {
		return err
	}

	fmt.Printf("%v document saved as %q\n", checkmark, out)
	return nil
}

// migrate ----------------------------------------------------------------

func doMigrate(paths []string, outDir string) error {
	var group errgroup.Group
	for _, path := range paths {
		path := path
		group.Go(func() error {
			return migrateFile(path, outDir)
		})
	}
	return group.Wait()
}

func migrateFile(path, outDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	version, err := rnote.ReadVersion(data)
	if err != nil {
		return rnotefmt.Wrap(err, "%v", path)
	}
	f, err := rnote.Read(data)
	if err != nil {
		fmt.Printf("%v failed to load %q: %v\n", crossmark, path, err)
		return err
	}

	name := filepath.Base(path)
	out := filepath.Join(outDir, name)
	packed, err := rnote.Marshal(f, name)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(out, packed); err != nil {
		return err
	}

	fmt.Printf("%v %q: %v -> %v, saved as %q\n", checkmark, path, version, rnote.CurrentVersion, out)
	return nil
}
