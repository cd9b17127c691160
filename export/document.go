package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

const (
	docOpen  = "<decompilertest>"
	docClose = "</decompilertest>"
)

// document accumulates the fixture as an ordered list of text lines. Pieces
// are appended strictly in traversal order and joined with newlines on write.
//
// Structural elements are rendered through etree so that attribute and text
// escaping is never hand-rolled, raw hex lines are spliced in between.
type document struct {
	lines []string
}

func (d *document) appendRaw(lines ...string) {
	d.lines = append(d.lines, lines...)
}

func (d *document) appendDoc(x *etree.Document) error {
	rendered, err := renderLines(x)
	if err != nil {
		return err
	}
	d.lines = append(d.lines, rendered...)
	return nil
}

// writeFile writes the joined lines to a temporary file next to path and
// renames it into place, so a failed run never leaves a half-written fixture
// behind as current. Any existing file at path is replaced. Returns the
// number of lines written.
func (d *document) writeFile(path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("unable to create output directory: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("unable to create temporary fixture file: %w", err)
	}
	tmp := f.Name()

	_, err = f.WriteString(strings.Join(d.lines, "\n"))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, 0644)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("unable to write fixture file %q: %w", path, err)
	}
	return len(d.lines), nil
}

// renderLines serializes a single-rooted document into text lines.
func renderLines(x *etree.Document) ([]string, error) {
	s, err := x.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("unable to serialize fixture element: %w", err)
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n"), nil
}

// renderOpenTag serializes a childless element as an opening tag. etree
// collapses empty elements into self-closing form, expand the tail by hand.
func renderOpenTag(x *etree.Document) (string, error) {
	lines, err := renderLines(x)
	if err != nil {
		return "", err
	}
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "/>") {
		return "", fmt.Errorf("unexpected open tag serialization: %q", lines)
	}
	return strings.TrimSuffix(lines[0], "/>") + ">", nil
}

func binaryimageOpen(arch string) (string, error) {
	x := etree.NewDocument()
	x.CreateElement("binaryimage").CreateAttr("arch", arch)
	return renderOpenTag(x)
}

// bytechunkDoc wraps one chunk's hex lines. The element text starts and ends
// with a newline so the opening and closing tags keep their own lines.
func bytechunkDoc(space string, addr uint64, hex []string) *etree.Document {
	x := etree.NewDocument()
	e := x.CreateElement("bytechunk")
	e.CreateAttr("space", space)
	e.CreateAttr("offset", fmt.Sprintf("0x%x", addr))
	e.CreateAttr("readonly", "true")
	e.SetText("\n" + strings.Join(hex, "\n") + "\n")
	return x
}

func symbolDoc(space string, s symbol) *etree.Document {
	x := etree.NewDocument()
	e := x.CreateElement("symbol")
	e.CreateAttr("space", space)
	e.CreateAttr("offset", fmt.Sprintf("0x%x", s.offset))
	e.CreateAttr("name", s.name)
	return x
}

func scriptDoc(name string) *etree.Document {
	x := etree.NewDocument()
	e := x.CreateElement("script")
	for _, com := range scriptCommands(name) {
		e.CreateElement("com").SetText(com)
	}
	x.Indent(2)
	return x
}

func stringmatchDoc(name string) *etree.Document {
	x := etree.NewDocument()
	e := x.CreateElement("stringmatch")
	e.CreateAttr("name", name+" output")
	e.CreateAttr("min", fmt.Sprintf("%d", matchMin))
	e.CreateAttr("max", fmt.Sprintf("%d", matchMax))
	e.SetText(name)
	return x
}
