package metadata

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/ardmeta/internal/logging"
	"github.com/vvka-141/ardmeta/internal/stack"
	"github.com/vvka-141/ardmeta/internal/tree"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// ParseFile reads and maps the metadata document at path.
// Errors of type *Error carry path in FilePath.
func ParseFile(path string, logger ardmeta.Logger) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f, logger)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.FilePath = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse builds the element tree from r and maps it into a Document.
func Parse(r io.Reader, logger ardmeta.Logger) (*Document, error) {
	root, err := tree.Build(r, tree.WithMaxDepth(MaxStackDepth))
	if err != nil {
		return nil, wrapBuildError(err)
	}
	return Map(root, logger)
}

// Map walks a built element tree and populates a new Document.
// The document is returned only when the whole traversal succeeds.
func Map(root *tree.Node, logger ardmeta.Logger) (*Document, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if root == nil || root.Kind != tree.ElementNode {
		return nil, newError(KindMalformedDocument, "", "no root element")
	}
	if root.Name != elemRoot {
		e := newError(KindMalformedDocument, root.Name, "root element must be <%s>", elemRoot)
		e.Line = root.Line
		return nil, e
	}

	t := &traversal{
		log:        logger,
		ns:         root.Space,
		open:       stack.New(MaxStackDepth),
		sceneIndex: -1,
		doc: &Document{
			Namespace: root.Space,
			Version:   SchemaVersion,
			Tile:      TileSection{Global: NewTileGlobal()},
		},
	}
	if root.Space != Namespace {
		logger.Warn("document namespace %q differs from %q", root.Space, Namespace)
	}
	if v, ok := root.Attr("version"); ok {
		t.doc.Version = v
	}

	if err := t.open.Push(root.Name); err != nil {
		return nil, wrapBuildError(err)
	}
	for _, child := range root.Elements() {
		if err := t.visit(child); err != nil {
			return nil, err
		}
	}
	if _, err := t.open.Pop(); err != nil {
		return nil, wrapBuildError(err)
	}

	if !t.tileSeen {
		return nil, newError(KindMissingRequiredContent, elemTile, "document has no tile section")
	}
	return t.doc, nil
}

// traversal is the state carried through one depth-first walk.
type traversal struct {
	log  ardmeta.Logger
	doc  *Document
	ns   string
	open *stack.Stack

	inTile   bool
	inScene  bool
	inGlobal bool
	inBands  bool

	// sceneIndex is the scene being populated, -1 before the first one.
	sceneIndex int

	tileSeen      bool
	sectionGlobal bool // current section already had a global block
	sectionBands  bool // current section already had a bands block
	bandKeys      map[string]bool
}

func (t *traversal) visit(n *tree.Node) error {
	if t.foreign(n) {
		return nil
	}
	if err := t.open.Push(n.Name); err != nil {
		return wrapBuildError(err)
	}

	consumed, err := t.enter(n)
	if err != nil {
		return err
	}
	if !consumed {
		for _, child := range n.Elements() {
			if err := t.visit(child); err != nil {
				return err
			}
		}
	}

	name, err := t.open.Pop()
	if err != nil {
		return wrapBuildError(err)
	}
	t.leave(name)
	return nil
}

// enter handles n on the way down. consumed reports that n's children were
// already mapped and must not be visited.
func (t *traversal) enter(n *tree.Node) (consumed bool, err error) {
	switch {
	case n.Name == elemTile:
		return false, t.openTile(n)
	case n.Name == elemScene:
		return false, t.openScene(n)
	case n.Name == elemGlobal:
		return false, t.openGlobal(n)
	case n.Name == elemBands:
		return false, t.openBands(n)
	case t.inGlobal:
		return true, t.mapGlobalField(n)
	case t.inBands && n.Name == elemBand:
		return true, t.mapBand(n)
	case t.inScene && !t.inBands && n.Name == elemIndex:
		return true, nil
	}
	t.log.Warn("unknown element <%s> (line %d); skipping", n.Name, n.Line)
	return true, nil
}

// leave resets the section flag named by a popped element.
func (t *traversal) leave(name string) {
	switch name {
	case elemTile:
		t.inTile = false
	case elemScene:
		t.inScene = false
	case elemGlobal:
		t.inGlobal = false
	case elemBands:
		t.inBands = false
	}
}

func (t *traversal) fail(kind Kind, n *tree.Node, format string, args ...interface{}) *Error {
	e := newError(kind, n.Name, format, args...)
	e.Line = n.Line
	return e
}

func (t *traversal) openTile(n *tree.Node) error {
	switch {
	case t.inTile:
		return t.fail(KindDuplicateSection, n, "tile section nested in a tile section")
	case t.inScene:
		return t.fail(KindMalformedDocument, n, "tile section nested in a scene section")
	case t.tileSeen:
		return t.fail(KindDuplicateSection, n, "document has more than one tile section")
	}
	t.inTile = true
	t.tileSeen = true
	t.sectionGlobal, t.sectionBands = false, false
	return nil
}

func (t *traversal) openScene(n *tree.Node) error {
	switch {
	case t.inScene:
		return t.fail(KindDuplicateSection, n, "scene section nested in a scene section")
	case t.inTile:
		return t.fail(KindMalformedDocument, n, "scene section nested in the tile section")
	case t.sceneIndex+1 >= MaxScenes:
		return t.fail(KindTooManyScenes, n, "a tile carries at most %d scenes", MaxScenes)
	}
	t.sceneIndex++
	t.doc.Scenes = append(t.doc.Scenes, SceneSection{Global: NewSceneGlobal()})
	t.inScene = true
	t.sectionGlobal, t.sectionBands = false, false
	return nil
}

func (t *traversal) openGlobal(n *tree.Node) error {
	switch {
	case t.inGlobal:
		return t.fail(KindDuplicateSection, n, "global metadata nested in global metadata")
	case !t.inTile && !t.inScene:
		return t.fail(KindMalformedDocument, n, "global metadata outside a tile or scene section")
	case t.sectionGlobal:
		return t.fail(KindDuplicateSection, n, "section has more than one global metadata block")
	}
	t.inGlobal = true
	t.sectionGlobal = true
	return nil
}

func (t *traversal) openBands(n *tree.Node) error {
	switch {
	case t.inBands:
		return t.fail(KindDuplicateSection, n, "bands nested in bands")
	case !t.inTile && !t.inScene:
		return t.fail(KindMalformedDocument, n, "bands outside a tile or scene section")
	case t.sectionBands:
		return t.fail(KindDuplicateSection, n, "section has more than one bands block")
	}
	t.inBands = true
	t.sectionBands = true
	t.bandKeys = make(map[string]bool)
	return nil
}

// sectionBandList returns the band list of the section currently open.
func (t *traversal) sectionBandList() *[]Band {
	if t.inScene {
		return &t.doc.Scenes[t.sceneIndex].Bands
	}
	return &t.doc.Tile.Bands
}

func (t *traversal) mapGlobalField(n *tree.Node) error {
	f := field{n: n, t: t}
	if t.inScene {
		g := &t.doc.Scenes[t.sceneIndex].Global
		if mapper, ok := sceneGlobalFields[n.Name]; ok {
			return mapper(f, g)
		}
	} else {
		g := &t.doc.Tile.Global
		if mapper, ok := tileGlobalFields[n.Name]; ok {
			return mapper(f, g)
		}
	}
	t.log.Warn("unknown global metadata element <%s> (line %d); skipping", n.Name, n.Line)
	return nil
}

func (t *traversal) mapBand(n *tree.Node) error {
	bands := t.sectionBandList()
	if len(*bands) >= MaxBands {
		return t.fail(KindBandIndexOverflow, n, "a section carries at most %d bands", MaxBands)
	}

	b := NewBand()
	if err := mapBandFields(field{n: n, t: t}, &b); err != nil {
		return err
	}

	key := b.Product + "/" + b.Name
	if t.bandKeys[key] {
		t.log.Warn("band product=%q name=%q appears more than once in the same bands block", b.Product, b.Name)
	}
	t.bandKeys[key] = true

	*bands = append(*bands, b)
	return nil
}

// foreign reports, with a warning, whether n is outside the document namespace.
func (t *traversal) foreign(n *tree.Node) bool {
	if n.Space == t.ns {
		return false
	}
	t.log.Warn("skipping <%s> from foreign namespace %q (line %d)", n.Name, n.Space, n.Line)
	return true
}
