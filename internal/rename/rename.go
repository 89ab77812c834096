// Package rename renumbers the used images of a document and rewrites the references to them.
package rename

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/n2code/imgcurator/internal/catalog"
	"github.com/n2code/imgcurator/internal/reference"
)

// DefaultSuffix is inserted before the extension of the document to derive the name of the rewritten copy.
const DefaultSuffix = "_new"

var (
	ErrInvariant       = errors.New("invariant violated")
	ErrNothingToRename = errors.New("no used images to rename")
)

// Pair describes the renaming of a single image.
type Pair struct {
	Index        int    //1-based position among the used images
	Source       string //absolute, system-native
	Target       string //absolute, same directory as Source
	OldReference string
	NewReference string
}

func (p Pair) OldName() string {
	return filepath.Base(p.Source)
}

func (p Pair) NewName() string {
	return filepath.Base(p.Target)
}

func (p Pair) String() string {
	return fmt.Sprintf("%s -> %s", p.OldName(), p.NewName())
}

// Plan is a fully validated rename that has not touched the filesystem yet.
type Plan struct {
	Pairs           []Pair //in index order
	DocumentPath    string
	NewDocumentPath string
	Rewritten       string //complete text of the new document
}

type Options struct {
	Extractor reference.Extractor //defaults to reference.PatternExtractor
	Suffix    string              //defaults to DefaultSuffix
}

// NewDocumentPath inserts the suffix before the extension: notes.md -> notes_new.md
func NewDocumentPath(documentPath string, suffix string) string {
	base := filepath.Base(documentPath)
	ext := filepath.Ext(base)
	return filepath.Join(filepath.Dir(documentPath), strings.TrimSuffix(base, ext)+suffix+ext)
}

// replaceFileName swaps the last path segment of a reference, the directory portion stays verbatim.
// Trailing separators are not a segment of their own: "a.png/" becomes "1.png/".
func replaceFileName(raw string, newName string) string {
	trimmed := strings.TrimRight(raw, `/\`)
	trailing := raw[len(trimmed):]
	return trimmed[:strings.LastIndexAny(trimmed, `/\`)+1] + newName + trailing
}

// Prepare validates the used images (given in presentation order) and computes names and the rewritten document.
// Each image gets the name "<index>.<extension>" where index is its 1-based position.
// Every reference of the document resolving to a renamed image is rewritten, not only the one recorded in the catalog.
func Prepare(used []catalog.Image, text string, documentPath string, opts Options) (plan Plan, err error) {
	if len(used) == 0 {
		return Plan{}, ErrNothingToRename
	}
	if opts.Extractor == nil {
		opts.Extractor = reference.PatternExtractor{}
	}
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	if documentPath, err = filepath.Abs(documentPath); err != nil {
		return Plan{}, err
	}
	documentDir := filepath.Dir(documentPath)

	plan.DocumentPath = documentPath
	plan.NewDocumentPath = NewDocumentPath(documentPath, opts.Suffix)
	newNameBySource := make(map[string]string, len(used))

	for i, image := range used {
		ext := strings.TrimPrefix(filepath.Ext(image.Path), ".")
		if ext == "" {
			return Plan{}, fmt.Errorf("%w: image without extension: %s", ErrInvariant, image.Path)
		}
		if !image.Used() || image.RawReference == "" {
			return Plan{}, fmt.Errorf("%w: image to rename has no reference: %s", ErrInvariant, image.Path)
		}
		source := filepath.Clean(image.Path)
		if resolved := reference.Resolve(documentDir, image.RawReference); resolved != source {
			return Plan{}, fmt.Errorf("%w: reference %q resolves to %s instead of %s", ErrInvariant, image.RawReference, resolved, source)
		}
		if _, duplicate := newNameBySource[source]; duplicate {
			return Plan{}, fmt.Errorf("%w: image listed twice: %s", ErrInvariant, source)
		}
		newName := fmt.Sprintf("%d.%s", i+1, ext)
		newNameBySource[source] = newName
		plan.Pairs = append(plan.Pairs, Pair{
			Index:        i + 1,
			Source:       source,
			Target:       filepath.Join(filepath.Dir(source), newName),
			OldReference: image.RawReference,
			NewReference: replaceFileName(image.RawReference, newName),
		})
	}

	if filepath.Clean(plan.NewDocumentPath) == filepath.Clean(documentPath) {
		return Plan{}, fmt.Errorf("%w: rewritten document would replace the original", ErrInvariant)
	}

	refs := opts.Extractor.Extract(text, documentDir)
	plan.Rewritten = reference.Rewrite(text, refs, func(ref reference.Reference) (string, bool) {
		newName, renamed := newNameBySource[filepath.Clean(ref.Path)]
		if !renamed {
			return "", false
		}
		return replaceFileName(ref.Raw, newName), true
	})
	return plan, nil
}

// Mapping returns old and new file names in index order.
func (p Plan) Mapping() (lines []string) {
	for _, pair := range p.Pairs {
		lines = append(lines, pair.String())
	}
	return
}
