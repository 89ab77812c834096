// Package reference finds image references in markdown text and resolves them to local paths.
package reference

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

type Kind int

const (
	Markdown Kind = iota // ![alt](target)
	HTML                 // <img src="target">
)

func (k Kind) String() string {
	switch k {
	case Markdown:
		return "markdown"
	case HTML:
		return "html"
	default:
		return "unknown"
	}
}

// Reference is one image reference as written in the document.
type Reference struct {
	Raw   string //exact captured text, replaced verbatim on rewrite
	Path  string //absolute, system-native
	Kind  Kind
	Start int //byte offset of Raw in the document
	End   int
}

// Extractor turns document text into references. The document directory anchors relative targets.
type Extractor interface {
	Extract(text string, documentDir string) []Reference
}

var (
	markdownImage = regexp.MustCompile(`!\[.*?\]\((.*?)\)`)
	htmlImage     = regexp.MustCompile(`<img[^>]*?src\s*=\s*["']?([^"'>]+)[^>]*>`)
	remoteTarget  = regexp.MustCompile(`^(?i:[a-z][a-z0-9+.-]*://|data:|mailto:)`)
)

// PatternExtractor matches markdown image syntax first, then HTML img tags, each in order of appearance.
type PatternExtractor struct{}

func (PatternExtractor) Extract(text string, documentDir string) (refs []Reference) {
	for _, pattern := range []struct {
		expression *regexp.Regexp
		kind       Kind
	}{{markdownImage, Markdown}, {htmlImage, HTML}} {
		for _, match := range pattern.expression.FindAllStringSubmatchIndex(text, -1) {
			start, end := match[2], match[3]
			raw := text[start:end]
			if strings.TrimSpace(raw) == "" || remoteTarget.MatchString(raw) {
				continue
			}
			refs = append(refs, Reference{
				Raw:   raw,
				Path:  Resolve(documentDir, raw),
				Kind:  pattern.kind,
				Start: start,
				End:   end,
			})
		}
	}
	return
}

// Resolve joins the target onto the directory after converting both kinds of separators to the native one.
func Resolve(documentDir string, target string) string {
	native := strings.NewReplacer("/", string(filepath.Separator), `\`, string(filepath.Separator)).Replace(target)
	if filepath.IsAbs(native) {
		return filepath.Clean(native)
	}
	return filepath.Join(documentDir, native)
}

// ReadDocument loads the full document text.
func ReadDocument(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("document not readable: %w", err)
	}
	return string(content), nil
}

// Spans returns the references ordered by position, overlapping captures are dropped in favor of the earlier one.
func Spans(refs []Reference) []Reference {
	ordered := make([]Reference, len(refs))
	copy(ordered, refs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })
	kept := ordered[:0]
	lastEnd := -1
	for _, ref := range ordered {
		if ref.Start < lastEnd {
			continue
		}
		kept = append(kept, ref)
		lastEnd = ref.End
	}
	return kept
}

// Rewrite substitutes the captured text of every reference for which replace yields a new value.
// It works in a single pass over the capture spans so replacement output is never matched again.
func Rewrite(text string, refs []Reference, replace func(Reference) (string, bool)) string {
	var rewritten strings.Builder
	rewritten.Grow(len(text))
	position := 0
	for _, ref := range Spans(refs) {
		substitute, ok := replace(ref)
		if !ok {
			continue
		}
		rewritten.WriteString(text[position:ref.Start])
		rewritten.WriteString(substitute)
		position = ref.End
	}
	rewritten.WriteString(text[position:])
	return rewritten.String()
}
