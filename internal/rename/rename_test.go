package rename

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/n2code/imgcurator/internal/catalog"
	"github.com/n2code/imgcurator/internal/reference"
	"github.com/n2code/imgcurator/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

// build scans dir and reconciles it with the document like a session would
func build(t *testing.T, documentPath string, dir string) (catalog.Catalog, string) {
	t.Helper()
	text := read(t, documentPath)
	images, err := scan.Scan(dir)
	require.NoError(t, err)
	refs := reference.PatternExtractor{}.Extract(text, filepath.Dir(documentPath))
	return catalog.Reconcile(images, refs), text
}

func assertNoStagingLeftovers(t *testing.T, dir string) {
	t.Helper()
	leftovers, err := filepath.Glob(filepath.Join(dir, stagingPattern))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestRenameScenario(t *testing.T) {
	root := t.TempDir()
	doc := write(t, root, "doc.md", "# Doc\n![a](./a.png)\n<img src=\"b.jpg\" alt=\"b\">\n")
	write(t, root, "a.png", "A")
	write(t, root, "b.jpg", "B")
	write(t, root, "c.gif", "C")

	c, text := build(t, doc, root)
	plan, err := Prepare(c.Used(), text, doc, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png -> 1.png", "b.jpg -> 2.jpg"}, plan.Mapping())
	assert.Equal(t, "# Doc\n![a](./1.png)\n<img src=\"2.jpg\" alt=\"b\">\n", plan.Rewritten)

	report, err := Execute(plan)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "doc_new.md"), report.NewDocumentPath)
	assert.Empty(t, report.Replaced)

	assert.Equal(t, "A", read(t, filepath.Join(root, "1.png")))
	assert.Equal(t, "B", read(t, filepath.Join(root, "2.jpg")))
	assert.Equal(t, "A", read(t, filepath.Join(root, "a.png")), "original must stay")
	assert.Equal(t, text, read(t, doc), "original document must stay")
	assert.Equal(t, plan.Rewritten, read(t, report.NewDocumentPath))
	assertNoStagingLeftovers(t, root)
}

func TestRenameRoundTrip(t *testing.T) {
	root := t.TempDir()
	doc := write(t, root, "notes.md", strings.Join([]string{
		"![x](notes.assets/zeta.png)",
		"![y](notes.assets/sub/beta.JPG)",
		`<img src="notes.assets/alpha.webp" style="zoom: 50%;" />`,
		"![again](notes.assets/zeta.png)",
		"<img src=notes.assets/zeta.png/>",
	}, "\n"))
	assets := filepath.Join(root, "notes.assets")
	write(t, root, "notes.assets/zeta.png", "z")
	write(t, root, "notes.assets/sub/beta.JPG", "b")
	write(t, root, "notes.assets/alpha.webp", "a")
	write(t, root, "notes.assets/orphan.gif", "o")

	c, text := build(t, doc, assets)
	plan, err := Prepare(c.Used(), text, doc, Options{})
	require.NoError(t, err)
	report, err := Execute(plan)
	require.NoError(t, err)

	rewritten := read(t, report.NewDocumentPath)
	var resolved []string
	for _, ref := range (reference.PatternExtractor{}).Extract(rewritten, root) {
		_, statErr := os.Stat(ref.Path)
		assert.NoError(t, statErr, "reference %s must resolve", ref.Raw)
		rel, _ := filepath.Rel(assets, ref.Path)
		resolved = append(resolved, filepath.ToSlash(rel))
	}
	sort.Strings(resolved)
	assert.Equal(t, []string{"1.webp", "3.png", "3.png", "3.png", "sub/2.JPG"}, resolved)
	assert.Contains(t, rewritten, "<img src=notes.assets/3.png/>")
	assert.Contains(t, rewritten, `<img src="notes.assets/1.webp" style="zoom: 50%;" />`)
	assertNoStagingLeftovers(t, assets)
	assertNoStagingLeftovers(t, filepath.Join(assets, "sub"))
}

func TestRenameAvoidsChainedReplacement(t *testing.T) {
	root := t.TempDir()
	doc := write(t, root, "doc.md", "![](img/2.png) ![](img/a.png) ![](img/ba.png)")
	write(t, root, "img/2.png", "two")
	write(t, root, "img/a.png", "a")

	used := []catalog.Image{
		{Path: filepath.Join(root, "img", "2.png"), Ext: "png", RawReference: "img/2.png", Referenced: true},
		{Path: filepath.Join(root, "img", "a.png"), Ext: "png", RawReference: "img/a.png", Referenced: true},
	}
	plan, err := Prepare(used, read(t, doc), doc, Options{})
	require.NoError(t, err)
	assert.Equal(t, "![](img/1.png) ![](img/2.png) ![](img/ba.png)", plan.Rewritten)

	report, err := Execute(plan)
	require.NoError(t, err)
	assert.Equal(t, "two", read(t, filepath.Join(root, "img", "1.png")))
	assert.Equal(t, "a", read(t, filepath.Join(root, "img", "2.png")))
	assert.Equal(t, []string{filepath.Join(root, "img", "2.png")}, report.Replaced)
	assertNoStagingLeftovers(t, filepath.Join(root, "img"))
}

func TestRenameKeepsDirectoryPortion(t *testing.T) {
	tests := []struct {
		raw      string
		newName  string
		expected string
	}{
		{"a.png", "1.png", "1.png"},
		{"./a.png", "1.png", "./1.png"},
		{"img/a.png/x.png", "3.png", "img/a.png/3.png"},
		{`img\sub\a.png`, "2.png", `img\sub\2.png`},
		{"Android XXXX.assets/image-2023.png", "4.png", "Android XXXX.assets/4.png"},
		{"a.png/", "1.png", "1.png/"},
		{"img/a.png/", "3.png", "img/3.png/"},
		{`img\a.png\`, "2.png", `img\2.png\`},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, replaceFileName(tt.raw, tt.newName))
		})
	}
}

func TestPrepareRejectsInvariantViolations(t *testing.T) {
	root := t.TempDir()
	doc := filepath.Join(root, "doc.md")
	tests := []struct {
		name  string
		image catalog.Image
	}{
		{"missing extension", catalog.Image{Path: filepath.Join(root, "noext"), RawReference: "noext", Referenced: true}},
		{"missing reference", catalog.Image{Path: filepath.Join(root, "a.png"), Ext: "png"}},
		{"empty reference", catalog.Image{Path: filepath.Join(root, "a.png"), Ext: "png", Referenced: true}},
		{"foreign reference", catalog.Image{Path: filepath.Join(root, "a.png"), Ext: "png", RawReference: "b.png", Referenced: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prepare([]catalog.Image{tt.image}, "", doc, Options{})
			assert.True(t, errors.Is(err, ErrInvariant), "got %v", err)
		})
	}

	_, err := Prepare(nil, "", doc, Options{})
	assert.ErrorIs(t, err, ErrNothingToRename)
}

func TestExecuteStagingFailureCommitsNothing(t *testing.T) {
	root := t.TempDir()
	doc := write(t, root, "doc.md", "![](a.png) ![](b.png)")
	a := write(t, root, "a.png", "A")
	b := write(t, root, "b.png", "B")

	c, text := build(t, doc, root)
	plan, err := Prepare(c.Used(), text, doc, Options{})
	require.NoError(t, err)
	require.NoError(t, os.Remove(a))

	_, err = Execute(plan)
	assert.Error(t, err)
	for _, name := range []string{"1.png", "2.png", "doc_new.md"} {
		_, statErr := os.Stat(filepath.Join(root, name))
		assert.True(t, errors.Is(statErr, os.ErrNotExist), "%s must not exist", name)
	}
	assert.Equal(t, "B", read(t, b))
	assertNoStagingLeftovers(t, root)
}

// failRenameOnCalls makes the given (1-based) calls of renameFile fail, all others pass through
func failRenameOnCalls(t *testing.T, calls ...int) {
	t.Helper()
	original := renameFile
	count := 0
	renameFile = func(oldPath string, newPath string) error {
		count++
		for _, failing := range calls {
			if count == failing {
				return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: errors.New("device busy")}
			}
		}
		return original(oldPath, newPath)
	}
	t.Cleanup(func() { renameFile = original })
}

// prepareReplacingRename sets up a rename where a.png becomes 2.png, replacing the used image 2.png which itself becomes 1.png
func prepareReplacingRename(t *testing.T) (root string, plan Plan) {
	t.Helper()
	root = t.TempDir()
	doc := write(t, root, "doc.md", "![](2.png) ![](a.png)")
	write(t, root, "2.png", "two")
	write(t, root, "a.png", "a")
	used := []catalog.Image{
		{Path: filepath.Join(root, "2.png"), Ext: "png", RawReference: "2.png", Referenced: true},
		{Path: filepath.Join(root, "a.png"), Ext: "png", RawReference: "a.png", Referenced: true},
	}
	plan, err := Prepare(used, read(t, doc), doc, Options{})
	require.NoError(t, err)
	return
}

func TestExecuteCommitFailureRestoresReplacedFiles(t *testing.T) {
	root, plan := prepareReplacingRename(t)
	// commit order: move 2.png aside (1), place new 2.png (2), place 1.png (3)
	failRenameOnCalls(t, 3)

	_, err := Execute(plan)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRollbackIncomplete))

	assert.Equal(t, "two", read(t, filepath.Join(root, "2.png")))
	assert.Equal(t, "a", read(t, filepath.Join(root, "a.png")))
	assert.NoFileExists(t, filepath.Join(root, "1.png"))
	assert.NoFileExists(t, filepath.Join(root, "doc_new.md"))
	assertNoStagingLeftovers(t, root)
}

func TestExecuteIncompleteRollbackKeepsStaging(t *testing.T) {
	root, plan := prepareReplacingRename(t)
	// restoring the moved-aside 2.png is the fourth call
	failRenameOnCalls(t, 3, 4)

	_, err := Execute(plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRollbackIncomplete)

	leftovers, globErr := filepath.Glob(filepath.Join(root, stagingPattern))
	require.NoError(t, globErr)
	require.Len(t, leftovers, 1)
	assert.Equal(t, "two", read(t, filepath.Join(leftovers[0], "replaced-2.png")))
	assert.NoFileExists(t, filepath.Join(root, "1.png"))
	assert.NoFileExists(t, filepath.Join(root, "doc_new.md"))
}

func TestRollbackRunsAllStepsInReverse(t *testing.T) {
	var order []int
	step := func(n int, fail bool) rollbackStep {
		return func() error {
			order = append(order, n)
			if fail {
				return errors.New("step failed")
			}
			return nil
		}
	}
	err := rollback([]rollbackStep{step(1, false), step(2, true), step(3, false)})
	assert.Error(t, err)
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.NoError(t, rollback(nil))
}

func TestNewDocumentPath(t *testing.T) {
	dir := filepath.Join("some", "dir")
	assert.Equal(t, filepath.Join(dir, "notes_new.md"), NewDocumentPath(filepath.Join(dir, "notes.md"), DefaultSuffix))
	assert.Equal(t, filepath.Join(dir, "my.notes_new.md"), NewDocumentPath(filepath.Join(dir, "my.notes.md"), DefaultSuffix))
	assert.Equal(t, filepath.Join(dir, "README.renumbered"), NewDocumentPath(filepath.Join(dir, "README"), ".renumbered"))
}
