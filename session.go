package imgcurator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/n2code/imgcurator/internal/catalog"
	"github.com/n2code/imgcurator/internal/output"
	"github.com/n2code/imgcurator/internal/reference"
	"github.com/n2code/imgcurator/internal/scan"
)

// Session is the reconciled working set of one document and one image directory.
// It is never patched, every rebuild produces a fresh value.
type Session struct {
	DocumentPath string //absolute, system-native, empty if no document is selected
	ImageDir     string //absolute, system-native, empty if no directory is known
	Catalog      catalog.Catalog
	text         string //document content the catalog was built from
}

var markdownExtensions = []string{".md", ".markdown"}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range markdownExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// imageDirCandidates lists the directories conventionally holding the images of a document, in order of preference
func imageDirCandidates(documentPath string) []string {
	stem := strings.TrimSuffix(documentPath, filepath.Ext(documentPath))
	return []string{stem, stem + ".assets"}
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (c *curator) SelectDocument(path string) (Session, error) {
	absolute := mustAbsFilepath(path)
	info, err := os.Stat(absolute)
	if err != nil {
		return Session{}, newCommandError("document not accessible", err)
	}
	if info.IsDir() || !isMarkdown(absolute) {
		return Session{}, newCommandError(fmt.Sprintf("cannot select %s", c.displayablePath(absolute, Session{})), ErrNotMarkdown)
	}

	imageDir := ""
	for _, candidate := range imageDirCandidates(absolute) {
		if isDirectory(candidate) {
			imageDir = candidate
			break
		}
	}
	if imageDir == "" {
		c.Print(output.Normal, "No image directory found next to the document, select one explicitly.\n")
	} else {
		slog.Debug("Image directory discovered", "dir", imageDir)
	}
	return c.build(absolute, imageDir)
}

func (c *curator) SelectImageDir(session Session, dir string) (Session, error) {
	absolute := mustAbsFilepath(dir)
	info, err := os.Stat(absolute)
	if err != nil {
		return session, newCommandError("image directory not accessible", err)
	}
	if !info.IsDir() {
		return session, newCommandError(fmt.Sprintf("%s is not a directory", c.displayablePath(absolute, session)), nil)
	}
	return c.build(session.DocumentPath, absolute)
}

func (c *curator) Refresh(session Session) (Session, error) {
	return c.build(session.DocumentPath, session.ImageDir)
}

// build reads the document and scans the image directory from scratch, either may be absent
func (c *curator) build(documentPath string, imageDir string) (Session, error) {
	fresh := Session{DocumentPath: documentPath, ImageDir: imageDir}

	var references []reference.Reference
	if documentPath != "" {
		text, err := reference.ReadDocument(documentPath)
		if err != nil {
			return Session{}, newCommandError("reading document failed", err)
		}
		fresh.text = text
		references = c.extractor.Extract(text, filepath.Dir(documentPath))
	}

	var discovered []scan.Image
	if imageDir != "" {
		if isDirectory(imageDir) {
			var err error
			if discovered, err = scan.Scan(imageDir); err != nil {
				return Session{}, newCommandError("listing images failed", err)
			}
		} else {
			slog.Warn("Image directory vanished, listing no images", "dir", imageDir)
		}
	}

	fresh.Catalog = catalog.Reconcile(discovered, references)
	used, unused := fresh.Catalog.Counts()
	slog.Info("Session built", "document", documentPath, "dir", imageDir, "used", used, "unused", unused, "broken", len(fresh.Catalog.Broken))
	return fresh, nil
}
