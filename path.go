package imgcurator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/n2code/imgcurator/internal"
	"github.com/n2code/imgcurator/internal/output"
)

// documentDirScheme abbreviates the directory of the document when the working directory is outside of it
const documentDirScheme = "doc:" + string(filepath.Separator) + string(filepath.Separator)

const dot = "."
const doubleDot = dot + dot
const dirSeparator = string(filepath.Separator)
const dotDirSeparator = dot + dirSeparator
const doubleDotDirSeparator = doubleDot + dirSeparator

func (c *curator) displayablePath(absolutePath string, session Session) string {
	base := ""
	if session.DocumentPath != "" {
		base = filepath.Dir(session.DocumentPath)
	}
	pleasant := pleasantPath(filepath.Clean(absolutePath), base, mustGetwd())
	if c.printer.UsesEscapes() && strings.HasPrefix(pleasant, documentDirScheme) {
		pleasant = strings.Replace(pleasant, documentDirScheme, output.TerminalFormatAsDim(documentDirScheme), 1)
	}
	return pleasant
}

func isInside(child string, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	internal.AssertNoError(err, "both paths are absolute")
	return rel == dot || !(rel == doubleDot || strings.HasPrefix(rel, doubleDotDirSeparator))
}

// pleasantPath turns an absolute path into something easily understandable from the current context.
// If the working directory is inside the document directory (or no document directory is known) a path relative
// to it is emitted, with leading "./" to stress relativity. Paths escaping the working directory are printed with "../".
// If the working directory is outside of the document directory, paths inside it are anchored at the document directory.
// Everything else is reflected unchanged.
func pleasantPath(absolute string, documentDir string, wd string) string {
	if documentDir != "" && !isInside(wd, documentDir) {
		if isInside(absolute, documentDir) {
			anchored, _ := filepath.Rel(documentDir, absolute) //error impossible because both are rooted
			return documentDirScheme + anchored
		}
		return absolute
	}

	relative, _ := filepath.Rel(wd, absolute) //error impossible because both are rooted
	if strings.HasPrefix(relative, doubleDotDirSeparator) {
		return relative
	}
	return dotDirSeparator + relative
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}

// mustAbsFilepath calls filepath.Abs and asserts that it is successful
func mustAbsFilepath(path string) string {
	abs, err := filepath.Abs(path)
	internal.AssertNoError(err, "the working directory is always available")
	return abs
}
