package imgcurator

import (
	"github.com/n2code/imgcurator/internal/catalog"
	"github.com/n2code/imgcurator/internal/cleanup"
	"github.com/n2code/imgcurator/internal/rename"
)

// Curator lets you reconcile the images of a markdown document with a directory, the handle is retrieved using New.
// All state lives in the Session values passed around explicitly, the handle itself only carries settings.
type Curator interface {

	// SelectDocument starts a new session for the given markdown file (.md or .markdown).
	// The image directory is discovered automatically: "<doc-without-ext>" or "<doc-without-ext>.assets" next to
	// the document, whichever exists first. If neither exists the session has no image directory and lists no images.
	SelectDocument(path string) (Session, error)

	// SelectImageDir yields a new session for the same document but a different image directory.
	SelectImageDir(session Session, dir string) (Session, error)

	// Refresh rebuilds the session from disk, e.g. after an external change or a mutating operation.
	Refresh(session Session) (Session, error)

	// ListUnused returns the absolute paths of all images not referenced by the document, in scan order.
	ListUnused(session Session) []string

	// Delete removes the given files one by one, failures are collected and do not stop the batch.
	// The session needs to be refreshed afterwards.
	Delete(paths []string) cleanup.DeleteReport

	// ListUsedOrdered returns all referenced images in scan order which is the numbering order of Rename.
	ListUsedOrdered(session Session) []catalog.Image

	// Rename copies every used image to "<index>.<ext>" next to the original and writes the document with
	// rewritten references to a new file next to the original document. Originals stay untouched.
	// Either all files are placed or none, a failed attempt is rolled back.
	// The session needs to be refreshed afterwards.
	Rename(session Session, used []catalog.Image) (rename.Report, error)

	// InteractiveCleanup previews the unused images, asks for confirmation, deletes them and rebuilds the session.
	InteractiveCleanup(session Session, choice RequestChoice) (CleanupResult, error)

	// InteractiveRename previews the rename mapping, asks for confirmation, renames and rebuilds the session.
	InteractiveRename(session Session, choice RequestChoice) (RenameResult, error)

	// PrintCatalog lists every image with its usage state and size, optionally including the pixel dimensions.
	PrintCatalog(session Session, showDimensions bool)

	// PrintTree prints the image directory as a tree with unused images marked.
	PrintTree(session Session) error

	// PrintBroken lists references of the document that match no image on disk.
	PrintBroken(session Session)
}

// RequestChoice represents a single-choice decision callback, the first option is considered the default "yes"-like choice.
// If the choice is aborted an empty string must be returned.
// If cleanup is set the implementation is recommended to remove the choice presentation after selection.
type RequestChoice func(request string, options []string, cleanup bool) (choice string)

const ChoiceAborted = ""

// Outcome tells apart whether an interactive operation had nothing to do, was declined, or was carried out.
type Outcome int

const (
	NothingToDo Outcome = iota
	Declined
	Done
)

func (o Outcome) String() string {
	switch o {
	case NothingToDo:
		return "nothing to do"
	case Declined:
		return "declined"
	case Done:
		return "done"
	}
	panic("invalid outcome")
}

type CleanupResult struct {
	Outcome Outcome
	Report  cleanup.DeleteReport
	Session Session //rebuilt if Outcome is Done, otherwise unchanged
}

type RenameResult struct {
	Outcome Outcome
	Report  rename.Report
	Session Session //rebuilt if Outcome is Done, otherwise unchanged
}
