package rename

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const stagingPattern = ".imgcurator-rename-staging-*"

// ErrRollbackIncomplete means a failed commit left changes behind, the staging directories are kept for manual recovery.
var ErrRollbackIncomplete = errors.New("rollback incomplete")

// renameFile is replaceable to simulate failing filesystems.
var renameFile = os.Rename

// Report is the outcome of a committed rename.
type Report struct {
	Pairs           []Pair   //in index order
	NewDocumentPath string
	Replaced        []string //files that existed under a new name before and got overwritten
}

type rollbackStep func() error

// Execute carries out the plan all-or-nothing: copies of the images and the new document are staged
// next to their final location first, then moved into place in reverse index order.
// If committing fails all steps done so far are reverted, the original images and document are never modified.
func Execute(plan Plan) (report Report, err error) {
	staging := make(map[string]string) //target directory -> staging directory
	keepStaging := false               //set if moved-aside files could not be restored
	defer func() {
		for _, stagingDir := range staging {
			if keepStaging {
				slog.Error("Staging directory kept for recovery", "dir", stagingDir)
				continue
			}
			if removeErr := os.RemoveAll(stagingDir); removeErr != nil {
				slog.Warn("Staging directory could not be removed", "dir", stagingDir, "err", removeErr)
			}
		}
	}()
	stagingDirFor := func(dir string) (string, error) {
		if existing, ok := staging[dir]; ok {
			return existing, nil
		}
		created, err := os.MkdirTemp(dir, stagingPattern)
		if err != nil {
			return "", fmt.Errorf("rename preparation failed: %w", err)
		}
		staging[dir] = created
		return created, nil
	}

	staged := make([]string, len(plan.Pairs))
	for i := len(plan.Pairs) - 1; i >= 0; i-- {
		pair := plan.Pairs[i]
		stagingDir, err := stagingDirFor(filepath.Dir(pair.Target))
		if err != nil {
			return Report{}, err
		}
		staged[i] = filepath.Join(stagingDir, pair.NewName())
		if err := copyFile(pair.Source, staged[i]); err != nil {
			return Report{}, fmt.Errorf("copying %s failed: %w", pair.OldName(), err)
		}
	}

	documentStagingDir, err := stagingDirFor(filepath.Dir(plan.NewDocumentPath))
	if err != nil {
		return Report{}, err
	}
	stagedDocument := filepath.Join(documentStagingDir, filepath.Base(plan.NewDocumentPath))
	if err := os.WriteFile(stagedDocument, []byte(plan.Rewritten), documentMode(plan.DocumentPath)); err != nil {
		return Report{}, fmt.Errorf("writing new document failed: %w", err)
	}

	var rollbackLog []rollbackStep //executed in reverse order
	defer func() {
		if err != nil {
			if rollbackErr := rollback(rollbackLog); rollbackErr != nil {
				keepStaging = true
				err = fmt.Errorf("%w (%w: %s)", err, ErrRollbackIncomplete, rollbackErr)
			}
		}
	}()

	place := func(stagedFile string, target string) error {
		if _, statErr := os.Lstat(target); statErr == nil {
			backup := filepath.Join(filepath.Dir(stagedFile), "replaced-"+filepath.Base(target))
			if err := renameFile(target, backup); err != nil {
				return fmt.Errorf("moving aside %s failed: %w", target, err)
			}
			rollbackLog = append(rollbackLog, func() error { return renameFile(backup, target) })
			report.Replaced = append(report.Replaced, target)
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return statErr
		}
		if err := renameFile(stagedFile, target); err != nil {
			return fmt.Errorf("committing %s failed: %w", target, err)
		}
		rollbackLog = append(rollbackLog, func() error { return os.Remove(target) })
		return nil
	}

	for i := len(plan.Pairs) - 1; i >= 0; i-- {
		if err = place(staged[i], plan.Pairs[i].Target); err != nil {
			return Report{}, err
		}
	}
	if err = place(stagedDocument, plan.NewDocumentPath); err != nil {
		return Report{}, err
	}

	report.Pairs = plan.Pairs
	report.NewDocumentPath = plan.NewDocumentPath
	slog.Info("Images renamed", "count", len(plan.Pairs), "document", plan.NewDocumentPath, "replaced", len(report.Replaced))
	return report, nil
}

// rollback executes all steps in reverse order, errors are collected but do not stop the rollback.
func rollback(steps []rollbackStep) error {
	var issues []error
	for i := len(steps) - 1; i >= 0; i-- {
		if err := steps[i](); err != nil {
			issues = append(issues, err)
		}
	}
	if len(issues) > 0 {
		slog.Error("Rename rollback incomplete", "issues", len(issues))
	}
	return errors.Join(issues...)
}

func copyFile(source string, target string) (err error) {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()
	_, err = io.Copy(out, in)
	return err
}

func documentMode(documentPath string) os.FileMode {
	if info, err := os.Stat(documentPath); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
