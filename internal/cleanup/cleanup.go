// Package cleanup removes image files that are not referenced anymore.
package cleanup

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/n2code/imgcurator/internal/catalog"
)

// Failure records a single file that could not be deleted.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Path, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// DeleteReport is the outcome of a deletion batch, Count equals len(Deleted).
type DeleteReport struct {
	Count    int
	Deleted  []string
	Failures []Failure
}

func (r DeleteReport) Complete() bool {
	return len(r.Failures) == 0
}

// Unused lists the paths of all unused images in catalog order.
func Unused(c catalog.Catalog) (paths []string) {
	for _, image := range c.Unused() {
		paths = append(paths, image.Path)
	}
	return
}

// Delete removes the given files one by one, failures are collected and do not stop the batch.
func Delete(paths []string) (report DeleteReport) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			slog.Warn("Deleting unused image failed", "path", path, "err", err)
			report.Failures = append(report.Failures, Failure{Path: path, Err: err})
			continue
		}
		report.Deleted = append(report.Deleted, path)
	}
	report.Count = len(report.Deleted)
	if report.Count > 0 {
		slog.Info("Unused images deleted", "count", report.Count, "failures", len(report.Failures))
	}
	return
}
