// Package catalog joins the images on disk with the references of a document.
package catalog

import (
	"path/filepath"

	"github.com/n2code/imgcurator/internal/reference"
	"github.com/n2code/imgcurator/internal/scan"
)

// Image is an image on disk annotated with its usage by the document.
type Image struct {
	Path         string //absolute, system-native
	Ext          string //lowercase, without dot
	Size         int64
	RawReference string //text in the document resolving to Path, only meaningful if Referenced
	Referenced   bool
}

func (i Image) Used() bool {
	return i.Referenced
}

// Catalog is the reconciled working set, images are in scan order.
type Catalog struct {
	Images []Image
	Broken []reference.Reference //references without matching image on disk
}

// Reconcile classifies every discovered image as used or unused. It has no side effects.
// If multiple raw texts resolve to the same path the last one wins.
func Reconcile(discovered []scan.Image, references []reference.Reference) Catalog {
	rawByPath := make(map[string]string, len(references))
	for _, ref := range references {
		rawByPath[pathKey(ref.Path)] = ref.Raw
	}

	var result Catalog
	onDisk := make(map[string]bool, len(discovered))
	for _, found := range discovered {
		key := pathKey(found.Path)
		onDisk[key] = true
		raw, used := rawByPath[key]
		result.Images = append(result.Images, Image{
			Path:         found.Path,
			Ext:          found.Ext,
			Size:         found.Size,
			RawReference: raw,
			Referenced:   used,
		})
	}

	reportedBroken := make(map[string]bool)
	for _, ref := range references {
		if onDisk[pathKey(ref.Path)] || reportedBroken[ref.Raw] {
			continue
		}
		reportedBroken[ref.Raw] = true
		result.Broken = append(result.Broken, ref)
	}
	return result
}

func pathKey(path string) string {
	return filepath.Clean(path)
}

func (c Catalog) Used() (used []Image) {
	for _, image := range c.Images {
		if image.Used() {
			used = append(used, image)
		}
	}
	return
}

func (c Catalog) Unused() (unused []Image) {
	for _, image := range c.Images {
		if !image.Used() {
			unused = append(unused, image)
		}
	}
	return
}

// Counts yields the number of used and unused images.
func (c Catalog) Counts() (used int, unused int) {
	for _, image := range c.Images {
		if image.Used() {
			used++
		} else {
			unused++
		}
	}
	return
}
