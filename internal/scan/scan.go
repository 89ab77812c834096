// Package scan lists the image files below a directory.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
)

// Extensions is the fixed allow-list of image types, lowercase without dot.
var Extensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

// WorkingDirPrefix marks directories created by imgcurator itself (rename staging), they are never scanned.
const WorkingDirPrefix = ".imgcurator-"

// Image is a file found below the scan root.
type Image struct {
	Path string //absolute, system-native
	Ext  string //lowercase, without dot
	Size int64
}

// IsImage reports whether the file name carries an allowed extension (case-insensitive).
func IsImage(name string) (ext string, ok bool) {
	ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "", false
	}
	for _, allowed := range Extensions {
		if ext == allowed {
			return ext, true
		}
	}
	return "", false
}

// Scan walks root depth-first in lexical order and returns all images in traversal order.
// Any error on the way fails the whole scan, partial listings are never returned.
func Scan(root string) (images []Image, err error) {
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	skipped := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), WorkingDirPrefix) {
				slog.Debug("Skipping working directory", "dir", path)
				return filepath.SkipDir
			}
			return nil
		}
		ext, ok := IsImage(d.Name())
		if !ok {
			skipped++
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		images = append(images, Image{Path: path, Ext: ext, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s failed: %w", root, err)
	}
	slog.Debug("Image directory scanned", "root", root, "images", len(images), "skipped", skipped)
	return images, nil
}
