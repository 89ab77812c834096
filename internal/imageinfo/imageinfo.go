// Package imageinfo reads image headers without decoding the pixel data.
package imageinfo

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"
)

// Dimensions returns the width and height of an image file on disk.
func Dimensions(path string) (width int, height int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("image header of %s not readable: %w", path, err)
	}
	return config.Width, config.Height, nil
}
