package imgcurator

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/n2code/imgcurator/internal/catalog"
	"github.com/n2code/imgcurator/internal/imageinfo"
	out "github.com/n2code/imgcurator/internal/output"
)

func colorForUsage(image catalog.Image) out.SgrModifier {
	if image.Used() {
		return out.Green
	}
	return out.Red
}

func usageLabel(image catalog.Image) string {
	if image.Used() {
		return "used"
	}
	return "unused"
}

func (c *curator) PrintCatalog(session Session, showDimensions bool) {
	if session.DocumentPath != "" {
		c.Print(out.Normal, "Document: %s\n", c.displayablePath(session.DocumentPath, session))
	}
	if session.ImageDir != "" {
		c.Print(out.Normal, "Images:   %s\n", c.displayablePath(session.ImageDir, session))
	}
	c.Print(out.Normal, "\n")

	for _, image := range session.Catalog.Images {
		details := out.Filesize(image.Size)
		if showDimensions {
			if width, height, err := imageinfo.Dimensions(image.Path); err == nil {
				details = fmt.Sprintf("%dx%d, %s", width, height, details)
			} else {
				slog.Warn("Dimensions unavailable", "path", image.Path, "err", err)
				details = "?x?, " + details
			}
		}
		c.Print(out.Required, "%s%-6s%s %s %s(%s)%s\n", colorForUsage(image), usageLabel(image), out.DefaultForeground, c.displayablePath(image.Path, session), out.FaintIntensity, details, out.Reset)
		if image.Used() {
			c.Print(out.Verbose, "       <- %s\n", image.RawReference)
		}
	}

	used, unused := session.Catalog.Counts()
	broken := len(session.Catalog.Broken)
	if len(session.Catalog.Images) == 0 {
		c.Print(out.Normal, "<no images>\n")
	}
	c.Print(out.Normal, "\n%d used, %d unused %s", used, unused, out.Plural(unused, "image", "images"))
	if broken > 0 {
		c.Print(out.Normal, ", %s%d broken %s%s", out.Yellow, broken, out.Plural(broken, "reference", "references"), out.DefaultForeground)
	}
	c.Print(out.Normal, "\n")
}

func (c *curator) PrintTree(session Session) error {
	if session.ImageDir == "" {
		return newCommandError("no image directory selected", nil)
	}
	tree := out.NewVisualFileTree(session.ImageDir + " [image directory]")
	for _, image := range session.Catalog.Images {
		relative, err := filepath.Rel(session.ImageDir, image.Path)
		if err != nil {
			return fmt.Errorf("image outside of directory: %w", err)
		}
		prefix := c.printer.Sprintf("%s", colorForUsage(image))
		suffix := c.printer.Sprintf("%s", out.Reset)
		if !image.Used() {
			suffix = c.printer.Sprintf(" [unused]%s", out.Reset)
		}
		tree.InsertPath(relative, prefix, suffix)
	}
	c.Print(out.Required, "%s", tree.Render())
	return nil
}

func (c *curator) PrintBroken(session Session) {
	for _, ref := range session.Catalog.Broken {
		c.Print(out.Required, "%s%s%s [%s] -> %s\n", out.Yellow, ref.Raw, out.DefaultForeground, ref.Kind, c.displayablePath(ref.Path, session))
	}
	count := len(session.Catalog.Broken)
	if count == 0 {
		c.Print(out.Normal, "No broken references.\n")
	} else {
		c.Print(out.Normal, "\n%d broken %s\n", count, out.Plural(count, "reference", "references"))
	}
}
