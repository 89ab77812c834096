package imgcurator

import (
	"errors"
	"fmt"

	out "github.com/n2code/imgcurator/internal/output"
	"github.com/n2code/imgcurator/internal/rename"
)

func (c *curator) confirm(question string, choice RequestChoice) bool {
	switch choice(question, []string{"Yes", "No"}, false) {
	case "Yes":
		return true
	case ChoiceAborted:
		c.Print(out.Verbose, "Confirmation aborted.\n")
	}
	return false
}

func (c *curator) InteractiveCleanup(session Session, choice RequestChoice) (result CleanupResult, err error) {
	result.Session = session
	unused := c.ListUnused(session)
	if len(unused) == 0 {
		c.Print(out.Normal, "No images need to be removed!\n")
		return
	}

	listing := make([]string, 0, len(unused))
	for _, path := range unused {
		listing = append(listing, c.displayablePath(path, session))
	}
	preview := out.Preview(listing)
	c.Print(out.Required, "%s\n", out.Indent(2, preview))
	if !c.confirm(fmt.Sprintf("Are you sure to remove these %d %s?", len(unused), out.Plural(unused, "image", "images")), choice) {
		result.Outcome = Declined
		return
	}

	result.Report = c.Delete(unused)
	result.Outcome = Done
	for _, failure := range result.Report.Failures {
		c.Print(out.Error, "removal failed (%s): %s%s%s\n", c.displayablePath(failure.Path, session), out.Red, failure.Err, out.Reset)
	}
	removed := len(result.Report.Deleted)
	c.Print(out.Normal, "Removed %d %s successfully!\n", removed, out.Plural(removed, "image", "images"))

	rebuilt, rebuildErr := c.Refresh(session)
	if rebuildErr == nil {
		result.Session = rebuilt
	}
	if !result.Report.Complete() {
		failed := len(result.Report.Failures)
		err = newCommandError(fmt.Sprintf("%d of %d %s could not be removed", failed, len(unused), out.Plural(unused, "image", "images")), rebuildErr)
	} else if rebuildErr != nil {
		err = rebuildErr
	}
	return
}

func (c *curator) InteractiveRename(session Session, choice RequestChoice) (result RenameResult, err error) {
	result.Session = session
	used := c.ListUsedOrdered(session)
	if len(used) == 0 {
		c.Print(out.Normal, "No images need to be renamed!\n")
		return
	}

	plan, err := c.planRename(session, used)
	if err != nil {
		if errors.Is(err, rename.ErrNothingToRename) {
			c.Print(out.Normal, "No images need to be renamed!\n")
			return result, nil
		}
		return
	}
	preview := out.Preview(plan.Mapping())
	c.Print(out.Required, "%s\n", out.Indent(2, preview))
	c.Print(out.Verbose, "Rewritten document will be saved to: %s\n", c.displayablePath(plan.NewDocumentPath, session))
	if !c.confirm(fmt.Sprintf("Are you sure to rename these %d %s?", len(plan.Pairs), out.Plural(plan.Pairs, "image", "images")), choice) {
		result.Outcome = Declined
		return
	}

	if result.Report, err = c.executeRename(plan); err != nil {
		return
	}
	result.Outcome = Done
	for _, replaced := range result.Report.Replaced {
		c.Print(out.Normal, "%sOverwritten:%s %s\n", out.Yellow, out.DefaultForeground, c.displayablePath(replaced, session))
	}
	count := len(result.Report.Pairs)
	c.Print(out.Normal, "Renamed %d %s successfully!\n", count, out.Plural(count, "image", "images"))
	c.Print(out.Normal, "New document saved to: %s\n", c.displayablePath(result.Report.NewDocumentPath, session))

	if rebuilt, rebuildErr := c.Refresh(session); rebuildErr != nil {
		err = rebuildErr
	} else {
		result.Session = rebuilt
	}
	return
}
