package imgcurator

import (
	"errors"

	"github.com/n2code/imgcurator/internal/catalog"
	"github.com/n2code/imgcurator/internal/cleanup"
	"github.com/n2code/imgcurator/internal/rename"
)

func (c *curator) ListUnused(session Session) []string {
	return cleanup.Unused(session.Catalog)
}

func (c *curator) Delete(paths []string) cleanup.DeleteReport {
	return cleanup.Delete(paths)
}

func (c *curator) ListUsedOrdered(session Session) []catalog.Image {
	return session.Catalog.Used()
}

// planRename validates the used images against the document text the session was built from
func (c *curator) planRename(session Session, used []catalog.Image) (rename.Plan, error) {
	if session.DocumentPath == "" {
		return rename.Plan{}, newCommandError("rename impossible", ErrNoDocument)
	}
	plan, err := rename.Prepare(used, session.text, session.DocumentPath, rename.Options{Extractor: c.extractor, Suffix: c.suffix})
	if err != nil {
		return rename.Plan{}, newCommandError("rename refused", err)
	}
	return plan, nil
}

func (c *curator) Rename(session Session, used []catalog.Image) (rename.Report, error) {
	plan, err := c.planRename(session, used)
	if err != nil {
		return rename.Report{}, err
	}
	return c.executeRename(plan)
}

func (c *curator) executeRename(plan rename.Plan) (rename.Report, error) {
	report, err := rename.Execute(plan)
	if err != nil {
		return rename.Report{}, renameFailure(err)
	}
	return report, nil
}

func renameFailure(cause error) *CommandError {
	if errors.Is(cause, rename.ErrRollbackIncomplete) {
		return newCommandError("rename failed and could not be reverted completely, check the staging directories", cause)
	}
	return newCommandError("rename failed, no files were changed", cause)
}
