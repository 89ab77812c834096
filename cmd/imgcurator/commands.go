package main

import (
	"fmt"

	"github.com/n2code/imgcurator"
	"github.com/n2code/imgcurator/cmd/imgcurator/flags"
	"github.com/n2code/imgcurator/internal/report"
	"github.com/spf13/cobra"
)

const documentArg = "DOCUMENT"

func addImagesFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, flags.Images, "", "image directory to use instead of the discovered one\n(default: <DOCUMENT-without-ext> or <DOCUMENT-without-ext>.assets)")
}

func newStatusCmd(app *cli) *cobra.Command {
	var imageDir string
	var dimensions bool
	cmd := &cobra.Command{
		Use:   "status " + documentArg,
		Short: "List all images with their usage by the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.open(args[0], imageDir)
			if err != nil {
				return err
			}
			app.api.PrintCatalog(session, dimensions)
			return nil
		},
	}
	addImagesFlag(cmd, &imageDir)
	cmd.Flags().BoolVar(&dimensions, flags.Dimensions, false, "read and show the pixel dimensions of every image")
	return cmd
}

func newTreeCmd(app *cli) *cobra.Command {
	var imageDir string
	cmd := &cobra.Command{
		Use:   "tree " + documentArg,
		Short: "Display the image directory as a tree with unused images marked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.open(args[0], imageDir)
			if err != nil {
				return err
			}
			return app.api.PrintTree(session)
		},
	}
	addImagesFlag(cmd, &imageDir)
	return cmd
}

func newUnusedCmd(app *cli) *cobra.Command {
	var imageDir string
	cmd := &cobra.Command{
		Use:   "unused " + documentArg,
		Short: "Print the paths of all unused images, one per line",
		Long: `Print the absolute paths of all images not referenced by the document, one per line.
The output is meant for scripts and does not depend on the verbosity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.open(args[0], imageDir)
			if err != nil {
				return err
			}
			for _, path := range app.api.ListUnused(session) {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	addImagesFlag(cmd, &imageDir)
	return cmd
}

func newBrokenCmd(app *cli) *cobra.Command {
	var imageDir string
	cmd := &cobra.Command{
		Use:   "broken " + documentArg,
		Short: "List references of the document that match no image on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.open(args[0], imageDir)
			if err != nil {
				return err
			}
			app.api.PrintBroken(session)
			return nil
		},
	}
	addImagesFlag(cmd, &imageDir)
	return cmd
}

func (app *cli) chooser(cmd *cobra.Command, skipConfirmation bool) imgcurator.RequestChoice {
	if skipConfirmation {
		return AutoChooseDefaultOption(app.quiet)
	}
	return PromptUser(cmd.Context(), !app.cfg.Plain)
}

func newCleanCmd(app *cli) *cobra.Command {
	var imageDir, reportFile string
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean " + documentArg,
		Short: "Remove all images not referenced by the document",
		Long: `Preview the unused images, ask for confirmation and remove them.
Failures to remove single files are reported but do not stop the others.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.open(args[0], imageDir)
			if err != nil {
				return err
			}
			result, cleanupErr := app.api.InteractiveCleanup(session, app.chooser(cmd, yes))
			if result.Outcome == imgcurator.Done && reportFile != "" {
				if err := report.Save(reportFile, report.FromDelete(session.DocumentPath, session.ImageDir, result.Report)); err != nil {
					return err
				}
			}
			return cleanupErr
		},
	}
	addImagesFlag(cmd, &imageDir)
	cmd.Flags().BoolVarP(&yes, flags.Yes, "y", false, "do not ask for confirmation")
	cmd.Flags().StringVar(&reportFile, flags.Report, "", "write the result as YAML to the given file")
	return cmd
}

func newRenameCmd(app *cli) *cobra.Command {
	var imageDir, reportFile string
	var yes bool
	cmd := &cobra.Command{
		Use:   "rename " + documentArg,
		Short: "Renumber all used images and write the document with updated references",
		Long: `Copy every used image to <index>.<ext> in its directory, numbered in the order the
images are found on disk, and write the document with rewritten references to a new file
next to it (notes.md -> notes_new.md). The original document and images stay untouched.
Existing files with a target name are overwritten. Either all files are written or none.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.rename(args[0], imageDir, reportFile, app.chooser(cmd, yes))
		},
	}
	addImagesFlag(cmd, &imageDir)
	cmd.Flags().BoolVarP(&yes, flags.Yes, "y", false, "do not ask for confirmation")
	cmd.Flags().StringVar(&reportFile, flags.Report, "", "write the result as YAML to the given file")
	return cmd
}

// rename saves the report whenever files were changed, even if rebuilding the session failed afterwards
func (app *cli) rename(document string, imageDir string, reportFile string, choice imgcurator.RequestChoice) error {
	session, err := app.open(document, imageDir)
	if err != nil {
		return err
	}
	result, renameErr := app.api.InteractiveRename(session, choice)
	if result.Outcome == imgcurator.Done && reportFile != "" {
		if err := report.Save(reportFile, report.FromRename(session.DocumentPath, session.ImageDir, result.Report)); err != nil {
			return err
		}
	}
	return renameErr
}
