package main

import (
	"log/slog"

	"github.com/n2code/imgcurator"
	"github.com/n2code/imgcurator/cmd/imgcurator/flags"
	"github.com/n2code/imgcurator/internal/config"
	"github.com/n2code/imgcurator/internal/logger"
	"github.com/spf13/cobra"
)

// cli carries the global switches and the handle shared by all subcommands
type cli struct {
	verbose  bool
	quiet    bool
	plain    bool
	cfg      config.Config
	api      imgcurator.Curator
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	app := &cli{}
	cmd := &cobra.Command{
		Use:   "imgcurator",
		Short: "Reconcile the images of a markdown document with its image directory",
		Long: `imgcurator compares the images referenced by a markdown document with the image files
present in a directory next to it.

Unused images can be removed and used images can be renumbered (1.png, 2.jpg, ...) in the
order they are found on disk. Renumbering copies the images and writes the document with
rewritten references to a new file, the original document and images stay untouched.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.closeLog != nil {
				_ = app.closeLog()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&app.verbose, flags.Verbose, "v", false, "output more details on what is done (verbose mode)")
	cmd.PersistentFlags().BoolVarP(&app.quiet, flags.Quiet, "q", false, "output as little as possible, i.e. only requested information (quiet mode)")
	cmd.PersistentFlags().BoolVar(&app.plain, flags.Plain, false, "no colors and no raw terminal input")
	cmd.MarkFlagsMutuallyExclusive(flags.Verbose, flags.Quiet)

	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newUnusedCmd(app))
	cmd.AddCommand(newBrokenCmd(app))
	cmd.AddCommand(newCleanCmd(app))
	cmd.AddCommand(newRenameCmd(app))

	return cmd
}

func (app *cli) setup(cmd *cobra.Command) error {
	// Load .env file if present (ignore errors)
	config.LoadDotEnv()
	app.cfg = config.Load()
	if cmd.Flags().Changed(flags.Plain) {
		app.cfg.Plain = app.plain
	}

	closeLog, err := logger.Init(logger.Config{
		LogDir:  app.cfg.LogDir,
		Debug:   app.cfg.Debug,
		Verbose: app.verbose,
		JSON:    app.cfg.LogJSON,
	})
	if err != nil {
		return err
	}
	app.closeLog = closeLog
	slog.Debug("Configuration loaded", "path", config.Path(), "plain", app.cfg.Plain, "suffix", app.cfg.NewSuffix)

	createConfig := imgcurator.CreateConfig{Plain: app.cfg.Plain, NewSuffix: app.cfg.NewSuffix}
	switch {
	case app.verbose:
		createConfig.Verbosity = imgcurator.VerboseMode
	case app.quiet:
		createConfig.Verbosity = imgcurator.QuietMode
	}
	app.api = imgcurator.New(createConfig)
	return nil
}

// open selects the document and, if given explicitly, the image directory
func (app *cli) open(document string, imageDir string) (imgcurator.Session, error) {
	session, err := app.api.SelectDocument(document)
	if err != nil {
		return session, err
	}
	if imageDir != "" {
		return app.api.SelectImageDir(session, imageDir)
	}
	return session, nil
}
