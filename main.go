// Package main implements the command-line interface for linemix.
// It uses the cobra library to define commands and flags.
package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tmercier/linemix/internal/config"
	"github.com/tmercier/linemix/internal/editor"
	"github.com/tmercier/linemix/internal/engine"
	"github.com/tmercier/linemix/internal/store"
	"github.com/tmercier/linemix/internal/template"
)

var (
	uiFlag        string
	clipboardFlag bool
	rawFlag       bool
	configPath    string
	cfg           config.Config
	db            store.Store
	eng           *engine.Engine
	log           zerolog.Logger
)

// diagNotifier routes expansion diagnostics to the process logger.
// Diagnostics are fire-and-forget: nothing reads a response.
type diagNotifier struct {
	log zerolog.Logger
}

func (n diagNotifier) Notify(message string) {
	n.log.Warn().Msg(message)
}

var _ template.Notifier = diagNotifier{}

func setupRuntime(cmd *cobra.Command, args []string) error {
	var err error

	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Possible custom config path
	if configPath == "" {
		configPath, err = config.DefaultConfigDir()
		if err != nil {
			return err
		}
	}

	// Load configuration
	cfg, err = config.LoadConfigFromFile(configPath)
	if err != nil {
		return err
	}

	// Override values with flags
	if uiFlag != "" {
		cfg.DefaultUI = uiFlag
	}

	// Load store
	db, err = store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return err
	}

	eng, err = engine.NewEngine(db, cfg, diagNotifier{log: log}, log)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	return nil
}

func tearDownRuntime(cmd *cobra.Command, args []string) error {
	return db.Close()
}

// templateNames completes the first argument with existing template names.
func templateNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return eng.Names(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// sourceNames completes the first argument with existing source names.
func sourceNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		names, err := eng.SourceNames()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

var (
	rootCmd = &cobra.Command{
		Use:   "linemix",
		Short: "linemix generates text from templates filled with random lines.",
		Long: `linemix maintains named lists of text lines (sources) and named templates
containing ${name} placeholders. Generating a template replaces every
placeholder with a line drawn at random from the source of that name.`,
	}

	templateCmd = &cobra.Command{
		Use:   "template",
		Short: "Manage templates.",
	}
	templateAddCmd = &cobra.Command{
		Use:   "add <name> [body]",
		Short: "Add a new template",
		Long: `Add a new template with the specified name.

If only the name is provided, your default editor will open allowing you to
compose the template body interactively. The template will be saved when you
close the editor.

The editor used can be configured in your configuration file or will fall back
to the EDITOR environment variable. If neither is set, a system default editor
will be used.

If both name and body are provided, the template will be created immediately
with the specified body.`,
		Example: `  # Open editor to create a template interactively
  linemix template add morning-page

  # Create a template with an inline body
  linemix template add greeting 'Hello ${Name}!'`,
		Args:     cobra.RangeArgs(1, 2),
		PreRunE:  setupRuntime,
		PostRunE: tearDownRuntime,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				body, err := editor.Edit(cfg.Editor, "")
				if err != nil {
					return err
				}
				return eng.AddTemplate(args[0], body)
			}
			return eng.AddTemplate(args[0], args[1])
		},
	}
	templateEditCmd = &cobra.Command{
		Use:   "edit <name> [body]",
		Short: "Edit an existing template",
		Long: `Edit an existing template with the specified name.

If only the name is provided, your default editor will open with the current
body, allowing you to edit it interactively. The template will be saved when
you close the editor.

If both name and body are provided, the template will be updated immediately
with the specified body.`,
		Args:              cobra.RangeArgs(1, 2),
		PreRunE:           setupRuntime,
		PostRunE:          tearDownRuntime,
		ValidArgsFunction: templateNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, found := eng.Get(args[0])
			if !found {
				return fmt.Errorf("unknown template %q", args[0])
			}

			if len(args) == 1 {
				body, err := editor.Edit(cfg.Editor, tpl.Body)
				if err != nil {
					return err
				}
				return eng.EditTemplate(args[0], body)
			}
			return eng.EditTemplate(args[0], args[1])
		},
	}
	templateDelCmd = &cobra.Command{
		Use:   "del <name>",
		Short: "Delete a template",
		Long: `Delete an existing template by name.

This will permanently remove the specified template from your collection.
Use with caution as this operation cannot be undone.`,
		Args:              cobra.ExactArgs(1),
		PreRunE:           setupRuntime,
		PostRunE:          tearDownRuntime,
		ValidArgsFunction: templateNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return eng.DeleteTemplate(args[0])
		},
	}
	templateListCmd = &cobra.Command{
		Use:      "list",
		Short:    "List templates",
		Args:     cobra.NoArgs,
		PreRunE:  setupRuntime,
		PostRunE: tearDownRuntime,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range eng.Names() {
				tpl, _ := eng.Get(name)
				fmt.Printf("%5d %s\n", tpl.Count, tpl.Name)
			}
			return nil
		},
	}

	sourceCmd = &cobra.Command{
		Use:   "source",
		Short: "Manage sources (named lists of lines).",
	}
	sourceAddCmd = &cobra.Command{
		Use:   "add <name> [content]",
		Short: "Add a new source",
		Long: `Add a new source with the specified name.

A source is a list of lines, one candidate per line. Generating a template
containing ${name} picks one line of the source at random. Lines may start
with "* " or "- " list markers; markers are stripped from picked lines.

If only the name is provided, your default editor will open allowing you to
compose the lines interactively.`,
		Example: `  # Open editor to compose the lines interactively
  linemix source add Mood

  # Create a source with inline content
  linemix source add Mood $'happy\nsad\ncurious'`,
		Args:     cobra.RangeArgs(1, 2),
		PreRunE:  setupRuntime,
		PostRunE: tearDownRuntime,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				content, err := editor.Edit(cfg.Editor, "")
				if err != nil {
					return err
				}
				return eng.AddSource(args[0], content)
			}
			return eng.AddSource(args[0], args[1])
		},
	}
	sourceEditCmd = &cobra.Command{
		Use:               "edit <name> [content]",
		Short:             "Edit an existing source",
		Args:              cobra.RangeArgs(1, 2),
		PreRunE:           setupRuntime,
		PostRunE:          tearDownRuntime,
		ValidArgsFunction: sourceNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				content, err := eng.SourceContent(args[0])
				if err != nil {
					return err
				}
				content, err = editor.Edit(cfg.Editor, content)
				if err != nil {
					return err
				}
				return eng.EditSource(args[0], content)
			}
			return eng.EditSource(args[0], args[1])
		},
	}
	sourceDelCmd = &cobra.Command{
		Use:               "del <name>",
		Short:             "Delete a source",
		Args:              cobra.ExactArgs(1),
		PreRunE:           setupRuntime,
		PostRunE:          tearDownRuntime,
		ValidArgsFunction: sourceNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return eng.DeleteSource(args[0])
		},
	}
	sourceListCmd = &cobra.Command{
		Use:      "list",
		Short:    "List sources",
		Args:     cobra.NoArgs,
		PreRunE:  setupRuntime,
		PostRunE: tearDownRuntime,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := eng.SourceNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
	sourceShowCmd = &cobra.Command{
		Use:               "show <name>",
		Short:             "Print the lines of a source",
		Args:              cobra.ExactArgs(1),
		PreRunE:           setupRuntime,
		PostRunE:          tearDownRuntime,
		ValidArgsFunction: sourceNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := eng.SourceContent(args[0])
			if err != nil {
				return err
			}
			fmt.Println(content)
			return nil
		},
	}
	sourcePickCmd = &cobra.Command{
		Use:               "pick <name>",
		Short:             "Draw one random line from a source",
		Args:              cobra.ExactArgs(1),
		PreRunE:           setupRuntime,
		PostRunE:          tearDownRuntime,
		ValidArgsFunction: sourceNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := eng.PickFromSource(args[0], rawFlag)
			if err != nil {
				return err
			}
			fmt.Println(line)
			return nil
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate [template]",
		Short: "Generate text from a template.",
		Long: `Generate text from a template by replacing every ${name} placeholder with
a random line drawn from the source of that name.

Without an argument, an interactive picker is shown. Unresolved placeholders
and empty sources are skipped with a warning; the rest of the template is
still generated.`,
		Args:              cobra.MaximumNArgs(1),
		PreRunE:           setupRuntime,
		PostRunE:          tearDownRuntime,
		ValidArgsFunction: templateNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			var err error
			if len(args) == 1 {
				name = args[0]
			} else {
				name, err = eng.SelectTemplate()
				if err != nil {
					return fmt.Errorf("failed to select template: %w", err)
				}
			}

			value, err := eng.Generate(name)
			if err != nil {
				return fmt.Errorf("failed to generate template %q: %w", name, err)
			}

			if clipboardFlag {
				if err := clipboard.WriteAll(value); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				return nil
			}

			fmt.Println(value)
			return nil
		},
	}
)

func main() {
	// Flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Overrides default configuration path.")
	generateCmd.Flags().StringVar(&uiFlag, "ui", "", "Specify UI: 'terminal', 'fuzzy' or 'rofi'. Overrides config.")
	generateCmd.Flags().BoolVar(&clipboardFlag, "clipboard", false, "Copy the result to the clipboard instead of printing it.")
	sourcePickCmd.Flags().BoolVar(&rawFlag, "raw", false, "Keep leading list markers on the picked line.")

	templateCmd.AddCommand(
		templateAddCmd,
		templateEditCmd,
		templateDelCmd,
		templateListCmd,
	)
	sourceCmd.AddCommand(
		sourceAddCmd,
		sourceEditCmd,
		sourceDelCmd,
		sourceListCmd,
		sourceShowCmd,
		sourcePickCmd,
	)

	rootCmd.AddCommand(templateCmd, sourceCmd, generateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
