package main

import (
	"os"

	"github.com/dastanaron/mozbookmarks/internal/commands"
	"github.com/dastanaron/mozbookmarks/internal/service"
	"github.com/dastanaron/mozbookmarks/internal/ui"

	"github.com/spf13/cobra"
)

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a JSON bookmark backup into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}
			return commands.NewImportCommand(repo, cmd.OutOrStdout()).Execute(args[0], e.name)
		},
	}
}

func newExportCmd(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <out>",
		Short: "Export a stored tree as JSON or Netscape HTML",
		Long: `Export a stored tree to a file.

The format defaults to html for .html/.htm files and to json otherwise.

Examples:
  bookmarks-cli export backup.json
  bookmarks-cli export --name work bookmarks.html
  bookmarks-cli export --format json out.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}
			return commands.NewExportCommand(repo, e.cfg.Indent, cmd.OutOrStdout()).Execute(e.name, args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or html")
	return cmd
}

func newConvertCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in.html> <out.json>",
		Short: "Convert a Netscape HTML bookmark file to a JSON backup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewConvertCommand(e.cfg.Indent, cmd.OutOrStdout()).Execute(args[0], args[1])
		},
	}
}

func newPrintCmd(e *env) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "print [file.json]",
		Short: "Print a bookmark tree in pre-order",
		Long: `Print every node of a bookmark tree, indented by depth.

Without a file argument the tree stored under --name is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printCmd := commands.NewPrintCommand(cmd.OutOrStdout(), depth)
			if len(args) == 1 {
				return printCmd.ExecuteFile(args[0])
			}
			repo, err := e.repository()
			if err != nil {
				return err
			}
			root, err := service.NewTreeService(repo).Load(e.name)
			if err != nil {
				return err
			}
			return printCmd.Execute(root)
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", -1, "Do not descend below this depth (-1 for all)")
	return cmd
}

func newCheckCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.json>...",
		Short: "Check that documents survive a decode/encode round trip",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check := commands.NewCheckCommand(cmd.OutOrStdout())
			var firstErr error
			for _, path := range args {
				if err := check.Execute(path); err != nil {
					cmd.PrintErrln(err)
					if firstErr == nil {
						firstErr = err
					}
				}
			}
			return firstErr
		},
	}
}

func newSearchCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search entries by title, uri or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}
			return commands.NewSearchCommand(repo, cmd.OutOrStdout()).Execute(e.name, args[0])
		},
	}
}

func newDoublesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "doubles",
		Short: "Report entries sharing the same uri",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}
			return commands.NewDoublesCommand(repo, cmd.OutOrStdout()).Execute(e.name)
		},
	}
}

func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file.json]",
		Short: "Summarise a bookmark tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				root, err := service.ReadDocument(f)
				if err != nil {
					return err
				}
				return commands.NewStatsCommand(nil, cmd.OutOrStdout()).ExecuteTree(root)
			}
			repo, err := e.repository()
			if err != nil {
				return err
			}
			return commands.NewStatsCommand(repo, cmd.OutOrStdout()).Execute(e.name)
		},
	}
}

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List stored bookmark trees",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}
			return commands.NewListCommand(repo, cmd.OutOrStdout()).Execute()
		},
	}
}

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the tree stored under --name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}
			return commands.NewDeleteCommand(repo, cmd.OutOrStdout()).Execute(e.name)
		},
	}
}

func newTuiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse a stored tree in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}
			root, err := service.NewTreeService(repo).Load(e.name)
			if err != nil {
				return err
			}
			return ui.NewApp(e.name, root).Run()
		},
	}
}
