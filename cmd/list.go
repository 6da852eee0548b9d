package cmd

import (
	"github.com/spf13/cobra"

	"tagsweep.dev/pkg/tagsweep/internal/controller"
	"tagsweep.dev/pkg/tagsweep/pkg"
)

const listLongDescription = `List searched files and how many comment tags each one contains,
regardless of level.

` + pathsHelp

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [paths...]",
		Short: "List files and tag counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := pkg.Collect(searcher.SearchAll(parsePaths(args), searchOptions()))
			if err != nil {
				return err
			}

			cmd.Printf("\n%s", controller.RenderFileCounts(tags))

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
