package cmd

import (
	"github.com/spf13/cobra"

	"tagsweep.dev/pkg/tagsweep/internal/controller"
)

// kindsCmd represents the kinds command.
var kindsCmd = newKindsCmd()

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "Show the recognized tag kinds",
		Long:  "Show every recognized tag kind with its accepted keywords and severity level.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("\n%s", controller.RenderKinds())
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
