// Package cmd provides the root command and CLI setup for tagsweep.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tagsweep.dev/pkg/tagsweep/internal/adapter"
	"tagsweep.dev/pkg/tagsweep/internal/domain"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

var searcher *domain.Searcher

// levelsFlag filters reported tags by severity level.
var levelsFlag []string

// tagFlag restricts the search to a single tag kind.
var tagFlag string

// formatFlag selects the report encoding (text, json, yaml).
var formatFlag string

// noIgnoreFlag disables gitignore filtering when set.
var noIgnoreFlag bool

// noBlameFlag disables blame enrichment when set.
var noBlameFlag bool

// interactiveFlag opens the scrolling pager instead of printing rows.
var interactiveFlag bool

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	searcher = domain.NewSearcher(
		adapter.NewLocalSourceWalker(),
		adapter.NewGitHistoryOpener(),
	)
}

const pathsHelp = `Accepts one or more paths to search, defaulting to the
current directory:
  tagsweep .            scan the current directory tree
  tagsweep src include  scan several trees in order`

const rootLongDescription = `Tagsweep finds comment tags (TODO, FIXME, HACK, NOTE, ...) and Rust
todo!() macros in source trees and reports each occurrence with its
location, severity level and, inside a git repository, the author and
time of the last change to that line.

` + pathsHelp

// rootCmd represents the base command. Called without a subcommand it runs
// the search directly, so `tagsweep` behaves like `tagsweep search`.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tagsweep [paths...]",
		Short: "Find comment tags in source trees",
		Long:  rootLongDescription,
		Args:  cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: runSearch,
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)

	configureSearchFlags(cmd)
}

func configureSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&levelsFlag, levelsFlagName, "l", viper.GetStringSlice(levelsConfigKey), "only show tags of these levels (fix, improvement, information, custom)")
	bindFlagToConfig(cmd.Flags().Lookup(levelsFlagName), levelsConfigKey)

	cmd.Flags().StringVarP(&tagFlag, tagFlagName, "t", "", "only search for a specific tag kind")

	cmd.Flags().StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(formatConfigKey), "output format (text, json, yaml)")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatConfigKey)

	cmd.Flags().BoolVarP(&noIgnoreFlag, noIgnoreFlagName, "i", viper.GetBool(noIgnoreConfigKey), "do not skip gitignored files (faster)")
	bindFlagToConfig(cmd.Flags().Lookup(noIgnoreFlagName), noIgnoreConfigKey)

	cmd.Flags().BoolVarP(&noBlameFlag, noBlameFlagName, "b", viper.GetBool(noBlameConfigKey), "do not look up last-change author and time (faster)")
	bindFlagToConfig(cmd.Flags().Lookup(noBlameFlagName), noBlameConfigKey)

	cmd.Flags().BoolVar(&interactiveFlag, interactiveFlagName, false, "browse results in a scrolling pager")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parsePaths converts positional args to search roots, defaulting to `.`.
func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// searchOptions builds domain options from the no-ignore/no-blame flags.
func searchOptions() domain.SearchOptions {
	return domain.SearchOptions{
		GitIgnore: !viper.GetBool(noIgnoreConfigKey),
		GitBlame:  !viper.GetBool(noBlameConfigKey),
	}
}
