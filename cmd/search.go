package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tagsweep.dev/pkg/tagsweep/internal/controller"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
	"tagsweep.dev/pkg/tagsweep/pkg"
)

// runSearch is the root command's action: search the given paths and hand
// every matching tag to the selected writer.
func runSearch(cmd *cobra.Command, args []string) error {
	format, err := controller.ParseFormat(viper.GetString(formatConfigKey))
	if err != nil {
		return err
	}

	filter, err := tagFilter()
	if err != nil {
		return err
	}

	paths := parsePaths(args)
	opts := searchOptions()

	if interactiveFlag && controller.IsTTY(cmd.OutOrStdout()) {
		return runPager(cmd, paths, filter)
	}

	writer := controller.NewTagWriter(cmd, format)

	tags := pkg.Filter(searcher.SearchAll(paths, opts), filter)

	for {
		tag, err := tags.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return err
		}

		if err := writer.Write(tag); err != nil {
			return err
		}
	}

	return writer.Flush()
}

// runPager streams the search into the interactive pager.
func runPager(cmd *cobra.Command, paths []m.Path, filter func(m.Tag) bool) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	stream := searcher.Stream(ctx, paths, searchOptions())

	filtered := make(chan m.Tag, 1)
	go func() {
		defer close(filtered)

		for tag := range stream {
			if !filter(tag) {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case filtered <- tag:
			}
		}
	}()

	return controller.NewTUI(os.Stdout).Run(ctx, filtered)
}

// tagFilter builds the level/kind predicate from the CLI flags.
func tagFilter() (func(m.Tag) bool, error) {
	wanted := make(map[m.TagLevel]bool)

	for _, name := range viper.GetStringSlice(levelsConfigKey) {
		level, err := m.ParseTagLevel(name)
		if err != nil {
			return nil, err
		}

		wanted[level] = true
	}

	var kind m.TagKind
	if tagFlag != "" {
		kind = m.ParseTagKind(tagFlag)
	}

	return func(tag m.Tag) bool {
		if tagFlag != "" {
			return tag.Kind == kind
		}

		return wanted[tag.Kind.Level()]
	}, nil
}
