package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

type fileStat struct {
	path  string
	count int
}

// RenderFileCounts renders a per-file tag count table for the list command.
func RenderFileCounts(tags []m.Tag) string {
	statsList := buildFileStats(tags)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Tags"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, stat := range statsList {
		table.Append([]string{stat.path, fmt.Sprintf("%d", stat.count)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(statsList)),
		fmt.Sprintf("%d", len(tags)),
	})

	table.Render()

	return tableBuffer.String()
}

func buildFileStats(tags []m.Tag) []fileStat {
	counts := make(map[string]int)

	for _, tag := range tags {
		counts[string(tag.Path)]++
	}

	statsList := make([]fileStat, 0, len(counts))
	for path, count := range counts {
		statsList = append(statsList, fileStat{path: path, count: count})
	}

	sort.Slice(statsList, func(i, j int) bool {
		return statsList[i].path < statsList[j].path
	})

	return statsList
}

// kindRow is one taxonomy entry for the kinds command.
type kindRow struct {
	kind     m.TagKind
	synonyms string
}

// kindRows lists every canonical kind with its accepted keywords.
var kindRows = []kindRow{
	{m.KindTodo, "todo"},
	{m.KindTodoMacro, "todo!"},
	{m.KindBug, "bug, debug"},
	{m.KindFix, "fix, fixme"},
	{m.KindNote, "note, nb"},
	{m.KindUndone, "undone"},
	{m.KindHack, "hack, bodge, kludge"},
	{m.KindXxx, "xxx"},
	{m.KindOptimize, "optimize, optimise, optimizeme, optimiseme"},
	{m.KindSafety, "safety"},
	{m.KindInvariant, "invariant"},
	{m.KindLint, "lint"},
	{m.KindIgnored, "ignored"},
}

// RenderKinds renders the tag taxonomy table for the kinds command.
func RenderKinds() string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Kind", "Keywords", "Level"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, row := range kindRows {
		table.Append([]string{
			string(row.kind),
			row.synonyms,
			row.kind.Level().String(),
		})
	}

	table.Render()

	return tableBuffer.String()
}
