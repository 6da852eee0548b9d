package controller

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

func TestJSONWriterEncodesTagList(t *testing.T) {
	cmd, buf := newTestCmd()
	w := NewTagWriter(cmd, FormatJSON)

	when := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, w.Write(m.Tag{
		Path:    "a.c",
		Line:    2,
		Kind:    m.KindTodo,
		Message: "encode me",
		Git:     &m.GitInfo{Time: when, Author: "Alex"},
	}))
	require.NoError(t, w.Flush())

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded, 1)
	assert.Equal(t, "a.c", decoded[0]["path"])
	assert.Equal(t, float64(2), decoded[0]["line"])
	assert.Equal(t, "TODO", decoded[0]["kind"])
	assert.Equal(t, "encode me", decoded[0]["message"])

	git, ok := decoded[0]["git"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alex", git["author"])
}

func TestJSONWriterEmptySearchIsEmptyList(t *testing.T) {
	cmd, buf := newTestCmd()
	w := NewTagWriter(cmd, FormatJSON)

	require.NoError(t, w.Flush())
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLWriterEncodesTagList(t *testing.T) {
	cmd, buf := newTestCmd()
	w := NewTagWriter(cmd, FormatYAML)

	require.NoError(t, w.Write(m.Tag{Path: "b.rs", Line: 9, Kind: m.KindTodoMacro}))
	require.NoError(t, w.Flush())

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded, 1)
	assert.Equal(t, "b.rs", decoded[0]["path"])
	assert.Equal(t, 9, decoded[0]["line"])
	assert.Equal(t, "TODO!", decoded[0]["kind"])
	assert.NotContains(t, decoded[0], "git", "absent provenance is omitted")
}
