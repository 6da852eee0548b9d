package controller

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// encodeWriter buffers the whole tag stream and emits one document on Flush.
type encodeWriter struct {
	cmd    *cobra.Command
	tags   []m.Tag
	encode func([]m.Tag) ([]byte, error)
}

func newJSONWriter(cmd *cobra.Command) *encodeWriter {
	return &encodeWriter{
		cmd: cmd,
		encode: func(tags []m.Tag) ([]byte, error) {
			out, err := json.MarshalIndent(tags, "", "  ")
			if err != nil {
				return nil, err
			}

			return append(out, '\n'), nil
		},
	}
}

func newYAMLWriter(cmd *cobra.Command) *encodeWriter {
	return &encodeWriter{
		cmd:    cmd,
		encode: func(tags []m.Tag) ([]byte, error) { return yaml.Marshal(tags) },
	}
}

// Write collects a tag for the final document.
func (w *encodeWriter) Write(tag m.Tag) error {
	w.tags = append(w.tags, tag)
	return nil
}

// Flush encodes every collected tag. An empty search encodes as an empty
// list, not null.
func (w *encodeWriter) Flush() error {
	if w.tags == nil {
		w.tags = []m.Tag{}
	}

	out, err := w.encode(w.tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	w.cmd.Print(string(out))

	return nil
}
