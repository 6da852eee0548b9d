package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifySource(t *testing.T) {
	t.Run("rust files get the macro-aware grammar", func(t *testing.T) {
		kind, ok := IdentifySource("src/main.rs")
		assert.True(t, ok)
		assert.Equal(t, SourceRust, kind)
	})

	t.Run("c-family files get the comment-only grammar", func(t *testing.T) {
		for _, path := range []Path{
			"a.c", "b.cpp", "c.cc", "d.h", "e.hpp", "f.java", "g.cs",
			"h.go", "i.js", "j.jsx", "k.ts", "l.tsx", "m.kt", "n.swift", "o.scala",
		} {
			kind, ok := IdentifySource(path)
			assert.True(t, ok, "path %q", path)
			assert.Equal(t, SourceCLike, kind, "path %q", path)
		}
	})

	t.Run("unknown or missing extensions are not scanned", func(t *testing.T) {
		for _, path := range []Path{"README.md", "Makefile", "script.py", "noext"} {
			_, ok := IdentifySource(path)
			assert.False(t, ok, "path %q", path)
		}
	})
}
