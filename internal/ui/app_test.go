package ui

import (
	"os"
	"testing"
	"time"

	"github.com/dastanaron/mozbookmarks/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *models.Root {
	t.Helper()
	data, err := os.ReadFile("../models/testdata/places.json")
	require.NoError(t, err)
	root, err := models.DecodeRoot(data)
	require.NoError(t, err)
	return root
}

func TestBuildTree(t *testing.T) {
	top, items := buildTree(loadFixture(t))

	require.Len(t, items, 8)
	assert.Same(t, top, items[0].view)
	assert.Equal(t, "placesRoot", top.GetText())
	assert.Len(t, top.GetChildren(), 3)

	var labels []string
	var parents []int
	for i, it := range items {
		labels = append(labels, it.view.GetText())
		parents = append(parents, it.parent)
		assert.Equal(t, i, it.view.GetReference())
	}
	assert.Equal(t, []string{
		"placesRoot",
		"toolbar",
		"Docs",
		"facebook/Docusaurus: Easy to maintain open source documentation websites.",
		"────────",
		"Folder 2",
		"Common security issues in financially-orientated web",
		"Bookmark title",
	}, labels)
	assert.Equal(t, []int{-1, 0, 0, 2, 2, 2, 5, 0}, parents)
}

func TestFindNext(t *testing.T) {
	a := NewApp("places", loadFixture(t))
	_, a.items = buildTree(a.root)

	tests := []struct {
		name  string
		query string
		from  int
		want  int
	}{
		{"title", "docs", 0, 2},
		{"uri", "EXAMPLE.COM", 0, 7},
		{"tag", "pdf", 0, 6},
		{"wraps around", "docs", 5, 2},
		{"full cycle returns current", "folder 2", 5, 5},
		{"no match", "nothing-like-this", 0, -1},
		{"empty query", "", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.findNext(tt.query, tt.from))
		})
	}
}

func TestJumpExpandsAncestors(t *testing.T) {
	a := NewApp("places", loadFixture(t))
	top, items := buildTree(a.root)
	a.items = items
	a.tree.SetRoot(top)

	items[2].view.SetExpanded(false)
	items[5].view.SetExpanded(false)
	a.jump(6)

	assert.Equal(t, 6, a.current)
	assert.True(t, items[2].view.IsExpanded())
	assert.True(t, items[5].view.IsExpanded())
	assert.Same(t, items[6].view, a.tree.GetCurrentNode())
}

func TestDetailText(t *testing.T) {
	a := NewApp("places", loadFixture(t))
	a.now = func() time.Time { return time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC) }
	_, a.items = buildTree(a.root)

	text := a.detailText(a.items[3].node)
	assert.Contains(t, text, "Bookmark")
	assert.Contains(t, text, "https://github.com/facebook/Docusaurus")
	assert.Contains(t, text, "UTF-8")
	assert.Contains(t, text, "irnkVN3Z0Wm8")
	assert.Contains(t, text, "2017-12-27T18:55:59Z")
	assert.Contains(t, text, "years ago")

	text = a.detailText(a.items[6].node)
	assert.Contains(t, text, "security, pdf")
}
