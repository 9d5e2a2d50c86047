package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dastanaron/mozbookmarks/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "bookmarks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func loadFixture(t *testing.T) ([]byte, *models.Root) {
	t.Helper()
	data, err := os.ReadFile("../models/testdata/places.json")
	require.NoError(t, err)
	root, err := models.DecodeRoot(data)
	require.NoError(t, err)
	return data, root
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	data, root := loadFixture(t)

	require.NoError(t, repo.Trees().Save("firefox", root))

	loaded, err := repo.Trees().Load("firefox")
	require.NoError(t, err)
	assert.Equal(t, root, loaded)

	out, err := models.Encode(loaded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(out))
}

func TestSavePreservesOptionalShapes(t *testing.T) {
	repo := newTestRepo(t)
	empty := ""
	tags := models.ParseTags("")
	root := &models.Root{
		Envelope: models.Envelope{Guid: "root________", TypeCode: models.TypeCodeContainer, ID: 1},
		Type:     models.TypeContainer,
		RootName: "placesRoot",
		Children: []models.Bookmark{
			&models.Folder{Envelope: models.Envelope{Guid: "a", Title: "no children key"}},
			&models.Folder{Envelope: models.Envelope{Guid: "b", Index: 1}, Children: []models.Bookmark{}},
			&models.Entry{Envelope: models.Envelope{Guid: "c", Index: 2}, URI: "u", Tags: &tags, Charset: &empty},
			&models.Separator{Envelope: models.Envelope{Guid: "d", Index: 3, DateAdded: models.FromMicros(-5)}},
		},
	}

	require.NoError(t, repo.Trees().Save("shapes", root))
	loaded, err := repo.Trees().Load("shapes")
	require.NoError(t, err)
	assert.Equal(t, root, loaded)
}

func TestSaveReplacesExisting(t *testing.T) {
	repo := newTestRepo(t)
	_, root := loadFixture(t)

	require.NoError(t, repo.Trees().Save("doc", root))
	small := &models.Root{Type: models.TypeContainer, RootName: "placesRoot"}
	require.NoError(t, repo.Trees().Save("doc", small))

	loaded, err := repo.Trees().Load("doc")
	require.NoError(t, err)
	assert.Equal(t, small, loaded)

	docs, err := repo.Trees().List()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc", docs[0].Name)
	assert.Equal(t, 1, docs[0].Nodes)
}

func TestListAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	_, root := loadFixture(t)

	require.NoError(t, repo.Trees().Save("b", root))
	require.NoError(t, repo.Trees().Save("a", root))

	docs, err := repo.Trees().List()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Name)
	assert.Equal(t, models.Count(root), docs[0].Nodes)

	require.NoError(t, repo.Trees().Delete("a"))
	assert.ErrorIs(t, repo.Trees().Delete("a"), ErrNotFound)

	_, err = repo.Trees().Load("a")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Trees().Load("b")
	assert.NoError(t, err)
}
