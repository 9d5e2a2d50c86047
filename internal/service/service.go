package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/dastanaron/mozbookmarks/internal/logging"
	"github.com/dastanaron/mozbookmarks/internal/models"
	"github.com/dastanaron/mozbookmarks/internal/repository"
)

// TreeService provides business logic for stored bookmark trees
type TreeService struct {
	repo repository.Repository
}

// NewTreeService creates a new tree service
func NewTreeService(repo repository.Repository) *TreeService {
	return &TreeService{repo: repo}
}

// ReadDocument decodes a JSON bookmark backup from r
func ReadDocument(r io.Reader) (*models.Root, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return models.DecodeRoot(data)
}

// WriteDocument encodes root to w, indented when indent is not empty
func WriteDocument(w io.Writer, root *models.Root, indent string) error {
	var (
		data []byte
		err  error
	)
	if indent == "" {
		data, err = models.Encode(root)
	} else {
		data, err = models.EncodeIndent(root, "", indent)
	}
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// ImportJSON decodes a JSON backup from r and stores it under name
func (s *TreeService) ImportJSON(name string, r io.Reader) (*models.Root, error) {
	root, err := ReadDocument(r)
	if err != nil {
		return nil, err
	}
	if err := s.Save(name, root); err != nil {
		return nil, err
	}
	return root, nil
}

// Save stores root under name
func (s *TreeService) Save(name string, root *models.Root) error {
	if err := s.repo.Trees().Save(name, root); err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	logging.Infow("stored bookmark tree", "name", name, "nodes", models.Count(root))
	return nil
}

// ExportJSON writes the tree stored under name to w
func (s *TreeService) ExportJSON(name string, w io.Writer, indent string) error {
	root, err := s.Load(name)
	if err != nil {
		return err
	}
	return WriteDocument(w, root, indent)
}

// Load returns the tree stored under name
func (s *TreeService) Load(name string) (*models.Root, error) {
	root, err := s.repo.Trees().Load(name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return root, nil
}

// List returns all stored documents
func (s *TreeService) List() ([]models.Document, error) {
	return s.repo.Trees().List()
}

// Delete removes the tree stored under name
func (s *TreeService) Delete(name string) error {
	if err := s.repo.Trees().Delete(name); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return nil
}

// Search returns entries of the stored tree matching query
func (s *TreeService) Search(name, query string) ([]*models.Entry, error) {
	root, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	return SearchTree(root, query), nil
}

// Duplicates returns URIs held by more than one entry of the stored tree
func (s *TreeService) Duplicates(name string) ([]Duplicate, error) {
	root, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	return DuplicatesIn(root), nil
}

// Stats summarises the stored tree
func (s *TreeService) Stats(name string) (*Stats, error) {
	root, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	return StatsOf(root), nil
}

// SearchTree filters entries by query string. Title, URI and tag members
// are matched case-insensitively; results keep tree order. An empty query
// matches every entry.
func SearchTree(root models.Explorable, query string) []*models.Entry {
	queryLower := strings.ToLower(query)
	var found []*models.Entry
	_ = models.Explore(root, func(n models.Node, _ int) error {
		e, ok := n.(*models.Entry)
		if !ok {
			return nil
		}
		if matches(e, queryLower) {
			found = append(found, e)
		}
		return nil
	})
	return found
}

func matches(e *models.Entry, queryLower string) bool {
	if strings.Contains(strings.ToLower(e.Title), queryLower) ||
		strings.Contains(strings.ToLower(e.URI), queryLower) {
		return true
	}
	if e.Tags == nil {
		return false
	}
	for _, tag := range e.Tags.Members() {
		if strings.Contains(strings.ToLower(tag), queryLower) {
			return true
		}
	}
	return false
}
