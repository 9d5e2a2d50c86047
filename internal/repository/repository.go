package repository

import (
	"errors"

	"github.com/dastanaron/mozbookmarks/internal/models"
)

// ErrNotFound is returned when no document has the requested name
var ErrNotFound = errors.New("document not found")

// TreeRepository defines operations for stored bookmark trees
type TreeRepository interface {
	List() ([]models.Document, error)
	// Save stores root under name, replacing any tree already stored there.
	Save(name string, root *models.Root) error
	Load(name string) (*models.Root, error)
	Delete(name string) error
}

// Repository combines all repositories
type Repository interface {
	Trees() TreeRepository
	Close() error
}
