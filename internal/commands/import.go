package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dastanaron/mozbookmarks/internal/models"
	"github.com/dastanaron/mozbookmarks/internal/repository"
	"github.com/dastanaron/mozbookmarks/internal/service"
)

// ImportCommand handles JSON backup import into the database
type ImportCommand struct {
	treeSvc *service.TreeService
	out     io.Writer
}

// NewImportCommand creates a new import command
func NewImportCommand(repo repository.Repository, out io.Writer) *ImportCommand {
	return &ImportCommand{
		treeSvc: service.NewTreeService(repo),
		out:     out,
	}
}

// Execute imports the JSON backup at filePath under name
func (c *ImportCommand) Execute(filePath, name string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	root, err := c.treeSvc.ImportJSON(name, file)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", filePath, err)
	}

	fmt.Fprintf(c.out, "Imported %d nodes as %q.\n", models.Count(root), name)
	return nil
}
