package commands

import (
	"fmt"
	"io"

	"github.com/dastanaron/mozbookmarks/internal/models"
	"github.com/dastanaron/mozbookmarks/internal/repository"
	"github.com/dastanaron/mozbookmarks/internal/service"

	"gopkg.in/yaml.v3"
)

// SearchCommand lists entries of a stored tree matching a query
type SearchCommand struct {
	treeSvc *service.TreeService
	out     io.Writer
}

// NewSearchCommand creates a new search command
func NewSearchCommand(repo repository.Repository, out io.Writer) *SearchCommand {
	return &SearchCommand{treeSvc: service.NewTreeService(repo), out: out}
}

// Execute prints matching entries, one per line
func (c *SearchCommand) Execute(name, query string) error {
	found, err := c.treeSvc.Search(name, query)
	if err != nil {
		return err
	}
	for _, e := range found {
		fmt.Fprintf(c.out, "%s\t%s\t%s\n", e.Guid, e.Title, e.URI)
	}
	if len(found) == 0 {
		fmt.Fprintln(c.out, "No bookmarks found.")
	}
	return nil
}

// DoublesCommand reports entries sharing a URI
type DoublesCommand struct {
	treeSvc *service.TreeService
	out     io.Writer
}

// NewDoublesCommand creates a new doubles command
func NewDoublesCommand(repo repository.Repository, out io.Writer) *DoublesCommand {
	return &DoublesCommand{treeSvc: service.NewTreeService(repo), out: out}
}

// Execute writes a YAML report of duplicate URIs in the tree stored under name
func (c *DoublesCommand) Execute(name string) error {
	dups, err := c.treeSvc.Duplicates(name)
	if err != nil {
		return err
	}
	if len(dups) == 0 {
		fmt.Fprintln(c.out, "No duplicate bookmarks found.")
		return nil
	}
	return writeYAML(c.out, dups)
}

// StatsCommand summarises a tree
type StatsCommand struct {
	treeSvc *service.TreeService
	out     io.Writer
}

// NewStatsCommand creates a new stats command
func NewStatsCommand(repo repository.Repository, out io.Writer) *StatsCommand {
	return &StatsCommand{treeSvc: service.NewTreeService(repo), out: out}
}

// Execute writes a YAML summary of the tree stored under name
func (c *StatsCommand) Execute(name string) error {
	st, err := c.treeSvc.Stats(name)
	if err != nil {
		return err
	}
	return writeYAML(c.out, st)
}

// ExecuteTree writes a YAML summary of an in-memory tree
func (c *StatsCommand) ExecuteTree(root models.Explorable) error {
	return writeYAML(c.out, service.StatsOf(root))
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return enc.Close()
}
