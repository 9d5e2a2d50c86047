package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dastanaron/mozbookmarks/internal/repository"
	"github.com/dastanaron/mozbookmarks/internal/service"

	"github.com/dustin/go-humanize"
)

// ListCommand prints the stored documents
type ListCommand struct {
	treeSvc *service.TreeService
	out     io.Writer
}

// NewListCommand creates a new list command
func NewListCommand(repo repository.Repository, out io.Writer) *ListCommand {
	return &ListCommand{treeSvc: service.NewTreeService(repo), out: out}
}

// Execute prints one line per stored document
func (c *ListCommand) Execute() error {
	docs, err := c.treeSvc.List()
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(docs) == 0 {
		fmt.Fprintln(c.out, "No documents stored.")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tNODES\tIMPORTED")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, humanize.Comma(int64(d.Nodes)), humanize.Time(d.ImportedAt))
	}
	return w.Flush()
}

// DeleteCommand removes a stored document
type DeleteCommand struct {
	treeSvc *service.TreeService
	out     io.Writer
}

// NewDeleteCommand creates a new delete command
func NewDeleteCommand(repo repository.Repository, out io.Writer) *DeleteCommand {
	return &DeleteCommand{treeSvc: service.NewTreeService(repo), out: out}
}

// Execute deletes the document stored under name
func (c *DeleteCommand) Execute(name string) error {
	if err := c.treeSvc.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted %q.\n", name)
	return nil
}
