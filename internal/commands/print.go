package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dastanaron/mozbookmarks/internal/models"
	"github.com/dastanaron/mozbookmarks/internal/service"

	"github.com/dustin/go-humanize"
)

// PrintCommand lists every node of a tree in pre-order
type PrintCommand struct {
	out      io.Writer
	maxDepth int
	now      func() time.Time
}

// NewPrintCommand creates a new print command. maxDepth < 0 prints the
// whole tree.
func NewPrintCommand(out io.Writer, maxDepth int) *PrintCommand {
	return &PrintCommand{out: out, maxDepth: maxDepth, now: time.Now}
}

// ExecuteFile prints the JSON document at filePath
func (c *PrintCommand) ExecuteFile(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	root, err := service.ReadDocument(file)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	return c.Execute(root)
}

// Execute prints the tree rooted at root
func (c *PrintCommand) Execute(root models.Explorable) error {
	return models.Explore(root, func(n models.Node, depth int) error {
		if _, err := fmt.Fprintf(c.out, "%s%s  [%s]\n", strings.Repeat("  ", depth), n, c.added(n)); err != nil {
			return err
		}
		if c.maxDepth >= 0 && depth >= c.maxDepth {
			return models.SkipChildren
		}
		return nil
	})
}

func (c *PrintCommand) added(n models.Node) string {
	return humanize.RelTime(n.Common().DateAdded.Time(), c.now(), "ago", "from now")
}
