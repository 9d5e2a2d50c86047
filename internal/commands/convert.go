package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dastanaron/mozbookmarks/internal/models"
	"github.com/dastanaron/mozbookmarks/internal/parser"
	"github.com/dastanaron/mozbookmarks/internal/service"
)

// ConvertCommand turns a Netscape HTML bookmark file into a JSON backup
type ConvertCommand struct {
	parser *parser.Parser
	indent string
	out    io.Writer
}

// NewConvertCommand creates a new convert command
func NewConvertCommand(indent string, out io.Writer) *ConvertCommand {
	return &ConvertCommand{
		parser: parser.NewParser(),
		indent: indent,
		out:    out,
	}
}

// Execute reads inPath and writes the JSON document to outPath
func (c *ConvertCommand) Execute(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer in.Close()

	root, err := c.parser.ParseBookmarksHTML(in)
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer out.Close()

	if err := service.WriteDocument(out, root, c.indent); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Converted %d nodes to %s\n", models.Count(root), outPath)
	return nil
}
