package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dastanaron/mozbookmarks/internal/logging"
	"github.com/dastanaron/mozbookmarks/internal/models"
)

// ErrMismatch is returned when a document does not survive a round trip
var ErrMismatch = errors.New("round trip mismatch")

// CheckCommand verifies that a document decodes and re-encodes to an
// equivalent JSON value
type CheckCommand struct {
	out io.Writer
}

// NewCheckCommand creates a new check command
func NewCheckCommand(out io.Writer) *CheckCommand {
	return &CheckCommand{out: out}
}

// Execute checks the document at filePath
func (c *CheckCommand) Execute(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}

	node, err := models.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", filePath, err)
	}

	encoded, err := models.Encode(node)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filePath, err)
	}

	same, err := models.Equivalent(data, encoded)
	if err != nil {
		return err
	}

	nodes := 1
	if e, ok := node.(models.Explorable); ok {
		nodes = models.Count(e)
	}
	logging.Debugf("checked %s: %d nodes, %d bytes in, %d bytes out", filePath, nodes, len(data), len(encoded))

	if !same {
		fmt.Fprintf(c.out, "MISMATCH %s (%d nodes)\n", filePath, nodes)
		return fmt.Errorf("%s: %w", filePath, ErrMismatch)
	}
	fmt.Fprintf(c.out, "OK %s (%d nodes)\n", filePath, nodes)
	return nil
}
