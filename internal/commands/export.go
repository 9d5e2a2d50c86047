package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dastanaron/mozbookmarks/internal/models"
	"github.com/dastanaron/mozbookmarks/internal/parser"
	"github.com/dastanaron/mozbookmarks/internal/repository"
	"github.com/dastanaron/mozbookmarks/internal/service"

	"golang.org/x/net/html"
)

// Export formats
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// ExportCommand handles export of a stored tree to a file
type ExportCommand struct {
	treeSvc *service.TreeService
	indent  string
	out     io.Writer
}

// NewExportCommand creates a new export command
func NewExportCommand(repo repository.Repository, indent string, out io.Writer) *ExportCommand {
	return &ExportCommand{
		treeSvc: service.NewTreeService(repo),
		indent:  indent,
		out:     out,
	}
}

// Execute writes the tree stored under name to filePath. An empty format
// is chosen from the file extension.
func (c *ExportCommand) Execute(name, filePath, format string) error {
	if format == "" {
		format = formatFor(filePath)
	}
	if format != FormatJSON && format != FormatHTML {
		return fmt.Errorf("unknown export format %q", format)
	}

	root, err := c.treeSvc.Load(name)
	if err != nil {
		return err
	}

	// Create file
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer file.Close()

	if format == FormatHTML {
		err = WriteHTML(file, root)
	} else {
		err = service.WriteDocument(file, root, c.indent)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Exported %d nodes to %s\n", models.Count(root), filePath)
	return nil
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatJSON
	}
}

// WriteHTML writes root as a Netscape bookmark file
func WriteHTML(w io.Writer, root *models.Root) error {
	bw := bufio.NewWriter(w)

	// Write HTML header
	fmt.Fprintf(bw, "<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	fmt.Fprintf(bw, "<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	fmt.Fprintf(bw, "<TITLE>Bookmarks</TITLE>\n")
	fmt.Fprintf(bw, "<H1>Bookmarks</H1>\n")
	fmt.Fprintf(bw, "<DL><p>\n")

	for _, child := range root.Children {
		writeBookmark(bw, child, 1)
	}

	// Write HTML footer
	fmt.Fprintf(bw, "</DL>\n")
	return bw.Flush()
}

// writeBookmark writes a single node, folders recursively
func writeBookmark(w io.Writer, b models.Bookmark, depth int) {
	pad := strings.Repeat("    ", depth)
	switch v := b.(type) {
	case *models.Folder:
		attrs := dateAttrs(v.Envelope)
		if v.RootName != nil {
			switch *v.RootName {
			case parser.ToolbarFolder:
				attrs += ` PERSONAL_TOOLBAR_FOLDER="true"`
			case parser.UnfiledFolder:
				attrs += ` UNFILED_BOOKMARKS_FOLDER="true"`
			}
		}
		fmt.Fprintf(w, "%s<DT><H3%s>%s</H3>\n", pad, attrs, html.EscapeString(v.Title))
		fmt.Fprintf(w, "%s<DL><p>\n", pad)
		for _, child := range v.Children {
			writeBookmark(w, child, depth+1)
		}
		fmt.Fprintf(w, "%s</DL><p>\n", pad)

	case *models.Entry:
		attrs := fmt.Sprintf(` HREF="%s"`, html.EscapeString(v.URI)) + dateAttrs(v.Envelope)
		if v.IconURI != nil {
			attrs += fmt.Sprintf(` ICON_URI="%s"`, html.EscapeString(*v.IconURI))
		}
		if v.Tags != nil {
			attrs += fmt.Sprintf(` TAGS="%s"`, html.EscapeString(v.Tags.String()))
		}
		if v.Charset != nil {
			attrs += fmt.Sprintf(` LAST_CHARSET="%s"`, html.EscapeString(*v.Charset))
		}
		fmt.Fprintf(w, "%s<DT><A%s>%s</A>\n", pad, attrs, html.EscapeString(v.Title))

	case *models.Separator:
		fmt.Fprintf(w, "%s<HR>\n", pad)
	}
}

func dateAttrs(e models.Envelope) string {
	const usPerSecond = 1000000
	return fmt.Sprintf(` ADD_DATE="%d" LAST_MODIFIED="%d"`,
		e.DateAdded.Micros()/usPerSecond, e.LastModified.Micros()/usPerSecond)
}
