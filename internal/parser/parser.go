package parser

import (
	"encoding/base64"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dastanaron/mozbookmarks/internal/models"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// Root category names assigned to special folders of an HTML export.
const (
	PlacesRoot     = "placesRoot"
	ToolbarFolder  = "toolbarFolder"
	UnfiledFolder  = "unfiledBookmarksFolder"
	rootGuid       = "root________"
	guidRandomSize = 9 // 9 bytes encode to 12 URL-safe characters
)

// Parser parses Netscape HTML bookmark files
type Parser struct {
	now     func() time.Time
	newGuid func() models.Guid
}

// NewParser creates a new parser
func NewParser() *Parser {
	return &Parser{now: time.Now, newGuid: randomGuid}
}

// WithClock sets the time used for missing dates
func (p *Parser) WithClock(now func() time.Time) *Parser {
	p.now = now
	return p
}

func randomGuid() models.Guid {
	u := uuid.New()
	return models.Guid(base64.RawURLEncoding.EncodeToString(u[:guidRandomSize]))
}

// container collects the children of the root or of a folder
type container struct {
	add func(models.Bookmark) int
}

// parseState carries counters across the walk
type parseState struct {
	p       *Parser
	nextID  int
	now     models.Timestamp
	pending *models.Folder // folder whose <DL> has not been seen yet
}

// ParseBookmarksHTML parses an HTML bookmark file into a document tree
func (p *Parser) ParseBookmarksHTML(r io.Reader) (*models.Root, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	st := &parseState{p: p, nextID: 1, now: models.FromMicros(p.now().UnixMicro())}
	root := &models.Root{
		Envelope: models.Envelope{
			Guid:         rootGuid,
			DateAdded:    st.now,
			LastModified: st.now,
			ID:           st.id(),
			TypeCode:     models.TypeCodeContainer,
		},
		Type:     models.TypeContainer,
		RootName: PlacesRoot,
		Children: []models.Bookmark{},
	}

	st.walk(doc, rootContainer(root))
	return root, nil
}

func rootContainer(r *models.Root) container {
	return container{add: func(b models.Bookmark) int {
		r.Children = append(r.Children, b)
		return len(r.Children) - 1
	}}
}

func folderContainer(f *models.Folder) container {
	return container{add: func(b models.Bookmark) int {
		f.Children = append(f.Children, b)
		return len(f.Children) - 1
	}}
}

func (st *parseState) id() int {
	id := st.nextID
	st.nextID++
	return id
}

func (st *parseState) envelope(n *html.Node, title string, typeCode int) models.Envelope {
	added := st.timeAttr(n, "add_date", st.now)
	return models.Envelope{
		Guid:         st.p.newGuid(),
		Title:        title,
		DateAdded:    added,
		LastModified: st.timeAttr(n, "last_modified", added),
		ID:           st.id(),
		TypeCode:     typeCode,
	}
}

func (st *parseState) walk(n *html.Node, cur container) {
	if n.Type == html.ElementNode {
		switch n.Data {
		// Found folder header <H3 ...>
		case "h3":
			f := &models.Folder{Envelope: st.envelope(n, textOf(n), models.TypeCodeContainer)}
			if attr(n, "personal_toolbar_folder") == "true" {
				name := ToolbarFolder
				f.RootName = &name
			} else if attr(n, "unfiled_bookmarks_folder") == "true" {
				name := UnfiledFolder
				f.RootName = &name
			}
			f.Index = cur.add(f)
			st.pending = f
			return

		// Found bookmark <A HREF=...>
		case "a":
			href := attr(n, "href")
			if href == "" {
				return
			}
			e := &models.Entry{Envelope: st.envelope(n, textOf(n), models.TypeCodePlace), URI: href}
			if tags, ok := attrOK(n, "tags"); ok {
				t := models.ParseTags(tags)
				e.Tags = &t
			}
			if charset, ok := attrOK(n, "last_charset"); ok {
				e.Charset = &charset
			}
			if icon, ok := attrOK(n, "icon_uri"); ok {
				e.IconURI = &icon
			}
			e.Index = cur.add(e)
			return

		case "hr":
			s := &models.Separator{Envelope: st.envelope(n, "", models.TypeCodeSeparator)}
			s.Index = cur.add(s)
			return

		// A <DL> holds the contents of the folder declared just before it.
		case "dl":
			next := cur
			if st.pending != nil {
				next = folderContainer(st.pending)
				st.pending = nil
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				st.walk(c, next)
			}
			st.pending = nil
			return
		}
	}

	// Recursively traverse children
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		st.walk(c, cur)
	}
}

// timeAttr reads a Unix-seconds attribute, falling back to def.
func (st *parseState) timeAttr(n *html.Node, key string, def models.Timestamp) models.Timestamp {
	v, ok := attrOK(n, key)
	if !ok {
		return def
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return def
	}
	return models.FromMicros(secs * int64(time.Second/time.Microsecond))
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(sb.String())
}
