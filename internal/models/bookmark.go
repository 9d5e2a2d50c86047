package models

import (
	"fmt"
)

// Discriminator values carried in the "type" field.
const (
	TypeContainer = "text/x-moz-place-container"
	TypePlace     = "text/x-moz-place"
	TypeSeparator = "text/x-moz-place-separator"
)

// Type codes as exported by the browser. They are kept verbatim from the
// document and never derived from the discriminator.
const (
	TypeCodePlace     = 1
	TypeCodeContainer = 2
	TypeCodeSeparator = 3
)

// Guid uniquely names a node within a document.
type Guid string

// Envelope holds the fields shared by every node shape.
type Envelope struct {
	Guid         Guid      `json:"guid"`
	Title        string    `json:"title"`
	Index        int       `json:"index"`
	DateAdded    Timestamp `json:"dateAdded"`
	LastModified Timestamp `json:"lastModified"`
	ID           int       `json:"id"`
	TypeCode     int       `json:"typeCode"`
}

// Common returns the shared fields of a node.
func (e *Envelope) Common() *Envelope {
	return e
}

// Node is any element of a bookmark document, the root included.
type Node interface {
	Common() *Envelope
	String() string
}

// Bookmark is a child node: exactly one of *Folder, *Entry or *Separator.
type Bookmark interface {
	Node
	// Type returns the discriminator written to the "type" field.
	Type() string
	bookmark()
}

// Explorable is implemented by nodes that own children.
type Explorable interface {
	Node
	Contents() []Bookmark
}

// Root is the outermost element of a document.
//
//	{
//	  "guid": "root________",
//	  "title": "",
//	  "index": 0,
//	  "dateAdded": 1509553862576000,
//	  "lastModified": 1563557348382000,
//	  "id": 1,
//	  "typeCode": 2,
//	  "type": "text/x-moz-place-container",
//	  "root": "placesRoot",
//	  "children": []
//	}
type Root struct {
	Envelope
	// Type is kept verbatim; documents reuse the folder discriminator.
	Type     string
	RootName string
	// Children is nil when the document had no "children" key and
	// non-nil (possibly empty) when it had one.
	Children []Bookmark
}

// Contents implements Explorable.
func (r *Root) Contents() []Bookmark { return r.Children }

func (r *Root) String() string { return fmt.Sprintf("Root: %s", r.Title) }

// Folder is a container of bookmarks.
type Folder struct {
	Envelope
	// RootName is set on built-in folders such as "toolbarFolder".
	RootName *string
	Children []Bookmark
}

// Contents implements Explorable.
func (f *Folder) Contents() []Bookmark { return f.Children }

func (f *Folder) Type() string { return TypeContainer }

func (f *Folder) String() string { return fmt.Sprintf("Folder: %s", f.Title) }

func (*Folder) bookmark() {}

// Entry is a link to a URI.
type Entry struct {
	Envelope
	URI     string
	Tags    *Tags
	Charset *string
	IconURI *string
}

func (e *Entry) Type() string { return TypePlace }

func (e *Entry) String() string { return fmt.Sprintf("Entry: %s (%s)", e.Title, e.URI) }

func (*Entry) bookmark() {}

// Separator is a visual divider between siblings.
type Separator struct {
	Envelope
}

func (s *Separator) Type() string { return TypeSeparator }

func (s *Separator) String() string { return "Separator" }

func (*Separator) bookmark() {}
