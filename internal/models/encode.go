package models

import (
	"fmt"
	"reflect"

	"github.com/bytedance/sonic"
)

// Encode serializes n compactly. Optional fields that are absent are
// omitted rather than written as null, and folders without children
// omit the "children" key.
func Encode(n Node) ([]byte, error) {
	return api.Marshal(n)
}

// EncodeIndent is like Encode but indents the output.
func EncodeIndent(n Node, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(n, prefix, indent)
}

// Equivalent reports whether a and b are the same JSON value, ignoring
// key order and whitespace. Numbers are compared by their literal value.
func Equivalent(a, b []byte) (bool, error) {
	var va, vb interface{}
	if err := exact.Unmarshal(a, &va); err != nil {
		return false, fmt.Errorf("bookmarks: left document: %w", err)
	}
	if err := exact.Unmarshal(b, &vb); err != nil {
		return false, fmt.Errorf("bookmarks: right document: %w", err)
	}
	return reflect.DeepEqual(va, vb), nil
}

var exact = sonic.Config{UseNumber: true}.Froze()

type rootWire struct {
	Envelope
	Type     string      `json:"type"`
	RootName string      `json:"root"`
	Children *[]Bookmark `json:"children,omitempty"`
}

type folderWire struct {
	Envelope
	Type     string     `json:"type"`
	RootName *string    `json:"root,omitempty"`
	Children []Bookmark `json:"children,omitempty"`
}

type entryWire struct {
	Envelope
	Type    string  `json:"type"`
	URI     string  `json:"uri"`
	Tags    *Tags   `json:"tags,omitempty"`
	Charset *string `json:"charset,omitempty"`
	IconURI *string `json:"iconUri,omitempty"`
}

type separatorWire struct {
	Envelope
	Type string `json:"type"`
}

// MarshalJSON implements the json.Marshaler interface.
func (r *Root) MarshalJSON() ([]byte, error) {
	w := rootWire{Envelope: r.Envelope, Type: r.Type, RootName: r.RootName}
	if r.Children != nil {
		w.Children = &r.Children
	}
	return api.Marshal(w)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *Root) UnmarshalJSON(data []byte) error {
	root, err := DecodeRoot(data)
	if err != nil {
		return err
	}
	*r = *root
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f *Folder) MarshalJSON() ([]byte, error) {
	return api.Marshal(folderWire{
		Envelope: f.Envelope,
		Type:     TypeContainer,
		RootName: f.RootName,
		Children: f.Children,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *Folder) UnmarshalJSON(data []byte) error {
	b, err := DecodeBookmark(data)
	if err != nil {
		return err
	}
	folder, ok := b.(*Folder)
	if !ok {
		return &SchemaError{Field: "type", Reason: "expected " + TypeContainer + ", got " + b.Type()}
	}
	*f = *folder
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return api.Marshal(entryWire{
		Envelope: e.Envelope,
		Type:     TypePlace,
		URI:      e.URI,
		Tags:     e.Tags,
		Charset:  e.Charset,
		IconURI:  e.IconURI,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *Entry) UnmarshalJSON(data []byte) error {
	b, err := DecodeBookmark(data)
	if err != nil {
		return err
	}
	entry, ok := b.(*Entry)
	if !ok {
		return &SchemaError{Field: "type", Reason: "expected " + TypePlace + ", got " + b.Type()}
	}
	*e = *entry
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s *Separator) MarshalJSON() ([]byte, error) {
	return api.Marshal(separatorWire{Envelope: s.Envelope, Type: TypeSeparator})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Separator) UnmarshalJSON(data []byte) error {
	b, err := DecodeBookmark(data)
	if err != nil {
		return err
	}
	sep, ok := b.(*Separator)
	if !ok {
		return &SchemaError{Field: "type", Reason: "expected " + TypeSeparator + ", got " + b.Type()}
	}
	*s = *sep
	return nil
}
