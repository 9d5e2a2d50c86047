package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// Decode parses a bookmark document. A top-level object carrying a "root"
// field decodes to *Root; anything else decodes to a Bookmark selected by
// its "type" field.
func Decode(data []byte) (Node, error) {
	obj, err := objectAt("", data)
	if err != nil {
		return nil, err
	}
	if obj.has("root") {
		return decodeRoot(obj)
	}
	return decodeBookmark(obj)
}

// DecodeRoot parses a document that must be a root.
func DecodeRoot(data []byte) (*Root, error) {
	obj, err := objectAt("", data)
	if err != nil {
		return nil, err
	}
	if !obj.has("root") {
		return nil, missing("", "root")
	}
	return decodeRoot(obj)
}

// DecodeBookmark parses a document that must be a folder, entry or separator.
func DecodeBookmark(data []byte) (Bookmark, error) {
	obj, err := objectAt("", data)
	if err != nil {
		return nil, err
	}
	if obj.has("root") {
		return nil, &SchemaError{Field: "root", Reason: "root document where a bookmark was expected"}
	}
	return decodeBookmark(obj)
}

// object is a JSON object whose members are still raw.
type object struct {
	path   string
	fields map[string]json.RawMessage
}

func objectAt(path string, data []byte) (object, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		if len(data) > 0 && !json.Valid(data) {
			return object{}, fmt.Errorf("bookmarks: %s: %w", orRoot(path), errInvalidJSON)
		}
		return object{}, &SchemaError{Path: path, Reason: "expected object"}
	}
	var fields map[string]json.RawMessage
	if err := api.Unmarshal(data, &fields); err != nil {
		return object{}, fmt.Errorf("bookmarks: %s: %w", orRoot(path), err)
	}
	return object{path: path, fields: fields}, nil
}

var errInvalidJSON = errors.New("invalid JSON")

// has reports whether name is present and not null.
func (o object) has(name string) bool {
	raw, ok := o.fields[name]
	return ok && !isNull(raw)
}

func (o object) raw(name string) (json.RawMessage, error) {
	raw, ok := o.fields[name]
	if !ok {
		return nil, missing(o.path, name)
	}
	return raw, nil
}

func (o object) str(name string) (string, error) {
	raw, err := o.raw(name)
	if err != nil {
		return "", err
	}
	return parseString(o.path, name, raw)
}

func (o object) optStr(name string) (*string, error) {
	if !o.has(name) {
		return nil, nil
	}
	s, err := parseString(o.path, name, o.fields[name])
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (o object) count(name string) (int, error) {
	raw, err := o.raw(name)
	if err != nil {
		return 0, err
	}
	n, err := parseInt(o.path, name, raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &SchemaError{Path: o.path, Field: name, Reason: "must not be negative"}
	}
	return int(n), nil
}

func (o object) timestamp(name string) (Timestamp, error) {
	raw, err := o.raw(name)
	if err != nil {
		return Timestamp{}, err
	}
	us, err := parseInt(o.path, name, raw)
	if err != nil {
		return Timestamp{}, err
	}
	return FromMicros(us), nil
}

func (o object) envelope() (Envelope, error) {
	var e Envelope
	guid, err := o.str("guid")
	if err != nil {
		return e, err
	}
	e.Guid = Guid(guid)
	if e.Title, err = o.str("title"); err != nil {
		return e, err
	}
	if e.Index, err = o.count("index"); err != nil {
		return e, err
	}
	if e.DateAdded, err = o.timestamp("dateAdded"); err != nil {
		return e, err
	}
	if e.LastModified, err = o.timestamp("lastModified"); err != nil {
		return e, err
	}
	if e.ID, err = o.count("id"); err != nil {
		return e, err
	}
	if e.TypeCode, err = o.count("typeCode"); err != nil {
		return e, err
	}
	return e, nil
}

// children decodes the "children" array. It returns nil when the key is
// absent and a non-nil slice when it is present.
func (o object) children() ([]Bookmark, error) {
	if !o.has("children") {
		return nil, nil
	}
	raw := bytes.TrimSpace(o.fields["children"])
	if len(raw) == 0 || raw[0] != '[' {
		return nil, mistyped(o.path, "children", "array")
	}
	var items []json.RawMessage
	if err := api.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("bookmarks: %s: %w", orRoot(o.path), err)
	}
	out := make([]Bookmark, 0, len(items))
	for i, item := range items {
		child, err := objectAt(fmt.Sprintf("%s.children[%d]", orRoot(o.path), i), item)
		if err != nil {
			return nil, err
		}
		b, err := decodeBookmark(child)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeRoot(o object) (*Root, error) {
	env, err := o.envelope()
	if err != nil {
		return nil, err
	}
	r := &Root{Envelope: env}
	if r.Type, err = o.str("type"); err != nil {
		return nil, err
	}
	if r.RootName, err = o.str("root"); err != nil {
		return nil, err
	}
	if r.Children, err = o.children(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeBookmark(o object) (Bookmark, error) {
	typ, err := o.str("type")
	if err != nil {
		return nil, err
	}
	switch typ {
	case TypeContainer:
		return decodeFolder(o)
	case TypePlace:
		return decodeEntry(o)
	case TypeSeparator:
		return decodeSeparator(o)
	default:
		return nil, &SchemaError{Path: o.path, Field: "type", Reason: fmt.Sprintf("unrecognized node type %q", typ)}
	}
}

func decodeFolder(o object) (*Folder, error) {
	env, err := o.envelope()
	if err != nil {
		return nil, err
	}
	f := &Folder{Envelope: env}
	if f.RootName, err = o.optStr("root"); err != nil {
		return nil, err
	}
	if f.Children, err = o.children(); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeEntry(o object) (*Entry, error) {
	env, err := o.envelope()
	if err != nil {
		return nil, err
	}
	e := &Entry{Envelope: env}
	if e.URI, err = o.str("uri"); err != nil {
		return nil, err
	}
	tags, err := o.optStr("tags")
	if err != nil {
		return nil, err
	}
	if tags != nil {
		t := ParseTags(*tags)
		e.Tags = &t
	}
	if e.Charset, err = o.optStr("charset"); err != nil {
		return nil, err
	}
	if e.IconURI, err = o.optStr("iconUri"); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeSeparator(o object) (*Separator, error) {
	env, err := o.envelope()
	if err != nil {
		return nil, err
	}
	return &Separator{Envelope: env}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseString(path, field string, raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", mistyped(path, field, "string")
	}
	var s string
	if err := api.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("bookmarks: %s: field %q: %w", orRoot(path), field, err)
	}
	return s, nil
}

func parseInt(path, field string, raw []byte) (int64, error) {
	raw = bytes.TrimSpace(raw)
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, &RangeError{Path: path, Field: field, Value: string(raw)}
	}
	return 0, mistyped(path, field, "integer")
}
