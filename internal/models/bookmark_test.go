package models

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entryJSON = `{
  "guid": "szjqsI0NdTuZ",
  "title": "Bookmark title",
  "index": 0,
  "dateAdded": 1601467891225000,
  "lastModified": 1601658040000000,
  "id": 1234,
  "typeCode": 1,
  "type": "text/x-moz-place",
  "uri": "https://example.com"
}`

const folderJSON = `{
  "guid": "1GXuDpWKuzaZ",
  "title": "Docs",
  "index": 23,
  "dateAdded": 1514400981910000,
  "lastModified": 1563557349000000,
  "id": 1330,
  "typeCode": 2,
  "type": "text/x-moz-place-container"
}`

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/places.json")
	require.NoError(t, err)
	return data
}

func TestDecodeEntry(t *testing.T) {
	n, err := Decode([]byte(entryJSON))
	require.NoError(t, err)

	e, ok := n.(*Entry)
	require.True(t, ok, "expected *Entry, got %T", n)
	assert.Equal(t, Guid("szjqsI0NdTuZ"), e.Guid)
	assert.Equal(t, "Bookmark title", e.Title)
	assert.Equal(t, 1234, e.ID)
	assert.Equal(t, TypeCodePlace, e.TypeCode)
	assert.Equal(t, "https://example.com", e.URI)
	assert.Equal(t, int64(1601467891225000), e.DateAdded.Micros())
	assert.Nil(t, e.Tags)
	assert.Nil(t, e.Charset)
	assert.Nil(t, e.IconURI)
	assert.Equal(t, "Entry: Bookmark title (https://example.com)", e.String())
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"entry", entryJSON},
		{"folder without children", folderJSON},
		{"separator", `{"guid":"ioFmy5yuXCAv","title":"","index":16,"dateAdded":1497742450465000,
			"lastModified":1563557349000000,"id":343,"typeCode":3,"type":"text/x-moz-place-separator"}`},
		{"entry with optionals", `{"guid":"irnkVN3Z0Wm8","title":"Docusaurus","index":0,"dateAdded":1514400959484000,
			"lastModified":1563557349000000,"id":1329,"typeCode":1,"charset":"UTF-8",
			"iconUri":"https://assets-cdn.github.com/favicon.ico","tags":"docs,oss",
			"type":"text/x-moz-place","uri":"https://github.com/facebook/Docusaurus"}`},
		{"root without children", `{"guid":"root________","title":"","index":0,"dateAdded":0,"lastModified":0,
			"id":1,"typeCode":2,"type":"text/x-moz-place-container","root":"placesRoot"}`},
		{"root with empty children", `{"guid":"root________","title":"","index":0,"dateAdded":0,"lastModified":0,
			"id":1,"typeCode":2,"type":"text/x-moz-place-container","root":"placesRoot","children":[]}`},
		{"full document", string(readFixture(t))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.doc))
			require.NoError(t, err)

			out, err := EncodeIndent(v, "", "  ")
			require.NoError(t, err)
			assert.JSONEq(t, tt.doc, string(out))

			again, err := Decode(out)
			require.NoError(t, err)
			assert.Equal(t, v, again)
		})
	}
}

func TestEncodeSuppressesEmptyChildren(t *testing.T) {
	f := &Folder{Envelope: Envelope{Guid: "abc", Title: "empty", TypeCode: TypeCodeContainer}, Children: []Bookmark{}}

	out, err := Encode(f)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "children")
	assert.Contains(t, string(out), `"type":"text/x-moz-place-container"`)
}

func TestEncodeOmitsAbsentOptionals(t *testing.T) {
	e := &Entry{Envelope: Envelope{Guid: "abc", TypeCode: TypeCodePlace}, URI: "https://example.com"}

	out, err := Encode(e)
	require.NoError(t, err)
	for _, key := range []string{"tags", "charset", "iconUri", "null"} {
		assert.NotContains(t, string(out), key)
	}
}

func TestNullOptionalsDecodeAsAbsent(t *testing.T) {
	doc := `{"guid":"a","title":"t","index":0,"dateAdded":1,"lastModified":2,"id":3,"typeCode":1,
		"type":"text/x-moz-place","uri":"u","tags":null,"charset":null}`

	b, err := DecodeBookmark([]byte(doc))
	require.NoError(t, err)
	e := b.(*Entry)
	assert.Nil(t, e.Tags)
	assert.Nil(t, e.Charset)
}

func TestRootFolderDisambiguation(t *testing.T) {
	withRoot := `{"guid":"root________","title":"","index":0,"dateAdded":1,"lastModified":2,"id":1,
		"typeCode":2,"type":"text/x-moz-place-container","root":"placesRoot"}`

	n, err := Decode([]byte(withRoot))
	require.NoError(t, err)
	root, ok := n.(*Root)
	require.True(t, ok, "expected *Root, got %T", n)
	assert.Equal(t, "placesRoot", root.RootName)
	assert.Equal(t, TypeContainer, root.Type)

	n, err = Decode([]byte(folderJSON))
	require.NoError(t, err)
	_, isBookmark := n.(Bookmark)
	assert.True(t, isBookmark)
	_, ok = n.(*Folder)
	assert.True(t, ok, "expected *Folder, got %T", n)

	_, err = DecodeRoot([]byte(folderJSON))
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "root", se.Field)

	_, err = DecodeBookmark([]byte(withRoot))
	require.ErrorAs(t, err, &se)
}

func TestChildFolderKeepsRootName(t *testing.T) {
	root, err := DecodeRoot(readFixture(t))
	require.NoError(t, err)

	toolbar, ok := root.Children[0].(*Folder)
	require.True(t, ok)
	require.NotNil(t, toolbar.RootName)
	assert.Equal(t, "toolbarFolder", *toolbar.RootName)
	assert.Nil(t, toolbar.Children)

	docs := root.Children[1].(*Folder)
	assert.Nil(t, docs.RootName)
	assert.Len(t, docs.Children, 3)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		path  string
		field string
	}{
		{
			name:  "missing discriminator on child",
			doc:   `{"guid":"r","title":"","index":0,"dateAdded":0,"lastModified":0,"id":1,"typeCode":2,"type":"text/x-moz-place-container","root":"placesRoot","children":[{"guid":"c","title":"","index":0,"dateAdded":0,"lastModified":0,"id":2,"typeCode":1,"uri":"u"}]}`,
			path:  "$.children[0]",
			field: "type",
		},
		{
			name:  "unrecognized discriminator",
			doc:   `{"guid":"c","title":"","index":0,"dateAdded":0,"lastModified":0,"id":2,"typeCode":1,"type":"text/x-moz-place-livemark"}`,
			field: "type",
		},
		{
			name:  "entry without uri",
			doc:   `{"guid":"c","title":"","index":0,"dateAdded":0,"lastModified":0,"id":2,"typeCode":1,"type":"text/x-moz-place"}`,
			field: "uri",
		},
		{
			name:  "title of wrong type",
			doc:   `{"guid":"c","title":7,"index":0,"dateAdded":0,"lastModified":0,"id":2,"typeCode":3,"type":"text/x-moz-place-separator"}`,
			field: "title",
		},
		{
			name:  "fractional timestamp",
			doc:   `{"guid":"c","title":"","index":0,"dateAdded":1.5,"lastModified":0,"id":2,"typeCode":3,"type":"text/x-moz-place-separator"}`,
			field: "dateAdded",
		},
		{
			name:  "string timestamp",
			doc:   `{"guid":"c","title":"","index":0,"dateAdded":0,"lastModified":"0","id":2,"typeCode":3,"type":"text/x-moz-place-separator"}`,
			field: "lastModified",
		},
		{
			name:  "negative index",
			doc:   `{"guid":"c","title":"","index":-1,"dateAdded":0,"lastModified":0,"id":2,"typeCode":3,"type":"text/x-moz-place-separator"}`,
			field: "index",
		},
		{
			name:  "null guid",
			doc:   `{"guid":null,"title":"","index":0,"dateAdded":0,"lastModified":0,"id":2,"typeCode":3,"type":"text/x-moz-place-separator"}`,
			field: "guid",
		},
		{
			name:  "missing typeCode",
			doc:   `{"guid":"c","title":"","index":0,"dateAdded":0,"lastModified":0,"id":2,"type":"text/x-moz-place-separator"}`,
			field: "typeCode",
		},
		{
			name:  "children not an array",
			doc:   `{"guid":"c","title":"","index":0,"dateAdded":0,"lastModified":0,"id":2,"typeCode":2,"type":"text/x-moz-place-container","children":{}}`,
			field: "children",
		},
		{
			name: "not an object",
			doc:  `[1, 2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Decode([]byte(tt.doc))
			assert.Nil(t, n)
			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.path, se.Path)
			assert.Equal(t, tt.field, se.Field)
		})
	}
}

func TestDecodeRangeError(t *testing.T) {
	doc := `{"guid":"c","title":"","index":0,"dateAdded":99999999999999999999,"lastModified":0,"id":2,"typeCode":3,"type":"text/x-moz-place-separator"}`

	_, err := Decode([]byte(doc))
	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "dateAdded", re.Field)
	assert.Equal(t, "99999999999999999999", re.Value)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"guid":`))
	require.Error(t, err)
	var se *SchemaError
	assert.False(t, errors.As(err, &se))
}

func TestUnmarshalIntoConcreteType(t *testing.T) {
	var e Entry
	require.NoError(t, api.Unmarshal([]byte(entryJSON), &e))
	assert.Equal(t, "https://example.com", e.URI)

	var f Folder
	err := f.UnmarshalJSON([]byte(entryJSON))
	var se *SchemaError
	require.ErrorAs(t, err, &se)

	var r Root
	require.NoError(t, api.Unmarshal(readFixture(t), &r))
	assert.Equal(t, "placesRoot", r.RootName)
}

func TestEquivalent(t *testing.T) {
	eq, err := Equivalent([]byte(`{"a":1,"b":[1,2]}`), []byte(`{ "b": [1, 2], "a": 1 }`))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = Equivalent([]byte(`{"a":1}`), []byte(`{"a":1,"b":null}`))
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = Equivalent([]byte(`{"a":9007199254740993}`), []byte(`{"a":9007199254740992}`))
	require.NoError(t, err)
	assert.False(t, eq)
}
