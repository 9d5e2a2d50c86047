package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dastanaron/mozbookmarks/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db    *sql.DB
	trees *treeRepo
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db:    db,
		trees: &treeRepo{db: db},
	}, nil
}

func initSchema(db *sql.DB) error {
	createTables := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		imported_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS nodes (
		document_id INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		parent_seq INTEGER,
		kind TEXT NOT NULL,
		guid TEXT NOT NULL,
		title TEXT NOT NULL,
		idx INTEGER NOT NULL,
		date_added INTEGER NOT NULL,
		last_modified INTEGER NOT NULL,
		place_id INTEGER NOT NULL,
		type_code INTEGER NOT NULL,
		type TEXT NOT NULL,
		root_name TEXT,
		uri TEXT,
		tags TEXT,
		charset TEXT,
		icon_uri TEXT,
		has_children INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY(document_id, seq),
		FOREIGN KEY(document_id) REFERENCES documents(id)
	);

	CREATE INDEX IF NOT EXISTS idx_nodes_uri ON nodes(uri);
	`
	_, err := db.Exec(createTables)
	return err
}

// Trees returns the tree repository
func (r *SQLiteRepository) Trees() TreeRepository {
	return r.trees
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const (
	kindRoot      = "root"
	kindFolder    = "folder"
	kindEntry     = "entry"
	kindSeparator = "separator"
)

// treeRepo implements TreeRepository
type treeRepo struct {
	db *sql.DB
}

func (r *treeRepo) List() ([]models.Document, error) {
	rows, err := r.db.Query(`
		SELECT d.id, d.name, d.imported_at, COUNT(n.seq)
		FROM documents AS d
		LEFT JOIN nodes AS n ON n.document_id = d.id
		GROUP BY d.id
		ORDER BY d.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var (
			d        models.Document
			imported int64
		)
		if err := rows.Scan(&d.ID, &d.Name, &imported, &d.Nodes); err != nil {
			return nil, err
		}
		d.ImportedAt = time.Unix(imported, 0).UTC()
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *treeRepo) Save(name string, root *models.Root) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteDocument(tx, name); err != nil {
		return err
	}

	res, err := tx.Exec(`INSERT INTO documents(name, imported_at) VALUES (?, ?)`, name, time.Now().Unix())
	if err != nil {
		return err
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO nodes(document_id, seq, parent_seq, kind, guid, title, idx, date_added,
			last_modified, place_id, type_code, type, root_name, uri, tags, charset, icon_uri, has_children)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	// parents[d] holds the seq of the last node visited at depth d.
	var parents []int64
	var seq int64
	err = models.Explore(root, func(n models.Node, depth int) error {
		parents = parents[:depth]
		var parent sql.NullInt64
		if depth > 0 {
			parent = sql.NullInt64{Int64: parents[depth-1], Valid: true}
		}

		row := rowOf(n)
		env := n.Common()
		if _, err := stmt.Exec(docID, seq, parent, row.kind, string(env.Guid), env.Title, env.Index,
			env.DateAdded.Micros(), env.LastModified.Micros(), env.ID, env.TypeCode, row.typ,
			row.rootName, row.uri, row.tags, row.charset, row.iconURI, row.hasChildren); err != nil {
			return fmt.Errorf("insert node %s: %w", env.Guid, err)
		}

		parents = append(parents, seq)
		seq++
		return nil
	})
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *treeRepo) Load(name string) (*models.Root, error) {
	var docID int64
	err := r.db.QueryRow(`SELECT id FROM documents WHERE name = ?`, name).Scan(&docID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT seq, parent_seq, kind, guid, title, idx, date_added, last_modified, place_id,
			type_code, type, root_name, uri, tags, charset, icon_uri, has_children
		FROM nodes
		WHERE document_id = ?
		ORDER BY seq
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var root *models.Root
	containers := make(map[int64]models.Node)
	for rows.Next() {
		var (
			seq                     int64
			parent                  sql.NullInt64
			row                     nodeRow
			guid                    string
			env                     models.Envelope
			dateAdded, lastModified int64
		)
		if err := rows.Scan(&seq, &parent, &row.kind, &guid, &env.Title, &env.Index, &dateAdded,
			&lastModified, &env.ID, &env.TypeCode, &row.typ, &row.rootName, &row.uri, &row.tags,
			&row.charset, &row.iconURI, &row.hasChildren); err != nil {
			return nil, err
		}
		env.Guid = models.Guid(guid)
		env.DateAdded = models.FromMicros(dateAdded)
		env.LastModified = models.FromMicros(lastModified)

		node, err := row.node(env)
		if err != nil {
			return nil, fmt.Errorf("document %q node %d: %w", name, seq, err)
		}

		if !parent.Valid {
			top, ok := node.(*models.Root)
			if !ok || root != nil {
				return nil, fmt.Errorf("document %q: malformed root at node %d", name, seq)
			}
			root = top
		} else {
			b, ok := node.(models.Bookmark)
			if !ok {
				return nil, fmt.Errorf("document %q: nested root at node %d", name, seq)
			}
			if err := appendChild(containers[parent.Int64], b); err != nil {
				return nil, fmt.Errorf("document %q node %d: %w", name, seq, err)
			}
		}
		if _, ok := node.(models.Explorable); ok {
			containers[seq] = node
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("document %q has no root", name)
	}
	return root, nil
}

func (r *treeRepo) Delete(name string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM documents WHERE name = ?`, name).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	if err := deleteDocument(tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteDocument(tx *sql.Tx, name string) error {
	if _, err := tx.Exec(`DELETE FROM nodes WHERE document_id IN (SELECT id FROM documents WHERE name = ?)`, name); err != nil {
		return err
	}
	_, err := tx.Exec(`DELETE FROM documents WHERE name = ?`, name)
	return err
}

// nodeRow holds the shape-specific columns of a node.
type nodeRow struct {
	kind        string
	typ         string
	rootName    sql.NullString
	uri         sql.NullString
	tags        sql.NullString
	charset     sql.NullString
	iconURI     sql.NullString
	hasChildren bool
}

func rowOf(n models.Node) nodeRow {
	switch v := n.(type) {
	case *models.Root:
		return nodeRow{
			kind:        kindRoot,
			typ:         v.Type,
			rootName:    sql.NullString{String: v.RootName, Valid: true},
			hasChildren: v.Children != nil,
		}
	case *models.Folder:
		return nodeRow{
			kind:        kindFolder,
			typ:         v.Type(),
			rootName:    nullable(v.RootName),
			hasChildren: v.Children != nil,
		}
	case *models.Entry:
		row := nodeRow{
			kind:    kindEntry,
			typ:     v.Type(),
			uri:     sql.NullString{String: v.URI, Valid: true},
			charset: nullable(v.Charset),
			iconURI: nullable(v.IconURI),
		}
		if v.Tags != nil {
			row.tags = sql.NullString{String: v.Tags.String(), Valid: true}
		}
		return row
	default:
		return nodeRow{kind: kindSeparator, typ: models.TypeSeparator}
	}
}

func (row nodeRow) node(env models.Envelope) (models.Node, error) {
	switch row.kind {
	case kindRoot:
		r := &models.Root{Envelope: env, Type: row.typ, RootName: row.rootName.String}
		if row.hasChildren {
			r.Children = []models.Bookmark{}
		}
		return r, nil
	case kindFolder:
		f := &models.Folder{Envelope: env, RootName: pointer(row.rootName)}
		if row.hasChildren {
			f.Children = []models.Bookmark{}
		}
		return f, nil
	case kindEntry:
		e := &models.Entry{
			Envelope: env,
			URI:      row.uri.String,
			Charset:  pointer(row.charset),
			IconURI:  pointer(row.iconURI),
		}
		if row.tags.Valid {
			t := models.ParseTags(row.tags.String)
			e.Tags = &t
		}
		return e, nil
	case kindSeparator:
		return &models.Separator{Envelope: env}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", row.kind)
	}
}

func appendChild(parent models.Node, child models.Bookmark) error {
	switch p := parent.(type) {
	case *models.Root:
		p.Children = append(p.Children, child)
	case *models.Folder:
		p.Children = append(p.Children, child)
	default:
		return fmt.Errorf("parent is not a container")
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func pointer(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
