// Package dbtest builds small Kolibri content databases for tests.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Schema is the subset of Kolibri's content schema read by the store.
const Schema = `
	CREATE TABLE content_channelmetadata (
		id CHAR(32) PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		root_id CHAR(32) NOT NULL
	);
	CREATE TABLE content_contentnode (
		id CHAR(32) PRIMARY KEY,
		content_id CHAR(32) NOT NULL,
		channel_id CHAR(32) NOT NULL,
		parent_id CHAR(32),
		kind VARCHAR(200) NOT NULL,
		title VARCHAR(200) NOT NULL,
		available BOOL NOT NULL DEFAULT 0,
		lft INTEGER NOT NULL,
		rght INTEGER NOT NULL,
		tree_id INTEGER NOT NULL DEFAULT 1,
		level INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX content_contentnode_channel_lft ON content_contentnode (channel_id, lft);
	CREATE INDEX content_contentnode_parent ON content_contentnode (parent_id);
`

// Node describes a node to insert. Lft, Rght, ParentID and ChannelID are
// assigned by InsertChannel.
type Node struct {
	ID        string
	ContentID string // defaults to ID
	Kind      string // defaults to "topic" with children, "video" without
	Title     string // defaults to ID
	Available bool
	Children  []Node
}

// Open creates an empty in-memory database with the content schema.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// :memory: databases are per connection.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec(Schema)
	require.NoError(t, err)
	return conn
}

// CreateFile creates a database file with the content schema inside
// t.TempDir() and returns its path along with an open connection.
func CreateFile(t *testing.T) (string, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.sqlite3")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec(Schema)
	require.NoError(t, err)
	return path, conn
}

// InsertChannel inserts channel metadata and the whole tree under root,
// numbering lft/rght depth first starting at 1.
func InsertChannel(t *testing.T, conn *sql.DB, channelID, name string, root Node) {
	t.Helper()
	_, err := conn.Exec(
		`INSERT INTO content_channelmetadata (id, name, root_id) VALUES (?, ?, ?)`,
		channelID, name, root.ID,
	)
	require.NoError(t, err)

	counter := int64(0)
	insertTree(t, conn, channelID, nil, root, 0, &counter)
}

func insertTree(t *testing.T, conn *sql.DB, channelID string, parentID *string, n Node, level int, counter *int64) {
	t.Helper()
	*counter++
	lft := *counter
	for _, child := range n.Children {
		insertTree(t, conn, channelID, &n.ID, child, level+1, counter)
	}
	*counter++
	rght := *counter

	contentID := n.ContentID
	if contentID == "" {
		contentID = n.ID
	}
	title := n.Title
	if title == "" {
		title = n.ID
	}
	kind := n.Kind
	if kind == "" {
		kind = "video"
		if len(n.Children) > 0 {
			kind = "topic"
		}
	}

	_, err := conn.Exec(`
		INSERT INTO content_contentnode
			(id, content_id, channel_id, parent_id, kind, title, available, lft, rght, level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, contentID, channelID, parentID, kind, title, n.Available, lft, rght, level,
	)
	require.NoError(t, err)
}
