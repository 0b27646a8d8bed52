package db

import (
	"context"
	"strings"
)

const nodeColumns = `n.id, n.content_id, n.channel_id, n.parent_id, n.kind, n.title, n.available, n.lft, n.rght`

// scanNode scans a row into a Node. The row must start with nodeColumns in standard order.
func scanNode(scanner interface{ Scan(dest ...any) error }, extra ...any) (Node, error) {
	var n Node
	dest := append([]any{
		&n.ID, &n.ContentID, &n.ChannelID, &n.ParentID, &n.Kind,
		&n.Title, &n.Available, &n.Lft, &n.Rght,
	}, extra...)
	err := scanner.Scan(dest...)
	return n, err
}

func (d *DB) queryNodes(ctx context.Context, query string, args ...any) ([]Node, error) {
	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// GetNode returns a single node by ID. Returns sql.ErrNoRows if not found.
func (d *DB) GetNode(ctx context.Context, id string) (*Node, error) {
	row := d.conn.QueryRowContext(ctx, `
		SELECT `+nodeColumns+`
		FROM content_contentnode n WHERE n.id = ?
	`, id)

	n, err := scanNode(row)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ChildNodes returns the direct children of a node in lft order.
func (d *DB) ChildNodes(ctx context.Context, parentID string) ([]Node, error) {
	return d.queryNodes(ctx, `
		SELECT `+nodeColumns+`
		FROM content_contentnode n
		WHERE n.parent_id = ?
		ORDER BY n.lft
	`, parentID)
}

// LeafNodesInRange returns the non-topic nodes of a channel whose lft lies
// in [lft, rght]. For a topic's own bounds this is every leaf in its subtree.
func (d *DB) LeafNodesInRange(ctx context.Context, channelID string, lft, rght int64) ([]Node, error) {
	return d.queryNodes(ctx, `
		SELECT `+nodeColumns+`
		FROM content_contentnode n
		WHERE n.channel_id = ? AND n.lft >= ? AND n.lft <= ? AND n.kind != ?
		ORDER BY n.lft
	`, channelID, lft, rght, KindTopic)
}

// AvailableLeafNodes returns the non-topic nodes of a channel flagged available.
func (d *DB) AvailableLeafNodes(ctx context.Context, channelID string) ([]Node, error) {
	return d.queryNodes(ctx, `
		SELECT `+nodeColumns+`
		FROM content_contentnode n
		WHERE n.channel_id = ? AND n.available = 1 AND n.kind != ?
		ORDER BY n.lft
	`, channelID, KindTopic)
}

// LeafNodesInChannels returns the non-topic nodes of every listed channel.
func (d *DB) LeafNodesInChannels(ctx context.Context, channelIDs []string) ([]Node, error) {
	if len(channelIDs) == 0 {
		return nil, nil
	}
	args := append(stringArgs(channelIDs), KindTopic)
	return d.queryNodes(ctx, `
		SELECT `+nodeColumns+`
		FROM content_contentnode n
		WHERE n.channel_id IN (`+placeholders(len(channelIDs))+`) AND n.kind != ?
		ORDER BY n.channel_id, n.lft
	`, args...)
}

// LeafNodesWithParentContent returns the non-topic nodes of a channel along
// with their parent's content_id.
func (d *DB) LeafNodesWithParentContent(ctx context.Context, channelID string) ([]NodeWithParent, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT `+nodeColumns+`, p.content_id
		FROM content_contentnode n
		LEFT JOIN content_contentnode p ON p.id = n.parent_id
		WHERE n.channel_id = ? AND n.kind != ?
		ORDER BY n.lft
	`, channelID, KindTopic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []NodeWithParent
	for rows.Next() {
		var parentContentID *string
		n, err := scanNode(rows, &parentContentID)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, NodeWithParent{Node: n, ParentContentID: parentContentID})
	}
	return nodes, rows.Err()
}

// ContentIDsByNodeID returns the content_id of each listed node that exists,
// keyed by node id. Duplicate ids are looked up once.
func (d *DB) ContentIDsByNodeID(ctx context.Context, nodeIDs []string) (map[string]string, error) {
	result := make(map[string]string, len(nodeIDs))
	ids := dedupe(nodeIDs)
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := d.conn.QueryContext(ctx, `
		SELECT id, content_id FROM content_contentnode
		WHERE id IN (`+placeholders(len(ids))+`)
	`, stringArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, contentID string
		if err := rows.Scan(&id, &contentID); err != nil {
			return nil, err
		}
		result[id] = contentID
	}
	return result, rows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
