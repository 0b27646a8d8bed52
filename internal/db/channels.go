package db

import (
	"context"
	"fmt"
)

// Channels returns channel metadata ordered by name, then id.
// A non-empty include list selects exactly those channels and ignores exclude;
// otherwise every channel not in exclude is returned.
func (d *DB) Channels(ctx context.Context, include, exclude []string) ([]Channel, error) {
	query := `SELECT id, name, root_id FROM content_channelmetadata`
	var args []any
	switch {
	case len(include) > 0:
		query += ` WHERE id IN (` + placeholders(len(include)) + `)`
		args = stringArgs(include)
	case len(exclude) > 0:
		query += ` WHERE id NOT IN (` + placeholders(len(exclude)) + `)`
		args = stringArgs(exclude)
	}
	query += ` ORDER BY name, id`

	d.log.WithField("include", include).WithField("exclude", exclude).Debug("Querying channels")

	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying channels: %w", err)
	}
	defer rows.Close()

	var channels []Channel
	for rows.Next() {
		var c Channel
		if err := rows.Scan(&c.ID, &c.Name, &c.RootID); err != nil {
			return nil, fmt.Errorf("scanning channel: %w", err)
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}
