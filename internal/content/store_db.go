package content

import (
	"context"

	"kolibri/listcontent/internal/db"
)

// DBStore adapts the SQLite content database to Store
type DBStore struct {
	db *db.DB
}

// NewDBStore wraps d.
func NewDBStore(d *db.DB) *DBStore {
	return &DBStore{db: d}
}

func fromDBNode(n db.Node) Node {
	var parentID *string
	if n.ParentID != nil {
		p := *n.ParentID
		parentID = &p
	}
	return Node{
		ID:        n.ID,
		ContentID: n.ContentID,
		ChannelID: n.ChannelID,
		ParentID:  parentID,
		Kind:      n.Kind,
		Title:     n.Title,
		Available: n.Available,
		Lft:       n.Lft,
		Rght:      n.Rght,
	}
}

func fromDBNodes(dbNodes []db.Node, err error) ([]Node, error) {
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(dbNodes))
	for _, n := range dbNodes {
		nodes = append(nodes, fromDBNode(n))
	}
	return nodes, nil
}

func (s *DBStore) Node(ctx context.Context, id string) (Node, error) {
	n, err := s.db.GetNode(ctx, id)
	if err != nil {
		return Node{}, err
	}
	return fromDBNode(*n), nil
}

func (s *DBStore) Channels(ctx context.Context, include, exclude []string) ([]Channel, error) {
	dbChannels, err := s.db.Channels(ctx, include, exclude)
	if err != nil {
		return nil, err
	}
	channels := make([]Channel, 0, len(dbChannels))
	for _, c := range dbChannels {
		channels = append(channels, Channel{ID: c.ID, Name: c.Name, RootID: c.RootID})
	}
	return channels, nil
}

func (s *DBStore) Children(ctx context.Context, parentID string) ([]Node, error) {
	return fromDBNodes(s.db.ChildNodes(ctx, parentID))
}

func (s *DBStore) LeavesInRange(ctx context.Context, channelID string, lft, rght int64) ([]Node, error) {
	return fromDBNodes(s.db.LeafNodesInRange(ctx, channelID, lft, rght))
}

func (s *DBStore) AvailableLeaves(ctx context.Context, channelID string) ([]Node, error) {
	return fromDBNodes(s.db.AvailableLeafNodes(ctx, channelID))
}

func (s *DBStore) LeavesInChannels(ctx context.Context, channelIDs []string) ([]Node, error) {
	return fromDBNodes(s.db.LeafNodesInChannels(ctx, channelIDs))
}

func (s *DBStore) LeavesWithParentContent(ctx context.Context, channelID string) ([]LeafWithParent, error) {
	dbNodes, err := s.db.LeafNodesWithParentContent(ctx, channelID)
	if err != nil {
		return nil, err
	}
	leaves := make([]LeafWithParent, 0, len(dbNodes))
	for _, n := range dbNodes {
		var parentContentID *string
		if n.ParentContentID != nil {
			p := *n.ParentContentID
			parentContentID = &p
		}
		leaves = append(leaves, LeafWithParent{Node: fromDBNode(n.Node), ParentContentID: parentContentID})
	}
	return leaves, nil
}

func (s *DBStore) ContentIDs(ctx context.Context, nodeIDs []string) (map[string]string, error) {
	return s.db.ContentIDsByNodeID(ctx, nodeIDs)
}
