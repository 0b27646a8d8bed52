package content

import (
	"context"
	"database/sql"
	"errors"
	"sort"
)

// tree describes a node for memStore.add; lft/rght are assigned depth first.
type tree struct {
	id        string
	contentID string // defaults to id
	kind      string // defaults to topic with children, video without
	available bool
	children  []tree
}

func topic(id string, children ...tree) tree {
	return tree{id: id, kind: KindTopic, children: children}
}

func leaf(id string) tree {
	return tree{id: id}
}

// memStore is an in-memory Store that records how many range queries it served.
type memStore struct {
	channels     []Channel
	nodes        map[string]Node
	rangeQueries int
	failOn       string
}

func newMemStore() *memStore {
	return &memStore{nodes: make(map[string]Node)}
}

// add inserts a channel whose root is root and returns the root node.
func (m *memStore) add(channelID, name string, root tree) Node {
	m.channels = append(m.channels, Channel{ID: channelID, Name: name, RootID: root.id})
	counter := int64(0)
	m.insert(channelID, nil, root, &counter)
	return m.nodes[root.id]
}

func (m *memStore) insert(channelID string, parentID *string, t tree, counter *int64) {
	*counter++
	lft := *counter
	id := t.id
	for _, c := range t.children {
		m.insert(channelID, &id, c, counter)
	}
	*counter++

	kind := t.kind
	if kind == "" {
		kind = "video"
		if len(t.children) > 0 {
			kind = KindTopic
		}
	}
	contentID := t.contentID
	if contentID == "" {
		contentID = t.id
	}
	m.nodes[t.id] = Node{
		ID:        t.id,
		ContentID: contentID,
		ChannelID: channelID,
		ParentID:  parentID,
		Kind:      kind,
		Title:     "Title " + t.id,
		Available: t.available,
		Lft:       lft,
		Rght:      *counter,
	}
}

func (m *memStore) get(id string) Node {
	n, ok := m.nodes[id]
	if !ok {
		panic("no node " + id)
	}
	return n
}

func (m *memStore) filter(keep func(Node) bool) []Node {
	var out []Node
	for _, n := range m.nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChannelID != out[j].ChannelID {
			return out[i].ChannelID < out[j].ChannelID
		}
		return out[i].Lft < out[j].Lft
	})
	return out
}

var errInjected = errors.New("injected failure")

func (m *memStore) Node(_ context.Context, id string) (Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return Node{}, sql.ErrNoRows
	}
	return n, nil
}

func (m *memStore) Channels(_ context.Context, include, exclude []string) ([]Channel, error) {
	in := func(list []string, id string) bool {
		for _, v := range list {
			if v == id {
				return true
			}
		}
		return false
	}
	var out []Channel
	for _, c := range m.channels {
		if len(include) > 0 {
			if in(include, c.ID) {
				out = append(out, c)
			}
		} else if !in(exclude, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) Children(_ context.Context, parentID string) ([]Node, error) {
	if parentID == m.failOn {
		return nil, errInjected
	}
	return m.filter(func(n Node) bool { return n.ParentID != nil && *n.ParentID == parentID }), nil
}

func (m *memStore) LeavesInRange(_ context.Context, channelID string, lft, rght int64) ([]Node, error) {
	m.rangeQueries++
	for _, n := range m.nodes {
		if n.ChannelID == channelID && n.Lft == lft && n.ID == m.failOn {
			return nil, errInjected
		}
	}
	return m.filter(func(n Node) bool {
		return n.ChannelID == channelID && !n.IsTopic() && n.Lft >= lft && n.Lft <= rght
	}), nil
}

func (m *memStore) AvailableLeaves(_ context.Context, channelID string) ([]Node, error) {
	return m.filter(func(n Node) bool {
		return n.ChannelID == channelID && !n.IsTopic() && n.Available
	}), nil
}

func (m *memStore) LeavesInChannels(_ context.Context, channelIDs []string) ([]Node, error) {
	set := make(map[string]bool, len(channelIDs))
	for _, id := range channelIDs {
		set[id] = true
	}
	return m.filter(func(n Node) bool { return set[n.ChannelID] && !n.IsTopic() }), nil
}

func (m *memStore) LeavesWithParentContent(_ context.Context, channelID string) ([]LeafWithParent, error) {
	var out []LeafWithParent
	for _, n := range m.filter(func(n Node) bool { return n.ChannelID == channelID && !n.IsTopic() }) {
		var parentContentID *string
		if n.ParentID != nil {
			if p, ok := m.nodes[*n.ParentID]; ok {
				c := p.ContentID
				parentContentID = &c
			}
		}
		out = append(out, LeafWithParent{Node: n, ParentContentID: parentContentID})
	}
	return out, nil
}

func (m *memStore) ContentIDs(_ context.Context, nodeIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(nodeIDs))
	for _, id := range nodeIDs {
		if n, ok := m.nodes[id]; ok {
			out[id] = n.ContentID
		}
	}
	return out, nil
}
