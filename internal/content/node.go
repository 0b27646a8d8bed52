// Package content computes, per channel, the minimal set of nodes that
// reproduces a picked subset of leaf content.
package content

// KindTopic is the kind of internal catalog nodes. Every other kind is a leaf.
const KindTopic = "topic"

// Node is a catalog entry decoupled from DB types
type Node struct {
	ID        string
	ContentID string // stable across channels for equivalent content
	ChannelID string
	ParentID  *string
	Kind      string
	Title     string
	Available bool
	Lft       int64
	Rght      int64
}

// IsTopic reports whether the node is an internal node.
func (n Node) IsTopic() bool {
	return n.Kind == KindTopic
}

// Contains reports whether other lies in n's subtree (n itself included).
func (n Node) Contains(other Node) bool {
	return n.ChannelID == other.ChannelID && other.Lft >= n.Lft && other.Lft <= n.Rght
}

// LeafWithParent is a leaf along with the content_id of its parent, nil for
// parentless nodes.
type LeafWithParent struct {
	Node
	ParentContentID *string
}

// Channel is channel metadata
type Channel struct {
	ID     string
	Name   string
	RootID string
}
