package content

import "context"

// NodeGetter looks up a single node by id.
type NodeGetter interface {
	Node(ctx context.Context, id string) (Node, error)
}

// Store is the read-only query surface over the content catalog.
// Every leaf query excludes topic-kind nodes.
type Store interface {
	NodeGetter

	// Channels returns channel metadata; a non-empty include list wins over exclude.
	Channels(ctx context.Context, include, exclude []string) ([]Channel, error)
	// Children returns the direct children of a node in lft order.
	Children(ctx context.Context, parentID string) ([]Node, error)
	// LeavesInRange returns the leaves of a channel with lft in [lft, rght].
	LeavesInRange(ctx context.Context, channelID string, lft, rght int64) ([]Node, error)
	// AvailableLeaves returns the leaves of a channel flagged available.
	AvailableLeaves(ctx context.Context, channelID string) ([]Node, error)
	// LeavesInChannels returns the leaves of every listed channel.
	LeavesInChannels(ctx context.Context, channelIDs []string) ([]Node, error)
	// LeavesWithParentContent returns the leaves of a channel with their parent's content_id.
	LeavesWithParentContent(ctx context.Context, channelID string) ([]LeafWithParent, error)
	// ContentIDs maps each existing node id to its content_id.
	ContentIDs(ctx context.Context, nodeIDs []string) (map[string]string, error)
}
