package db

// KindTopic is the kind of every non-leaf node.
const KindTopic = "topic"

// Channel represents a row in the content_channelmetadata table
type Channel struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	RootID string `json:"root_id"`
}

// Node represents a row in the content_contentnode table
type Node struct {
	ID        string  `json:"id"`
	ContentID string  `json:"content_id"`
	ChannelID string  `json:"channel_id"`
	ParentID  *string `json:"parent_id"`
	Kind      string  `json:"kind"` // "topic", "video", "exercise", "document", ...
	Title     string  `json:"title"`
	Available bool    `json:"available"`
	Lft       int64   `json:"lft"` // nested-set bounds, scoped to the channel
	Rght      int64   `json:"rght"`
}

// NodeWithParent is a node along with the content_id of its parent.
// ParentContentID is nil for parentless nodes.
type NodeWithParent struct {
	Node
	ParentContentID *string `json:"parent_content_id"`
}
