package content

import (
	"context"
	"fmt"
)

// Breadcrumbs returns the titles from the top of node's tree down to node.
// Ancestors whose content_id equals their channel id are channel roots and
// are left out. Parent links must be acyclic.
func Breadcrumbs(ctx context.Context, nodes NodeGetter, node Node) ([]string, error) {
	titles := []string{node.Title}
	for node.ParentID != nil {
		parent, err := nodes.Node(ctx, *node.ParentID)
		if err != nil {
			return nil, fmt.Errorf("querying parent of %s: %w", node.ID, err)
		}
		node = parent
		if node.ContentID != node.ChannelID {
			titles = append(titles, node.Title)
		}
	}

	for i, j := 0, len(titles)-1; i < j; i, j = i+1, j-1 {
		titles[i], titles[j] = titles[j], titles[i]
	}
	return titles, nil
}
