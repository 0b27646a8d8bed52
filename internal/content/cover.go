package content

import (
	"context"
	"fmt"
	"sort"
)

// Cover is the covering result for one channel. Both slices are strictly
// ascending by Lft.
type Cover struct {
	Include []Node
	Exclude []Node
}

// Coverer computes covers by querying the store for subtree leaves.
type Coverer struct {
	store Store
}

func NewCoverer(store Store) *Coverer {
	return &Coverer{store: store}
}

// Cover walks the tree under root breadth first and returns the coarsest
// nodes whose leaves are all picked, such that the leaves under Include are
// exactly the picked set.
//
// A topic whose leaves are all picked is included whole. A topic with some
// picked leaves is refined into its children. A topic with no picked leaves
// is pruned without visiting its descendants. Exclude is always empty:
// anything not included is excluded implicitly.
func (c *Coverer) Cover(ctx context.Context, root Node, picked *LeafSet) (Cover, error) {
	var cover Cover
	if picked.Empty() {
		return cover, nil
	}

	queue := []Node{root}
	for i := 0; i < len(queue); i++ {
		node := queue[i]

		if !node.IsTopic() {
			if picked.Contains(node) {
				cover.Include = append(cover.Include, node)
			}
			continue
		}

		leaves, err := c.store.LeavesInRange(ctx, node.ChannelID, node.Lft, node.Rght)
		if err != nil {
			return Cover{}, fmt.Errorf("querying leaves under %s: %w", node.ID, err)
		}

		matching, missing := 0, 0
		for _, leaf := range leaves {
			if picked.Contains(leaf) {
				matching++
			} else {
				missing++
			}
		}

		switch {
		case missing == 0:
			cover.Include = append(cover.Include, node)
		case matching > 0:
			children, err := c.store.Children(ctx, node.ID)
			if err != nil {
				return Cover{}, fmt.Errorf("querying children of %s: %w", node.ID, err)
			}
			queue = append(queue, children...)
		}
	}

	sortByLft(cover.Include)
	sortByLft(cover.Exclude)
	return cover, nil
}

func sortByLft(nodes []Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Lft < nodes[j].Lft
	})
}
