package content

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Selector decides which leaves of a channel are picked.
type Selector interface {
	PickedLeaves(ctx context.Context, channelID string) (*LeafSet, error)
}

// AvailableSelector picks every leaf flagged available.
type AvailableSelector struct {
	store Store
}

func NewAvailableSelector(store Store) *AvailableSelector {
	return &AvailableSelector{store: store}
}

func (s *AvailableSelector) PickedLeaves(ctx context.Context, channelID string) (*LeafSet, error) {
	leaves, err := s.store.AvailableLeaves(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("querying available leaves of %s: %w", channelID, err)
	}
	return NewLeafSet(leaves...), nil
}

// PickListSelector picks leaves that match the leaves of one or more pick-list
// channels by content_id and by the content_id of their parent. Node ids are
// never compared: the same content has different node ids in each channel.
type PickListSelector struct {
	store       Store
	log         *logrus.Entry
	channelIDs  []string
	orAvailable bool

	// Computed on first use, read-only afterwards.
	loaded           bool
	contentIDs       map[string]struct{}
	parentContentIDs map[string]struct{}
}

// NewPickListSelector returns a selector over the given pick-list channels.
// With orAvailable, leaves flagged available are picked as well.
func NewPickListSelector(store Store, channelIDs []string, orAvailable bool, log *logrus.Entry) *PickListSelector {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &PickListSelector{
		store:       store,
		log:         log,
		channelIDs:  append([]string(nil), channelIDs...),
		orAvailable: orAvailable,
	}
}

func (s *PickListSelector) PickedLeaves(ctx context.Context, channelID string) (*LeafSet, error) {
	picked := NewLeafSet()
	if len(s.channelIDs) == 0 {
		return picked, nil
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}

	leaves, err := s.store.LeavesWithParentContent(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("querying leaves of %s: %w", channelID, err)
	}
	for _, leaf := range leaves {
		if s.matches(leaf) || (s.orAvailable && leaf.Available) {
			picked.Add(leaf.Node)
		}
	}
	return picked, nil
}

func (s *PickListSelector) matches(leaf LeafWithParent) bool {
	if leaf.ParentContentID == nil {
		return false
	}
	if _, ok := s.contentIDs[leaf.ContentID]; !ok {
		return false
	}
	_, ok := s.parentContentIDs[*leaf.ParentContentID]
	return ok
}

// load computes the content_id sets of the pick-list leaves and of their parents.
func (s *PickListSelector) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	leaves, err := s.store.LeavesInChannels(ctx, s.channelIDs)
	if err != nil {
		return fmt.Errorf("querying pick list leaves: %w", err)
	}

	contentIDs := make(map[string]struct{}, len(leaves))
	var parentIDs []string
	seenParent := make(map[string]bool)
	for _, leaf := range leaves {
		contentIDs[leaf.ContentID] = struct{}{}
		if leaf.ParentID != nil && !seenParent[*leaf.ParentID] {
			seenParent[*leaf.ParentID] = true
			parentIDs = append(parentIDs, *leaf.ParentID)
		}
	}

	parents, err := s.store.ContentIDs(ctx, parentIDs)
	if err != nil {
		return fmt.Errorf("querying pick list parents: %w", err)
	}
	parentContentIDs := make(map[string]struct{}, len(parents))
	for _, contentID := range parents {
		parentContentIDs[contentID] = struct{}{}
	}

	s.contentIDs = contentIDs
	s.parentContentIDs = parentContentIDs
	s.loaded = true

	s.log.WithFields(logrus.Fields{
		"channels":           s.channelIDs,
		"leaves":             len(leaves),
		"content_ids":        len(contentIDs),
		"parent_content_ids": len(parentContentIDs),
	}).Debug("Loaded pick list")
	return nil
}
