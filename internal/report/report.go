// Package report aggregates per-channel covering results and renders them.
package report

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"kolibri/listcontent/internal/content"
)

// Entry is a covering node with its resolved display path.
type Entry struct {
	Node        content.Node
	Breadcrumbs []string
}

// ContentList is the covering result for one channel.
type ContentList struct {
	Channel     content.Channel
	PickedCount int
	Include     []Entry
	Exclude     []Entry
}

// HasContent reports whether any leaf of the channel is picked.
func (l *ContentList) HasContent() bool {
	return l.PickedCount > 0
}

// IsSubset reports whether the list has content and explicit node lists.
func (l *ContentList) IsSubset() bool {
	return l.HasContent() && (len(l.Include) > 0 || len(l.Exclude) > 0)
}

// Report holds one ContentList per channel in the order channels were queried.
type Report struct {
	lists []*ContentList
}

// Add appends a list.
func (r *Report) Add(l *ContentList) {
	r.lists = append(r.lists, l)
}

// all returns every list in query order.
func (r *Report) all() []*ContentList {
	return r.lists
}

// Visible returns the lists that have content.
func (r *Report) Visible() []*ContentList {
	return r.filter((*ContentList).HasContent)
}

// Filtered returns the lists that are subsets.
func (r *Report) Filtered() []*ContentList {
	return r.filter((*ContentList).IsSubset)
}

func (r *Report) filter(keep func(*ContentList) bool) []*ContentList {
	var out []*ContentList
	for _, l := range r.lists {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// Builder computes content lists from a store with one selection strategy.
type Builder struct {
	store    content.Store
	selector content.Selector
	coverer  *content.Coverer
	log      *logrus.Entry
}

func NewBuilder(store content.Store, selector content.Selector, log *logrus.Entry) *Builder {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Builder{
		store:    store,
		selector: selector,
		coverer:  content.NewCoverer(store),
		log:      log,
	}
}

// Build computes a content list for every channel, in order. The first error
// aborts the run.
func (b *Builder) Build(ctx context.Context, channels []content.Channel) (*Report, error) {
	r := &Report{}
	for _, ch := range channels {
		l, err := b.ContentList(ctx, ch)
		if err != nil {
			return nil, fmt.Errorf("channel %s (%s): %w", ch.Name, ch.ID, err)
		}
		r.Add(l)
	}
	return r, nil
}

// ContentList computes the content list of one channel.
func (b *Builder) ContentList(ctx context.Context, ch content.Channel) (*ContentList, error) {
	log := b.log.WithField("channel", ch.ID)

	picked, err := b.selector.PickedLeaves(ctx, ch.ID)
	if err != nil {
		return nil, err
	}
	l := &ContentList{Channel: ch, PickedCount: picked.Len()}
	if picked.Empty() {
		log.Debug("No picked content")
		return l, nil
	}

	root, err := b.store.Node(ctx, ch.RootID)
	if err != nil {
		return nil, fmt.Errorf("querying root %s: %w", ch.RootID, err)
	}

	cover, err := b.coverer.Cover(ctx, root, picked)
	if err != nil {
		return nil, err
	}

	if l.Include, err = b.entries(ctx, cover.Include); err != nil {
		return nil, err
	}
	if l.Exclude, err = b.entries(ctx, cover.Exclude); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"picked":  l.PickedCount,
		"include": len(l.Include),
		"exclude": len(l.Exclude),
	}).Debug("Covered channel")
	return l, nil
}

func (b *Builder) entries(ctx context.Context, nodes []content.Node) ([]Entry, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	entries := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		crumbs, err := content.Breadcrumbs(ctx, b.store, n)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Node: n, Breadcrumbs: crumbs})
	}
	return entries, nil
}
