package eventually

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Regrouper rebuilds event groups from a flat, created-ordered stream of
// events fetched with children and siblings expanded. Each yielded event is a
// group parent: its siblings are ordered by the parent's sibling id list and
// its children (recursively) by sub-play. Events already emitted as a member
// of an earlier group are dropped.
//
// The seen set stays small in practice because every id put into it comes
// back out within the same group of pages.
type Regrouper struct {
	seen map[uuid.UUID]struct{}
}

// NewRegrouper creates an empty regrouper. One regrouper should be used per
// ingest pass so duplicate suppression spans page boundaries.
func NewRegrouper() *Regrouper {
	return &Regrouper{seen: make(map[uuid.UUID]struct{})}
}

// Regroup processes one page of events and returns the group parents.
func (r *Regrouper) Regroup(events []Event) ([]Event, error) {
	var out []Event
	for _, event := range events {
		if _, dup := r.seen[event.ID]; dup {
			delete(r.seen, event.ID)
			continue
		}

		if len(r.seen) > 50 {
			slog.Warn("regrouper seen set larger than expected", "ids", len(r.seen))
		}

		for _, sibling := range event.Metadata.Siblings {
			if sibling.ID != event.ID {
				r.seen[sibling.ID] = struct{}{}
			}
		}
		for _, child := range event.Metadata.Children {
			r.seen[child.ID] = struct{}{}
		}

		parent, err := promoteParent(event)
		if err != nil {
			return nil, err
		}
		if err := sortChildren(parent.Metadata.Children); err != nil {
			return nil, err
		}
		out = append(out, parent)
	}
	return out, nil
}

// promoteParent orders the siblings by the sibling id list and, if the first
// sibling is not the event itself, promotes it to group parent. The parent is
// not always the first event the feed returns.
func promoteParent(event Event) (Event, error) {
	if len(event.Metadata.Siblings) == 0 {
		return event, nil
	}

	idOrder := make(map[uuid.UUID]int, len(event.Metadata.SiblingIDs))
	for i, id := range event.Metadata.SiblingIDs {
		idOrder[id] = i
	}

	siblings := event.Metadata.Siblings
	for _, sibling := range siblings {
		if _, ok := idOrder[sibling.ID]; !ok {
			return Event{}, fmt.Errorf("sibling %s of event %s is not in the sibling id list", sibling.ID, event.ID)
		}
	}
	sort.SliceStable(siblings, func(i, j int) bool {
		return idOrder[siblings[i].ID] < idOrder[siblings[j].ID]
	})

	first := siblings[0]
	if first.ID == event.ID {
		event.Metadata.Siblings = siblings
		return event, nil
	}

	parent := first
	parent.Metadata.Siblings = siblings
	return parent, nil
}

// sortChildren recursively orders children by sub-play. Parsing is much
// simpler when children are always in sub-play order.
func sortChildren(children []Event) error {
	for i := range children {
		if children[i].Metadata.SubPlay == nil {
			return fmt.Errorf("child event %s has no subPlay", children[i].ID)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return *children[i].Metadata.SubPlay < *children[j].Metadata.SubPlay
	})
	for i := 1; i < len(children); i++ {
		if *children[i].Metadata.SubPlay == *children[i-1].Metadata.SubPlay {
			return fmt.Errorf("duplicate subPlay %d under one parent", *children[i].Metadata.SubPlay)
		}
	}
	for i := range children {
		if err := sortChildren(children[i].Metadata.Children); err != nil {
			return err
		}
	}
	return nil
}
