package core

import (
	"fmt"
	"iter"
	"regexp"

	"cogentcore.org/core/base/ordmap"
	"github.com/jinzhu/copier"
)

// Registry maps item labels to items, keeping insertion order. Insertion
// order is draw order; back-to-front sorting is left to the caller.
// Not safe for concurrent use.
type Registry struct {
	items *ordmap.Map[string, *Item]
}

func NewRegistry() *Registry {
	return &Registry{items: ordmap.New[string, *Item]()}
}

// Create registers it under its label.
func (r *Registry) Create(it *Item) (*Item, error) {
	if _, ok := r.items.ValueByKeyTry(it.Label); ok {
		return nil, fmt.Errorf("create %q: %w", it.Label, ErrDuplicateLabel)
	}
	if err := it.Placement.Validate(); err != nil {
		return nil, fmt.Errorf("create %q: %w", it.Label, err)
	}
	r.items.Add(it.Label, it)
	return it, nil
}

// Update runs fn on a deep copy of the item stored under label. The copy
// replaces the stored item only when fn succeeds and the result is still
// valid, so a failed update leaves the item untouched. Pointers returned
// earlier stay valid and observe the change.
func (r *Registry) Update(label string, fn func(*Item) error) (*Item, error) {
	cur, ok := r.items.ValueByKeyTry(label)
	if !ok {
		return nil, fmt.Errorf("update %q: %w", label, ErrNotFound)
	}

	var draft Item
	if err := copier.CopyWithOption(&draft, cur, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("update %q: copy item: %w", label, err)
	}
	if err := fn(&draft); err != nil {
		return nil, fmt.Errorf("update %q: %w", label, err)
	}
	if draft.Label != label {
		return nil, fmt.Errorf("update %q: label cannot be changed to %q", label, draft.Label)
	}
	if err := draft.Placement.Validate(); err != nil {
		return nil, fmt.Errorf("update %q: %w", label, err)
	}

	draft.ID = cur.ID
	draft.Version = cur.Version + 1
	*cur = draft
	return cur, nil
}

// Remove deletes the item under label. Removing a missing label is a no-op
// so teardown can be repeated.
func (r *Registry) Remove(label string) (*Item, bool) {
	it, ok := r.items.ValueByKeyTry(label)
	if !ok {
		return nil, false
	}
	r.items.DeleteKey(label)
	return it, true
}

// RemoveMatching removes every item whose label matches re and returns the
// removed items in draw order.
func (r *Registry) RemoveMatching(re *regexp.Regexp) []*Item {
	var removed []*Item
	for _, label := range r.items.Keys() {
		if re.MatchString(label) {
			if it, ok := r.Remove(label); ok {
				removed = append(removed, it)
			}
		}
	}
	return removed
}

func (r *Registry) Get(label string) (*Item, bool) {
	return r.items.ValueByKeyTry(label)
}

func (r *Registry) Len() int {
	return r.items.Len()
}

// Labels returns the labels in insertion order.
func (r *Registry) Labels() []string {
	return r.items.Keys()
}

// All yields the items in insertion order. The sequence can be ranged over
// any number of times; each pass sees the registry as it is when the pass
// starts.
func (r *Registry) All() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for _, it := range r.items.Values() {
			if !yield(it) {
				return
			}
		}
	}
}

// Clear removes every item.
func (r *Registry) Clear() []*Item {
	all := r.items.Values()
	r.items.Reset()
	return all
}
