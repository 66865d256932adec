// Package compare implements the order-sensitive tree diff and its patch
// model. Every observed change between two values is classified as a key
// insertion, key deletion, value update, or key-position reorder.
package compare

import "fmt"

// Kind classifies a single patch.
type Kind string

const (
	KindInsert  Kind = "insert"
	KindDelete  Kind = "delete"
	KindUpdate  Kind = "update"
	KindReorder Kind = "reorder"
)

// Patch records one change at a path. Old and New hold ordered.Value for
// insert/delete/update patches (nil on the absent side) and zero-based int
// positions for reorder patches. Equality is structural over all four
// fields; see fingerprint.go.
type Patch struct {
	Kind Kind     `json:"kind"`
	Path []string `json:"path"`
	Old  any      `json:"old"`
	New  any      `json:"new"`
}

// PatchSet accumulates patches across a diff run, one deduplicated
// collection per kind. Collection order follows first insertion and carries
// no meaning to consumers.
type PatchSet struct {
	Inserts  []Patch
	Deletes  []Patch
	Updates  []Patch
	Reorders []Patch

	seen map[string]struct{}
}

// NewPatchSet returns an empty accumulator.
func NewPatchSet() *PatchSet {
	return &PatchSet{seen: make(map[string]struct{})}
}

// Add inserts a patch into the collection for kind. Adding a structurally
// identical patch twice leaves the set unchanged, so merging repeated runs
// cannot produce duplicates. An unrecognized kind is a programming fault
// and panics.
func (ps *PatchSet) Add(kind Kind, path []string, oldValue, newValue any) {
	bucket := ps.bucket(kind)
	p := Patch{
		Kind: kind,
		Path: append([]string(nil), path...),
		Old:  oldValue,
		New:  newValue,
	}
	fp := p.fingerprint()
	if _, dup := ps.seen[fp]; dup {
		return
	}
	ps.seen[fp] = struct{}{}
	*bucket = append(*bucket, p)
}

// Len returns the total number of patches across all four collections.
func (ps *PatchSet) Len() int {
	return len(ps.Inserts) + len(ps.Deletes) + len(ps.Updates) + len(ps.Reorders)
}

// Empty reports whether no patches were recorded.
func (ps *PatchSet) Empty() bool {
	return ps.Len() == 0
}

func (ps *PatchSet) bucket(kind Kind) *[]Patch {
	switch kind {
	case KindInsert:
		return &ps.Inserts
	case KindDelete:
		return &ps.Deletes
	case KindUpdate:
		return &ps.Updates
	case KindReorder:
		return &ps.Reorders
	}
	panic(fmt.Sprintf("compare: invalid patch kind %q", kind))
}
