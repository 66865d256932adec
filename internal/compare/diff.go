package compare

import (
	"github.com/ryanjanoconnell/httpdiff/pkg/ordered"
)

// Diff compares two values and returns the complete patch set describing
// how to transform a into b. Inputs are never mutated; the function is pure
// and safe to call concurrently on independent pairs.
func Diff(a, b ordered.Value) *PatchSet {
	ps := NewPatchSet()
	diffInto(ps, nil, a, b)
	return ps
}

func diffInto(ps *PatchSet, path []string, a, b ordered.Value) {
	ta, aIsTree := a.(*ordered.Tree)
	tb, bIsTree := b.(*ordered.Tree)
	if aIsTree && bIsTree {
		diffTrees(ps, path, ta, tb)
		return
	}
	// Leaf case: also covers a tree paired with a scalar, which records a
	// single update carrying the raw values, never per-leaf patches.
	if !valueEqual(a, b) {
		ps.Add(KindUpdate, path, a, b)
	}
}

func diffTrees(ps *PatchSet, path []string, a, b *ordered.Tree) {
	// Reorders only make sense when both sides have stable positions.
	positional := a.Positional() && b.Positional()

	for _, k := range keyUnion(a, b) {
		kp := childPath(path, k)
		va, inA := a.Get(k)
		vb, inB := b.Get(k)

		switch {
		case !inA:
			// The whole new subtree is the patch value; no recursion.
			ps.Add(KindInsert, kp, nil, vb)
		case !inB:
			ps.Add(KindDelete, kp, va, nil)
		default:
			_, vaTree := va.(*ordered.Tree)
			_, vbTree := vb.(*ordered.Tree)

			// An object is never updated as a whole; only its leaves are.
			if !(vaTree && vbTree) && !valueEqual(va, vb) {
				ps.Add(KindUpdate, kp, va, vb)
			}

			// Independent of the update check: a key can be both updated
			// and reordered.
			if positional {
				ia, _ := a.IndexOf(k)
				ib, _ := b.IndexOf(k)
				if ia != ib {
					ps.Add(KindReorder, kp, ia, ib)
				}
			}

			if vaTree && vbTree {
				diffInto(ps, kp, va, vb)
			}
		}
	}
}

// keyUnion returns a's keys in a's order followed by b's keys not already
// seen, in b's order. Traversing the union guarantees keys unique to b are
// visited.
func keyUnion(a, b *ordered.Tree) []string {
	keys := a.Keys()
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}
	for _, k := range b.Keys() {
		if _, dup := seen[k]; !dup {
			keys = append(keys, k)
		}
	}
	return keys
}

func childPath(path []string, key string) []string {
	// Full slice expression so sibling keys never clobber each other
	// through a shared backing array.
	return append(path[:len(path):len(path)], key)
}

// valueEqual reports equality for the non-recursive cases: two scalars
// compare by deep value equality, and a tree is never equal to a scalar.
// Two trees never reach this point; they are handled by recursion.
func valueEqual(a, b ordered.Value) bool {
	sa, aIsScalar := a.(ordered.Scalar)
	sb, bIsScalar := b.(ordered.Scalar)
	if aIsScalar && bIsScalar {
		return sa.Equal(sb)
	}
	return false
}
