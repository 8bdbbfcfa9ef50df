package services

import (
	"context"

	"github.com/google/uuid"
)

// ParentLookup resolves the current parent of a node while taking a row
// lock on it, so the chain walked here cannot be rewritten by a
// concurrent transaction before this transaction commits. The second
// return reports whether the node exists at all.
type ParentLookup func(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error)

// validateEdge checks that attaching child under parent keeps the graph
// an acyclic forest within maxDepth levels. It must run inside the same
// transaction that writes the edge; the lookup's FOR UPDATE locks make
// the check-then-write pair indivisible.
func validateEdge(ctx context.Context, child, parent uuid.UUID, maxDepth int, lookup ParentLookup) error {
	if child == parent {
		recordHierarchyRejection("self_reference")
		return errSelfReference("a node cannot be its own parent")
	}

	visited := map[uuid.UUID]struct{}{child: {}}
	current := parent
	// Edges on the child's new ancestor path, starting with the edge
	// being written. A chain of maxDepth nodes has maxDepth-1 edges.
	depth := 1

	for {
		if _, seen := visited[current]; seen {
			recordHierarchyRejection("cycle")
			return errCycle("edge would create a cycle")
		}
		visited[current] = struct{}{}

		next, exists, err := lookup(ctx, current)
		if err != nil {
			return mapPgError(err)
		}
		if !exists {
			return errNotFound("parent")
		}
		if next == nil {
			return nil
		}

		depth++
		if depth >= maxDepth {
			recordHierarchyRejection("depth_exceeded")
			return errDepthExceeded("hierarchy depth limit exceeded")
		}
		current = *next
	}
}
