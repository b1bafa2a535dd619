package graph

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/hashicorp/go-multierror"
)

// The depth guard runs between parse and execution: it computes the maximum
// nesting depth of each operation's selection tree and rejects the request
// before any store access when the limit is exceeded. Fragment spreads count
// at their expansion point. Introspection fields (__schema, __typename, ...)
// are exempt so tooling queries are not depth-limited.

// validateDepth returns one violation per offending operation, aggregated
// into a multierror, or nil when every operation fits within limit.
func validateDepth(doc *ast.Document, limit int) error {
	fragments := make(map[string]*ast.FragmentDefinition)
	for _, def := range doc.Definitions {
		if frag, ok := def.(*ast.FragmentDefinition); ok && frag.Name != nil {
			fragments[frag.Name.Value] = frag
		}
	}

	var violations *multierror.Error
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		depth := selectionDepth(op.SelectionSet, fragments, make(map[string]bool))
		if depth > limit {
			violations = multierror.Append(violations, fmt.Errorf(
				"operation %s exceeds maximum operation depth of %d", operationName(op), limit))
		}
	}
	return violations.ErrorOrNil()
}

// selectionDepth walks a selection set: a field contributes one level plus
// its own subtree; fragments contribute their subtree at the current level.
// The expanding set breaks fragment spread cycles (a cyclic document is
// rejected by the engine's own validation anyway).
func selectionDepth(ss *ast.SelectionSet, fragments map[string]*ast.FragmentDefinition, expanding map[string]bool) int {
	if ss == nil {
		return 0
	}
	max := 0
	for _, sel := range ss.Selections {
		d := 0
		switch node := sel.(type) {
		case *ast.Field:
			if node.Name != nil && strings.HasPrefix(node.Name.Value, "__") {
				continue
			}
			d = 1 + selectionDepth(node.SelectionSet, fragments, expanding)
		case *ast.InlineFragment:
			d = selectionDepth(node.SelectionSet, fragments, expanding)
		case *ast.FragmentSpread:
			if node.Name == nil || expanding[node.Name.Value] {
				continue
			}
			frag, ok := fragments[node.Name.Value]
			if !ok {
				continue
			}
			expanding[node.Name.Value] = true
			d = selectionDepth(frag.SelectionSet, fragments, expanding)
			delete(expanding, node.Name.Value)
		}
		if d > max {
			max = d
		}
	}
	return max
}

func operationName(op *ast.OperationDefinition) string {
	if op.Name != nil && op.Name.Value != "" {
		return fmt.Sprintf("%q", op.Name.Value)
	}
	return "(anonymous)"
}
