package autodiff

// buildTape linearizes the subgraph reachable from terminal into
// topological execution order: parents always appear before the nodes
// that consumed them, and terminal comes last. The backward pass walks
// the result back-to-front, so every node's gradient is complete before
// it is pushed to its parents.
//
// Subgraphs that do not require grad are pruned: they can contribute no
// gradient, so their nodes never enter the tape. The traversal is an
// iterative depth-first post-order; graph depth is bounded by memory,
// not goroutine stack.
func buildTape(terminal *Node) []*Node {
	if !terminal.requiresGrad {
		return nil
	}

	var tape []*Node
	visited := make(map[uint64]bool)

	type frame struct {
		node     *Node
		expanded bool
	}
	stack := []frame{{node: terminal}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.expanded {
			// All parents emitted; emit the node itself.
			tape = append(tape, top.node)
			stack = stack[:len(stack)-1]
			continue
		}

		// A node can sit on the stack twice when it fans out into two
		// consumers; only the first surfacing expands and emits it.
		if visited[top.node.id] {
			stack = stack[:len(stack)-1]
			continue
		}
		visited[top.node.id] = true
		top.expanded = true

		// Pushed in reverse so parents are visited in declaration order.
		parents := top.node.parents
		for i := len(parents) - 1; i >= 0; i-- {
			if parent := parents[i]; parent.requiresGrad && !visited[parent.id] {
				stack = append(stack, frame{node: parent})
			}
		}
	}

	return tape
}
