package ast

// WalkStmt traverses a statement tree depth-first and calls fn for each
// statement. If fn returns false, the children of that statement are skipped.
func WalkStmt(s Stmt, fn func(Stmt) bool) {
	if s == nil {
		return
	}
	if !fn(s) {
		return
	}

	switch n := s.(type) {
	case *Block:
		for _, child := range n.Stmts {
			WalkStmt(child, fn)
		}
	case *If:
		WalkStmt(n.Then, fn)
		WalkStmt(n.Else, fn)
	case *Case:
		for _, item := range n.Items {
			WalkStmt(item.Body, fn)
		}
	case *Loop:
		WalkStmt(n.Body, fn)
	case *Assign, *SystemCall, *UnknownStmt:
		// leaves
	}
}

// WalkItems calls fn for every item of a module, descending into generate
// regions. If fn returns false for a generate region its items are skipped.
func WalkItems(items []Item, fn func(Item) bool) {
	for _, it := range items {
		if it == nil || !fn(it) {
			continue
		}
		if g, ok := it.(*Generate); ok {
			WalkItems(g.Items, fn)
		}
	}
}
