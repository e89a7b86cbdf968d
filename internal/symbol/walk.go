package symbol

// Visit is called for each node of a walk. depth is 0 for roots.
type Visit func(n Node, depth int)

// Walk visits every node of tree depth first in output order: a container,
// then its leaves, then its nested containers. Leaves handed over at the
// root are visited as well.
func Walk(tree Tree, visit Visit) {
	for _, root := range tree.Roots() {
		walkNode(tree, root, 0, visit)
	}
}

func walkNode(tree Tree, n Node, depth int, visit Visit) {
	visit(n, depth)
	if !n.Kind.IsContainer() {
		return
	}
	for _, leaf := range tree.Leaves(n) {
		visit(leaf, depth+1)
	}
	for _, child := range tree.Containers(n) {
		walkNode(tree, child, depth+1, visit)
	}
}
