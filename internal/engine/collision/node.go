package collision

// Node is a named element of the collidable scene tree. A node may carry
// a collider, children, or both.
type Node struct {
	Name     string
	Collider Collider
	children []*Node
}

// NewNode creates a node with no collider.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// NewColliderNode creates a leaf node carrying a collider.
func NewColliderNode(name string, c Collider) *Node {
	return &Node{Name: name, Collider: c}
}

// AddChild attaches a child node and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.children = append(n.children, child)
	return child
}

// Children returns the node's children.
func (n *Node) Children() []*Node {
	return n.children
}

// Raycast finds the nearest intersection within maxDist, descending
// recursively into child nodes. The returned hit references the struck
// node.
func (n *Node) Raycast(r Ray, maxDist float32) (Hit, bool) {
	best := Hit{Distance: maxDist}
	found := false

	if n.Collider != nil {
		if hit, ok := n.Collider.IntersectRay(r, maxDist); ok {
			hit.Node = n
			best = hit
			found = true
		}
	}

	for _, child := range n.children {
		if hit, ok := child.Raycast(r, maxDist); ok {
			if !found || hit.Distance < best.Distance {
				best = hit
				found = true
			}
		}
	}

	return best, found
}
