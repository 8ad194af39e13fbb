package dom

import "golang.org/x/net/html"

// Append inserts nodes as the last children of parent.
func (d *Document) Append(parent *html.Node, nodes ...*html.Node) {
	r := &recorder{doc: d}
	d.insert(r, parent, nil, nodes)
	r.flush()
}

// Prepend inserts nodes before the first child of parent.
func (d *Document) Prepend(parent *html.Node, nodes ...*html.Node) {
	r := &recorder{doc: d}
	d.insert(r, parent, parent.FirstChild, nodes)
	r.flush()
}

// Before inserts nodes immediately before n. No-op if n has no parent.
func (d *Document) Before(n *html.Node, nodes ...*html.Node) {
	if n.Parent == nil {
		return
	}
	r := &recorder{doc: d}
	d.insert(r, n.Parent, n, nodes)
	r.flush()
}

// After inserts nodes immediately after n. No-op if n has no parent.
func (d *Document) After(n *html.Node, nodes ...*html.Node) {
	if n.Parent == nil {
		return
	}
	r := &recorder{doc: d}
	d.insert(r, n.Parent, viableNextSibling(n, nodes), nodes)
	r.flush()
}

// ReplaceWith replaces n with nodes. No-op if n has no parent.
func (d *Document) ReplaceWith(n *html.Node, nodes ...*html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	r := &recorder{doc: d}
	next := viableNextSibling(n, nodes)
	d.detach(r, n)
	d.insert(r, parent, next, nodes)
	r.flush()
}

// ReplaceChildren removes every child of parent, then appends nodes.
func (d *Document) ReplaceChildren(parent *html.Node, nodes ...*html.Node) {
	r := &recorder{doc: d}
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		if !containsNode(nodes, c) {
			d.detach(r, c)
		}
		c = next
	}
	d.insert(r, parent, nil, nodes)
	r.flush()
}

// Remove detaches n from its parent. No-op for detached nodes.
func (d *Document) Remove(n *html.Node) {
	if n.Parent == nil {
		return
	}
	r := &recorder{doc: d}
	d.detach(r, n)
	r.flush()
}

func (d *Document) insert(r *recorder, parent, ref *html.Node, nodes []*html.Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if IsFragment(n) {
			for _, c := range Children(n) {
				n.RemoveChild(c)
				d.insertOne(r, parent, ref, c)
			}
			continue
		}
		d.insertOne(r, parent, ref, n)
	}
}

func (d *Document) insertOne(r *recorder, parent, ref, n *html.Node) {
	if n == ref {
		return
	}
	if n.Parent != nil {
		d.detach(r, n)
	}
	if ref != nil && ref.Parent == parent {
		parent.InsertBefore(n, ref)
	} else {
		parent.AppendChild(n)
	}
	r.record(parent, n, nil)
}

func (d *Document) detach(r *recorder, n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	// Record before detaching so connectedness is judged on the old position.
	r.record(parent, nil, n)
	parent.RemoveChild(n)
}

// viableNextSibling is the first following sibling of n that is not itself
// being inserted.
func viableNextSibling(n *html.Node, nodes []*html.Node) *html.Node {
	next := n.NextSibling
	for next != nil && containsNode(nodes, next) {
		next = next.NextSibling
	}
	return next
}

func containsNode(nodes []*html.Node, n *html.Node) bool {
	for _, c := range nodes {
		if c == n {
			return true
		}
	}
	return false
}
