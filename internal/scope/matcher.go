package scope

import "strings"

// matcher is a case-insensitive Aho-Corasick automaton over a fixed keyword
// set. It is built once and only read afterwards, so it needs no locking.
type matcher struct {
	root *acNode
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []string
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

func newMatcher(keywords []string) *matcher {
	root := newACNode()

	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		node := root
		for _, r := range kw {
			next, ok := node.children[r]
			if !ok {
				next = newACNode()
				node.children[r] = next
			}
			node = next
		}
		node.output = append(node.output, kw)
	}

	// Breadth-first pass to wire failure links.
	queue := make([]*acNode, 0, len(root.children))
	for _, child := range root.children {
		child.failure = root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for r, child := range current.children {
			queue = append(queue, child)

			f := current.failure
			for f != nil {
				if next, ok := f.children[r]; ok {
					child.failure = next
					break
				}
				f = f.failure
			}
			if child.failure == nil {
				child.failure = root
			}
			child.output = append(child.output, child.failure.output...)
		}
	}

	return &matcher{root: root}
}

// find returns the first keyword found in text, scanning left to right.
func (m *matcher) find(text string) (string, bool) {
	node := m.root
	for _, r := range strings.ToLower(text) {
		for node != m.root {
			if _, ok := node.children[r]; ok {
				break
			}
			node = node.failure
		}
		if next, ok := node.children[r]; ok {
			node = next
		}
		if len(node.output) > 0 {
			return node.output[0], true
		}
	}
	return "", false
}
