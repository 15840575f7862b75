package hashgrid

import (
	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

// Matcher tests an element's tag mask. Matchers are built once per search
// so the tag bits are resolved before any bucket is scanned.
type Matcher func(tags mask.Mask) bool

func matchNone(mask.Mask) bool { return false }

type compositeNode struct {
	op       Operation
	children []QueryNode
	tags     []Tag
}

type leafNode struct {
	tags []Tag
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func newLeafNode(tags []Tag) *leafNode {
	return &leafNode{tags: tags}
}

func resolve(tags []Tag, indexer TagIndexer) mask.Mask {
	var m mask.Mask
	for _, tag := range tags {
		m.Mark(indexer.RowIndexFor(tag))
	}
	return m
}

func (n *compositeNode) Compile(indexer TagIndexer) Matcher {
	want := resolve(n.tags, indexer)
	children := make([]Matcher, len(n.children))
	for i, child := range n.children {
		children[i] = child.Compile(indexer)
	}

	switch n.op {
	case OpAnd:
		return func(tags mask.Mask) bool {
			if !tags.ContainsAll(want) {
				return false
			}
			for _, match := range children {
				if !match(tags) {
					return false
				}
			}
			return true
		}

	case OpOr:
		return func(tags mask.Mask) bool {
			if tags.ContainsAny(want) {
				return true
			}
			for _, match := range children {
				if match(tags) {
					return true
				}
			}
			return false
		}

	case OpNot:
		return func(tags mask.Mask) bool {
			for _, match := range children {
				if match(tags) {
					return false
				}
			}
			return tags.ContainsNone(want)
		}
	}
	return matchNone
}

func (n *compositeNode) Evaluate(tags mask.Mask, indexer TagIndexer) bool {
	return n.Compile(indexer)(tags)
}

// Compile for a leaf requires every tag; an empty leaf matches everything
func (n *leafNode) Compile(indexer TagIndexer) Matcher {
	want := resolve(n.tags, indexer)
	return func(tags mask.Mask) bool {
		return tags.ContainsAll(want)
	}
}

func (n *leafNode) Evaluate(tags mask.Mask, indexer TagIndexer) bool {
	return n.Compile(indexer)(tags)
}

func (q *query) node(op Operation, items []interface{}) QueryNode {
	node := &compositeNode{op: op}
	for _, item := range items {
		switch v := item.(type) {
		case QueryNode:
			node.children = append(node.children, v)
		case Tag:
			node.tags = append(node.tags, v)
		case []Tag:
			node.tags = append(node.tags, v...)
		}
	}
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) And(items ...interface{}) QueryNode {
	return q.node(OpAnd, items)
}

func (q *query) Or(items ...interface{}) QueryNode {
	return q.node(OpOr, items)
}

func (q *query) Not(items ...interface{}) QueryNode {
	return q.node(OpNot, items)
}

// Compile uses the first node built from the query; an empty query matches nothing
func (q *query) Compile(indexer TagIndexer) Matcher {
	if q.root == nil {
		return matchNone
	}
	return q.root.Compile(indexer)
}

func (q *query) Evaluate(tags mask.Mask, indexer TagIndexer) bool {
	return q.Compile(indexer)(tags)
}
