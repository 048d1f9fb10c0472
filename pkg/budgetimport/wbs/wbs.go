// Package wbs derives a two-level work breakdown structure from disciplines.
package wbs

import (
	"fmt"
	"strings"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

var demoTokens = map[string]bool{"DEMO": true, "DEMOLITION": true}

// IsDemo reports whether a discipline name carries a demolition token.
func IsDemo(name string) bool {
	for _, f := range strings.FieldsFunc(name, isSeparator) {
		if demoTokens[strings.ToUpper(f)] {
			return true
		}
	}
	return false
}

// StripDemo removes demolition tokens and separators from a discipline name.
func StripDemo(name string) string {
	var kept []string
	for _, f := range strings.FieldsFunc(name, isSeparator) {
		if !demoTokens[strings.ToUpper(f)] {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '/' || r == '(' || r == ')' || r == '\t'
}

type builder struct {
	order    []string
	known    map[string]bool
	parentOf map[string]string
	codes    map[string]string
	demo     map[string]bool
}

func (b *builder) add(name string) {
	if name == "" || b.known[name] {
		return
	}
	b.known[name] = true
	b.order = append(b.order, name)
}

// top follows declared parents to the top-level ancestor.
func (b *builder) top(name string) string {
	visited := map[string]bool{}
	for {
		p, ok := b.parentOf[name]
		if !ok || visited[p] {
			return name
		}
		visited[name] = true
		name = p
	}
}

// breakCycles drops the parent of the first-seen member of each parent cycle,
// so every member resolves to that one root.
func (b *builder) breakCycles() {
	pos := make(map[string]int, len(b.order))
	for i, name := range b.order {
		pos[name] = i
	}
	for _, name := range b.order {
		path := map[string]bool{}
		for n := name; ; {
			if path[n] {
				root := n
				for m := b.parentOf[n]; m != n; m = b.parentOf[m] {
					if pos[m] < pos[root] {
						root = m
					}
				}
				delete(b.parentOf, root)
				break
			}
			path[n] = true
			p, ok := b.parentOf[n]
			if !ok {
				break
			}
			n = p
		}
	}
}

// Build groups disciplines into a two-level tree. Structure entries, when
// given, declare parents and demo flags; otherwise a demo discipline is
// attached to its base discipline when that base was observed. Disciplines
// without a parent become top-level nodes. Parents keep first-seen order and
// children keep first-seen order within their parent.
func Build(structure []models.StructureEntry, observed []models.DisciplineRef) []models.WbsNode {
	b := &builder{
		known:    make(map[string]bool),
		parentOf: make(map[string]string),
		codes:    make(map[string]string),
		demo:     make(map[string]bool),
	}

	for _, e := range structure {
		b.add(e.Discipline)
		if e.Code != "" {
			b.codes[e.Discipline] = e.Code
		}
		b.demo[e.Discipline] = e.Demo
		if e.Parent != "" && e.Parent != e.Discipline {
			b.parentOf[e.Discipline] = e.Parent
			b.add(e.Parent)
		}
	}
	for _, d := range observed {
		b.add(d.Name)
		if _, ok := b.codes[d.Name]; !ok && d.Code != "" {
			b.codes[d.Name] = d.Code
		}
	}

	for _, name := range b.order {
		if _, ok := b.parentOf[name]; ok {
			continue
		}
		if !b.demo[name] && !IsDemo(name) {
			continue
		}
		b.demo[name] = true
		if base := StripDemo(name); base != "" && base != name && b.known[base] {
			b.parentOf[name] = base
		}
	}

	b.breakCycles()

	var nodes []models.WbsNode
	index := make(map[string]int)
	ensure := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		index[name] = len(nodes)
		nodes = append(nodes, models.WbsNode{Description: name, Demo: b.demo[name]})
		return index[name]
	}

	for _, name := range b.order {
		parent := b.top(name)
		if parent == name {
			ensure(name)
			continue
		}
		i := ensure(parent)
		nodes[i].Children = append(nodes[i].Children, models.WbsNode{Description: name, Demo: b.demo[name]})
	}

	for i := range nodes {
		nodes[i].Code = b.code(nodes[i].Description, fmt.Sprintf("%02d", i+1))
		for j := range nodes[i].Children {
			child := &nodes[i].Children[j]
			child.Code = b.code(child.Description, fmt.Sprintf("%s.%02d", nodes[i].Code, j+1))
		}
	}
	return nodes
}

func (b *builder) code(name, fallback string) string {
	if c := b.codes[name]; c != "" {
		return c
	}
	return fallback
}

// RollUp sets each node's Total from per-discipline values. A parent's total
// includes its children, so demo costs roll into the parent discipline.
// It returns the total per top-level discipline.
func RollUp(nodes []models.WbsNode, byDiscipline map[string]float64) map[string]float64 {
	totals := make(map[string]float64, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		n.Total = byDiscipline[n.Description]
		for j := range n.Children {
			c := &n.Children[j]
			c.Total = byDiscipline[c.Description]
			n.Total += c.Total
		}
		totals[n.Description] = n.Total
	}
	return totals
}
