// Package treeview renders a project, or one PLC program, as a box-drawing
// text tree.
//
// Each line's prefix comes from the ancestors stack: one column per open
// level, blank when that ancestor was the last of its siblings and a
// vertical bar otherwise. A level may hold several sections in a fixed
// order (a device item's software entry, its hardware, its nested items);
// whether an entry is last accounts only for the non-empty sections that
// follow it.
package treeview

import (
	"strings"
)

const (
	tee    = "├── "
	elbow  = "└── "
	pipe   = "│   "
	spacer = "    "
)

// ancestors records, per open level, whether that ancestor was the last
// sibling. push copies, so siblings never see each other's descendants.
type ancestors []bool

func (a ancestors) push(last bool) ancestors {
	out := make(ancestors, len(a)+1)
	copy(out, a)
	out[len(a)] = last
	return out
}

func (a ancestors) prefix() string {
	var b strings.Builder
	for _, last := range a {
		if last {
			b.WriteString(spacer)
		} else {
			b.WriteString(pipe)
		}
	}
	return b.String()
}

// printer accumulates output lines.
type printer struct {
	b strings.Builder
}

func (p *printer) root(text string) {
	p.b.WriteString(text)
	p.b.WriteByte('\n')
}

func (p *printer) line(anc ancestors, last bool, text string) {
	p.b.WriteString(anc.prefix())
	if last {
		p.b.WriteString(elbow)
	} else {
		p.b.WriteString(tee)
	}
	p.b.WriteString(text)
	p.b.WriteByte('\n')
}

func (p *printer) String() string { return p.b.String() }

// node renders one entry and everything below it.
type node func(p *printer, anc ancestors, last bool) error

// section is a run of sibling nodes. A headed section prints its header at
// the current level and nests its nodes below it; an inline one prints
// its nodes at the current level.
type section struct {
	header string
	nodes  []node
}

func headed(header string, nodes []node) section { return section{header: header, nodes: nodes} }
func inline(nodes []node) section                { return section{nodes: nodes} }

// renderSections prints sections in order at level anc. Empty sections
// print nothing and do not count when deciding what is last.
func renderSections(p *printer, anc ancestors, sections ...section) error {
	var nonEmpty []section
	for _, s := range sections {
		if len(s.nodes) > 0 {
			nonEmpty = append(nonEmpty, s)
		}
	}
	for si, s := range nonEmpty {
		lastSection := si == len(nonEmpty)-1
		level := anc
		if s.header != "" {
			p.line(anc, lastSection, s.header)
			level = anc.push(lastSection)
		}
		for i, n := range s.nodes {
			last := i == len(s.nodes)-1
			if s.header == "" {
				last = last && lastSection
			}
			if err := n(p, level, last); err != nil {
				return err
			}
		}
	}
	return nil
}

// labeled renders "name (detail)", or just name when detail is empty.
func labeled(name, detail string) string {
	if detail == "" {
		return name
	}
	return name + " (" + detail + ")"
}
