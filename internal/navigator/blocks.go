package navigator

import (
	"strings"

	"github.com/HendryAvila/tianav/internal/project"
)

// groupNode is a block or type group: a node with sub-groups of its own
// family.
type groupNode[G any] interface {
	project.Node
	Groups() ([]G, error)
}

// descend walks segs down from root, matching sub-group names without
// regard to case. Leaves are never consulted.
func descend[G groupNode[G]](root G, segs []string, what, path string) (G, error) {
	cur := root
	for _, seg := range segs {
		subs, err := cur.Groups()
		if err != nil {
			return cur, err
		}
		var next G
		found := false
		for _, sub := range subs {
			if strings.EqualFold(sub.Name(), seg) {
				next, found = sub, true
				break
			}
		}
		if !found {
			return next, project.NotFound(what, path)
		}
		cur = next
	}
	return cur, nil
}

// firstLeaf returns the first leaf matching nameOrPattern.
func firstLeaf[L project.Node](leaves []L, nameOrPattern string) (L, bool, error) {
	var zero L
	match, err := leafMatcher(nameOrPattern)
	if err != nil {
		return zero, false, err
	}
	for _, l := range leaves {
		if match(l.Name()) {
			return l, true, nil
		}
	}
	return zero, false, nil
}

// ResolveBlock returns the block at blockPath inside the PLC software at
// softwarePath. The last segment of blockPath may be a pattern.
func (n *Navigator) ResolveBlock(softwarePath, blockPath string) (project.Block, error) {
	b, err := n.resolveBlock(softwarePath, blockPath)
	return b, n.observe("block", project.Wrap("ResolveBlock", err,
		"softwarePath", softwarePath, "blockPath", blockPath))
}

func (n *Navigator) resolveBlock(softwarePath, blockPath string) (project.Block, error) {
	sw, err := n.software(softwarePath)
	if err != nil {
		return nil, err
	}
	root, err := sw.BlockGroup()
	if err != nil {
		return nil, err
	}
	groupSegs, leaf := splitLeaf(blockPath)
	if root == nil || leaf == "" {
		return nil, project.NotFound("block", blockPath)
	}
	g, err := descend(root, groupSegs, "block group", blockPath)
	if err != nil {
		return nil, err
	}
	blocks, err := g.Blocks()
	if err != nil {
		return nil, err
	}
	b, ok, err := firstLeaf(blocks, leaf)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, project.NotFound("block", blockPath)
	}
	return b, nil
}

// ResolveType returns the user type at typePath inside the PLC software at
// softwarePath.
func (n *Navigator) ResolveType(softwarePath, typePath string) (project.Type, error) {
	t, err := n.resolveType(softwarePath, typePath)
	return t, n.observe("type", project.Wrap("ResolveType", err,
		"softwarePath", softwarePath, "typePath", typePath))
}

func (n *Navigator) resolveType(softwarePath, typePath string) (project.Type, error) {
	sw, err := n.software(softwarePath)
	if err != nil {
		return nil, err
	}
	root, err := sw.TypeGroup()
	if err != nil {
		return nil, err
	}
	groupSegs, leaf := splitLeaf(typePath)
	if root == nil || leaf == "" {
		return nil, project.NotFound("type", typePath)
	}
	g, err := descend(root, groupSegs, "type group", typePath)
	if err != nil {
		return nil, err
	}
	types, err := g.Types()
	if err != nil {
		return nil, err
	}
	t, ok, err := firstLeaf(types, leaf)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, project.NotFound("type", typePath)
	}
	return t, nil
}
