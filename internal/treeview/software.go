package treeview

import "github.com/HendryAvila/tianav/internal/project"

// ContainerResolver locates software containers by path.
// *navigator.Navigator implements it.
type ContainerResolver interface {
	ResolveSoftwareContainer(path string) (project.SoftwareContainer, error)
}

const noPLCSoftware = "no PLC software found"

// RenderSoftwareTree renders the block and type groups of the PLC software
// at softwarePath. A container without PLC software renders a single
// "no PLC software found" line; an unknown path is NotFound.
func RenderSoftwareTree(r ContainerResolver, softwarePath string) (string, error) {
	out, err := renderSoftware(r, softwarePath)
	return out, project.Wrap("RenderSoftwareTree", err, "softwarePath", softwarePath)
}

func renderSoftware(r ContainerResolver, softwarePath string) (string, error) {
	c, err := r.ResolveSoftwareContainer(softwarePath)
	if err != nil {
		return "", err
	}
	sw, err := c.Software()
	if err != nil {
		return "", err
	}

	var pr printer
	pr.root(softwarePath)

	plc, ok := project.AsPlcSoftware(sw)
	if !ok {
		pr.line(nil, true, noPLCSoftware)
		return pr.String(), nil
	}

	blocks, err := plc.BlockGroup()
	if err != nil {
		return "", err
	}
	types, err := plc.TypeGroup()
	if err != nil {
		return "", err
	}

	var blockRoot, typeRoot []node
	if blocks != nil {
		blockRoot = []node{blockGroupNode(blocks)}
	}
	if types != nil {
		typeRoot = []node{typeGroupNode(types)}
	}
	if err := renderSections(&pr, nil, inline(blockRoot), inline(typeRoot)); err != nil {
		return "", err
	}
	return pr.String(), nil
}

// blockGroupNode renders a group line followed by its blocks, then its
// sub-groups.
func blockGroupNode(g project.BlockGroup) node {
	return func(p *printer, anc ancestors, last bool) error {
		p.line(anc, last, g.Name())
		blocks, err := g.Blocks()
		if err != nil {
			return err
		}
		subs, err := g.Groups()
		if err != nil {
			return err
		}
		leaves := make([]node, len(blocks))
		for i, b := range blocks {
			leaves[i] = leaf(blockLabel(b))
		}
		groups := make([]node, len(subs))
		for i, sub := range subs {
			groups[i] = blockGroupNode(sub)
		}
		return renderSections(p, anc.push(last), inline(leaves), inline(groups))
	}
}

func typeGroupNode(g project.TypeGroup) node {
	return func(p *printer, anc ancestors, last bool) error {
		p.line(anc, last, g.Name())
		types, err := g.Types()
		if err != nil {
			return err
		}
		subs, err := g.Groups()
		if err != nil {
			return err
		}
		leaves := make([]node, len(types))
		for i, t := range types {
			leaves[i] = leaf(typeLabel(t))
		}
		groups := make([]node, len(subs))
		for i, sub := range subs {
			groups[i] = typeGroupNode(sub)
		}
		return renderSections(p, anc.push(last), inline(leaves), inline(groups))
	}
}

// blockLabel renders "Main (OB1, LAD)", or "Main (OB1)" without a language.
func blockLabel(b project.Block) string {
	return labeled(b.Name(), project.BlockTag(b))
}

func typeLabel(t project.Type) string {
	return labeled(t.Name(), t.TypeKind().Tag())
}
