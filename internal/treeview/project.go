package treeview

import (
	"fmt"

	"github.com/HendryAvila/tianav/internal/project"
)

// DefaultUngroupedName heads the ungrouped devices section when the
// adapter leaves the group unnamed.
const DefaultUngroupedName = "UngroupedDevicesGroup"

type options struct {
	ungroupedName string
}

// Option configures RenderProjectTree.
type Option func(*options)

// WithUngroupedName sets the fallback header of the ungrouped devices
// section.
func WithUngroupedName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.ungroupedName = name
		}
	}
}

// RenderProjectTree renders p: its devices, its device groups and the
// ungrouped devices group, each as a headed section below the project name.
func RenderProjectTree(p project.Project, opts ...Option) (string, error) {
	if p == nil {
		return "", project.ErrAdapterUnavailable
	}
	o := options{ungroupedName: DefaultUngroupedName}
	for _, opt := range opts {
		opt(&o)
	}
	out, err := renderProject(p, o)
	return out, project.Wrap("RenderProjectTree", err, "project", p.Name())
}

func renderProject(p project.Project, o options) (string, error) {
	devices, err := p.Devices()
	if err != nil {
		return "", err
	}
	groups, err := p.DeviceGroups()
	if err != nil {
		return "", err
	}
	ungrouped, err := p.UngroupedDevicesGroup()
	if err != nil {
		return "", err
	}

	var ungroupedNodes []node
	ungroupedName := o.ungroupedName
	if ungrouped != nil {
		if ungrouped.Name() != "" {
			ungroupedName = ungrouped.Name()
		}
		if ungroupedNodes, err = memberNodes(ungrouped); err != nil {
			return "", err
		}
	}

	var pr printer
	pr.root(p.Name())
	err = renderSections(&pr, nil,
		headed("Devices", deviceNodes(devices)),
		headed("Groups", groupNodes(groups)),
		headed(ungroupedName, ungroupedNodes),
	)
	if err != nil {
		return "", err
	}
	return pr.String(), nil
}

func deviceNodes(devices []project.Device) []node {
	nodes := make([]node, len(devices))
	for i, d := range devices {
		nodes[i] = deviceNode(d)
	}
	return nodes
}

func groupNodes(groups []project.DeviceGroup) []node {
	nodes := make([]node, len(groups))
	for i, g := range groups {
		nodes[i] = groupNode(g)
	}
	return nodes
}

// memberNodes lists a group's direct devices followed by its sub-groups.
func memberNodes(g project.DeviceGroup) ([]node, error) {
	devices, err := g.Devices()
	if err != nil {
		return nil, err
	}
	groups, err := g.Groups()
	if err != nil {
		return nil, err
	}
	return append(deviceNodes(devices), groupNodes(groups)...), nil
}

func deviceNode(d project.Device) node {
	return func(p *printer, anc ancestors, last bool) error {
		p.line(anc, last, labeled(d.Name(), d.TypeName()))
		items, err := d.DeviceItems()
		if err != nil {
			return err
		}
		return renderSections(p, anc.push(last), inline(itemNodes(items)))
	}
}

func groupNode(g project.DeviceGroup) node {
	return func(p *printer, anc ancestors, last bool) error {
		p.line(anc, last, g.Name())
		devices, err := g.Devices()
		if err != nil {
			return err
		}
		groups, err := g.Groups()
		if err != nil {
			return err
		}
		return renderSections(p, anc.push(last),
			inline(deviceNodes(devices)),
			inline(groupNodes(groups)),
		)
	}
}

func itemNodes(items []project.DeviceItem) []node {
	nodes := make([]node, len(items))
	for i, it := range items {
		nodes[i] = itemNode(it)
	}
	return nodes
}

func itemNode(it project.DeviceItem) node {
	return func(p *printer, anc ancestors, last bool) error {
		p.line(anc, last, labeled(it.Name(), it.TypeName()))

		software, err := softwareEntry(it)
		if err != nil {
			return err
		}
		hardware, err := it.HardwareItems()
		if err != nil {
			return err
		}
		nested, err := it.DeviceItems()
		if err != nil {
			return err
		}
		return renderSections(p, anc.push(last),
			inline(software),
			headed("Items", hardwareNodes(hardware)),
			inline(itemNodes(nested)),
		)
	}
}

// softwareEntry is the pseudo-entry for an item's software container, or
// nothing when the item has none.
func softwareEntry(it project.DeviceItem) ([]node, error) {
	c, err := it.SoftwareContainer()
	if err != nil || c == nil {
		return nil, err
	}
	sw, err := c.Software()
	if err != nil {
		return nil, err
	}
	text := "Software: none"
	if sw != nil {
		text = fmt.Sprintf("Software: %s [%s]", sw.Name(), sw.Variant())
	}
	return []node{leaf(text)}, nil
}

func hardwareNodes(items []project.HardwareItem) []node {
	nodes := make([]node, len(items))
	for i, h := range items {
		nodes[i] = leaf(labeled(h.Name(), h.TypeName()))
	}
	return nodes
}

func leaf(text string) node {
	return func(p *printer, anc ancestors, last bool) error {
		p.line(anc, last, text)
		return nil
	}
}
