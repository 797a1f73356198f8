package snapshot

import (
	"fmt"

	"github.com/HendryAvila/tianav/internal/project"
)

// Project is an immutable in-memory project view built from a Document.
// It is safe for concurrent readers.
type Project struct {
	name      string
	devices   []project.Device
	groups    []project.DeviceGroup
	ungrouped *deviceGroup
}

// Build materializes doc. Unset root group names get their defaults.
func Build(doc *Document) *Project {
	p := &Project{name: doc.Name}
	for i := range doc.Devices {
		p.devices = append(p.devices, newDevice(&doc.Devices[i], nil))
	}
	for i := range doc.Groups {
		p.groups = append(p.groups, newDeviceGroup(&doc.Groups[i], nil, doc.Groups[i].Name))
	}
	if doc.Ungrouped != nil {
		name := doc.Ungrouped.Name
		if name == "" {
			name = DefaultUngroupedName
		}
		p.ungrouped = newDeviceGroup(doc.Ungrouped, nil, name)
	}
	return p
}

// Open loads, validates, and builds the snapshot file at path.
func Open(path string) (*Project, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(doc), nil
}

func (p *Project) Name() string { return p.name }

func (p *Project) Devices() ([]project.Device, error) { return p.devices, nil }

func (p *Project) DeviceGroups() ([]project.DeviceGroup, error) { return p.groups, nil }

func (p *Project) UngroupedDevicesGroup() (project.DeviceGroup, error) {
	if p.ungrouped == nil {
		return nil, nil
	}
	return p.ungrouped, nil
}

// String summarizes the project for logs.
func (p *Project) String() string {
	return fmt.Sprintf("%s (%d devices, %d groups)", p.name, len(p.devices), len(p.groups))
}

// ─── Devices ─────────────────────────────────────────────────────────────────

type device struct {
	name     string
	typeName string
	parent   project.Node
	items    []project.DeviceItem
}

func newDevice(doc *DeviceDoc, parent project.Node) *device {
	d := &device{name: doc.Name, typeName: doc.Type, parent: parent}
	for i := range doc.Items {
		d.items = append(d.items, newDeviceItem(&doc.Items[i], d))
	}
	return d
}

func (d *device) Name() string                               { return d.name }
func (d *device) Kind() project.Kind                         { return project.KindDevice }
func (d *device) Parent() project.Node                       { return d.parent }
func (d *device) TypeName() string                           { return d.typeName }
func (d *device) DeviceItems() ([]project.DeviceItem, error) { return d.items, nil }

type deviceGroup struct {
	name    string
	parent  project.Node
	devices []project.Device
	groups  []project.DeviceGroup
}

func newDeviceGroup(doc *GroupDoc, parent project.Node, name string) *deviceGroup {
	g := &deviceGroup{name: name, parent: parent}
	for i := range doc.Devices {
		g.devices = append(g.devices, newDevice(&doc.Devices[i], g))
	}
	for i := range doc.Groups {
		g.groups = append(g.groups, newDeviceGroup(&doc.Groups[i], g, doc.Groups[i].Name))
	}
	return g
}

func (g *deviceGroup) Name() string                           { return g.name }
func (g *deviceGroup) Kind() project.Kind                     { return project.KindDeviceGroup }
func (g *deviceGroup) Parent() project.Node                   { return g.parent }
func (g *deviceGroup) Devices() ([]project.Device, error)     { return g.devices, nil }
func (g *deviceGroup) Groups() ([]project.DeviceGroup, error) { return g.groups, nil }

type deviceItem struct {
	name      string
	typeName  string
	parent    project.Node
	items     []project.DeviceItem
	hardware  []project.HardwareItem
	container *container
}

func newDeviceItem(doc *ItemDoc, parent project.Node) *deviceItem {
	it := &deviceItem{name: doc.Name, typeName: doc.Type, parent: parent}
	for i := range doc.Hardware {
		it.hardware = append(it.hardware, &hardwareItem{
			name:     doc.Hardware[i].Name,
			typeName: doc.Hardware[i].Type,
			parent:   it,
		})
	}
	for i := range doc.Items {
		it.items = append(it.items, newDeviceItem(&doc.Items[i], it))
	}
	if doc.Software != nil || doc.Container {
		it.container = &container{}
		if doc.Software != nil {
			it.container.software = newSoftware(doc.Software, it)
		}
	}
	return it
}

func (it *deviceItem) Name() string                                   { return it.name }
func (it *deviceItem) Kind() project.Kind                             { return project.KindDeviceItem }
func (it *deviceItem) Parent() project.Node                           { return it.parent }
func (it *deviceItem) TypeName() string                               { return it.typeName }
func (it *deviceItem) DeviceItems() ([]project.DeviceItem, error)     { return it.items, nil }
func (it *deviceItem) HardwareItems() ([]project.HardwareItem, error) { return it.hardware, nil }

func (it *deviceItem) SoftwareContainer() (project.SoftwareContainer, error) {
	if it.container == nil {
		return nil, nil
	}
	return it.container, nil
}

type hardwareItem struct {
	name     string
	typeName string
	parent   project.Node
}

func (h *hardwareItem) Name() string         { return h.name }
func (h *hardwareItem) Kind() project.Kind   { return project.KindDeviceItem }
func (h *hardwareItem) Parent() project.Node { return h.parent }
func (h *hardwareItem) TypeName() string     { return h.typeName }

// ─── Software ────────────────────────────────────────────────────────────────

type container struct {
	software project.Software
}

func (c *container) Software() (project.Software, error) { return c.software, nil }

// newSoftware returns a *plcSoftware for the PLC variant and an
// *hmiSoftware otherwise, so only PLC values satisfy project.PlcSoftware.
func newSoftware(doc *SoftwareDoc, item *deviceItem) project.Software {
	if doc.Variant != project.VariantPlcSoftware {
		return &hmiSoftware{name: doc.Name, variant: doc.Variant}
	}
	sw := &plcSoftware{name: doc.Name, parent: item}

	blocks := doc.Blocks
	if blocks == nil {
		blocks = &BlockGroupDoc{}
	}
	sw.blocks = newBlockGroup(blocks, sw, true)

	types := doc.Types
	if types == nil {
		types = &TypeGroupDoc{}
	}
	sw.types = newTypeGroup(types, sw, true)
	return sw
}

type hmiSoftware struct {
	name    string
	variant project.SoftwareVariant
}

func (h *hmiSoftware) Name() string                     { return h.name }
func (h *hmiSoftware) Variant() project.SoftwareVariant { return h.variant }

// plcSoftware is also a Node so the root groups have a parent that is not
// a group.
type plcSoftware struct {
	name   string
	parent project.Node
	blocks *blockGroup
	types  *typeGroup
}

func (s *plcSoftware) Name() string                     { return s.name }
func (s *plcSoftware) Kind() project.Kind               { return project.KindPlcSoftware }
func (s *plcSoftware) Parent() project.Node             { return s.parent }
func (s *plcSoftware) Variant() project.SoftwareVariant { return project.VariantPlcSoftware }

func (s *plcSoftware) BlockGroup() (project.BlockGroup, error) { return s.blocks, nil }
func (s *plcSoftware) TypeGroup() (project.TypeGroup, error)   { return s.types, nil }

// ─── Blocks & types ──────────────────────────────────────────────────────────

type blockGroup struct {
	name   string
	root   bool
	parent project.Node
	blocks []project.Block
	groups []project.BlockGroup
}

func newBlockGroup(doc *BlockGroupDoc, parent project.Node, root bool) *blockGroup {
	g := &blockGroup{name: doc.Name, root: root, parent: parent}
	if root && g.name == "" {
		g.name = DefaultBlockRootName
	}
	for i := range doc.Blocks {
		b := doc.Blocks[i]
		g.blocks = append(g.blocks, &block{
			name:     b.Name,
			kind:     b.Kind,
			number:   b.Number,
			language: b.Language,
			parent:   g,
		})
	}
	for i := range doc.Groups {
		g.groups = append(g.groups, newBlockGroup(&doc.Groups[i], g, false))
	}
	return g
}

func (g *blockGroup) Name() string { return g.name }

func (g *blockGroup) Kind() project.Kind {
	if g.root {
		return project.KindSystemGroup
	}
	return project.KindBlockGroup
}

func (g *blockGroup) Parent() project.Node                  { return g.parent }
func (g *blockGroup) Blocks() ([]project.Block, error)      { return g.blocks, nil }
func (g *blockGroup) Groups() ([]project.BlockGroup, error) { return g.groups, nil }

type block struct {
	name     string
	kind     project.BlockKind
	number   int
	language string
	parent   project.Node
}

func (b *block) Name() string                 { return b.name }
func (b *block) Kind() project.Kind           { return project.KindBlock }
func (b *block) Parent() project.Node         { return b.parent }
func (b *block) BlockKind() project.BlockKind { return b.kind }
func (b *block) Number() int                  { return b.number }
func (b *block) Language() string             { return b.language }

type typeGroup struct {
	name   string
	root   bool
	parent project.Node
	types  []project.Type
	groups []project.TypeGroup
}

func newTypeGroup(doc *TypeGroupDoc, parent project.Node, root bool) *typeGroup {
	g := &typeGroup{name: doc.Name, root: root, parent: parent}
	if root && g.name == "" {
		g.name = DefaultTypeRootName
	}
	for i := range doc.Types {
		kind := doc.Types[i].Kind
		if kind == "" {
			kind = project.TypeStruct
		}
		g.types = append(g.types, &userType{name: doc.Types[i].Name, kind: kind, parent: g})
	}
	for i := range doc.Groups {
		g.groups = append(g.groups, newTypeGroup(&doc.Groups[i], g, false))
	}
	return g
}

func (g *typeGroup) Name() string { return g.name }

func (g *typeGroup) Kind() project.Kind {
	if g.root {
		return project.KindSystemGroup
	}
	return project.KindTypeGroup
}

func (g *typeGroup) Parent() project.Node                 { return g.parent }
func (g *typeGroup) Types() ([]project.Type, error)       { return g.types, nil }
func (g *typeGroup) Groups() ([]project.TypeGroup, error) { return g.groups, nil }

type userType struct {
	name   string
	kind   project.TypeKind
	parent project.Node
}

func (u *userType) Name() string               { return u.name }
func (u *userType) Kind() project.Kind         { return project.KindType }
func (u *userType) Parent() project.Node       { return u.parent }
func (u *userType) TypeKind() project.TypeKind { return u.kind }
