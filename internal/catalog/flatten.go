package catalog

import (
	"fmt"

	"github.com/HendryAvila/tianav/internal/project"
	"github.com/HendryAvila/tianav/internal/snapshot"
)

// Node kinds as stored in nodes.kind.
const (
	kindDevice     = "device"
	kindGroup      = "group"
	kindUngrouped  = "ungrouped"
	kindItem       = "item"
	kindHardware   = "hardware"
	kindSoftware   = "software"
	kindBlockRoot  = "block_root"
	kindBlockGroup = "block_group"
	kindBlock      = "block"
	kindTypeRoot   = "type_root"
	kindTypeGroup  = "type_group"
	kindType       = "type"
)

// nodeRow is one row of the nodes table. Ids are assigned in depth-first
// pre-order, so ordering by id restores sibling order. parentID is -1 for
// rows directly under the project.
type nodeRow struct {
	id        int64
	parentID  int64
	kind      string
	name      string
	typeName  string
	variant   string
	blockKind string
	number    int
	language  string
	container bool
}

// ─── Flatten ─────────────────────────────────────────────────────────────────

type flattener struct {
	rows []nodeRow
}

func flatten(doc *snapshot.Document) []nodeRow {
	f := &flattener{}
	for i := range doc.Devices {
		f.device(-1, &doc.Devices[i])
	}
	for i := range doc.Groups {
		f.group(-1, kindGroup, &doc.Groups[i])
	}
	if doc.Ungrouped != nil {
		f.group(-1, kindUngrouped, doc.Ungrouped)
	}
	return f.rows
}

func (f *flattener) add(parent int64, r nodeRow) int64 {
	r.id = int64(len(f.rows))
	r.parentID = parent
	f.rows = append(f.rows, r)
	return r.id
}

func (f *flattener) group(parent int64, kind string, g *snapshot.GroupDoc) {
	id := f.add(parent, nodeRow{kind: kind, name: g.Name})
	for i := range g.Devices {
		f.device(id, &g.Devices[i])
	}
	for i := range g.Groups {
		f.group(id, kindGroup, &g.Groups[i])
	}
}

func (f *flattener) device(parent int64, d *snapshot.DeviceDoc) {
	id := f.add(parent, nodeRow{kind: kindDevice, name: d.Name, typeName: d.Type})
	for i := range d.Items {
		f.item(id, &d.Items[i])
	}
}

func (f *flattener) item(parent int64, it *snapshot.ItemDoc) {
	id := f.add(parent, nodeRow{kind: kindItem, name: it.Name, typeName: it.Type, container: it.Container})
	for _, hw := range it.Hardware {
		f.add(id, nodeRow{kind: kindHardware, name: hw.Name, typeName: hw.Type})
	}
	if sw := it.Software; sw != nil {
		swID := f.add(id, nodeRow{kind: kindSoftware, name: sw.Name, variant: string(sw.Variant)})
		if sw.Blocks != nil {
			f.blockGroup(swID, kindBlockRoot, sw.Blocks)
		}
		if sw.Types != nil {
			f.typeGroup(swID, kindTypeRoot, sw.Types)
		}
	}
	for i := range it.Items {
		f.item(id, &it.Items[i])
	}
}

func (f *flattener) blockGroup(parent int64, kind string, g *snapshot.BlockGroupDoc) {
	id := f.add(parent, nodeRow{kind: kind, name: g.Name})
	for _, b := range g.Blocks {
		f.add(id, nodeRow{
			kind:      kindBlock,
			name:      b.Name,
			blockKind: string(b.Kind),
			number:    b.Number,
			language:  b.Language,
		})
	}
	for i := range g.Groups {
		f.blockGroup(id, kindBlockGroup, &g.Groups[i])
	}
}

func (f *flattener) typeGroup(parent int64, kind string, g *snapshot.TypeGroupDoc) {
	id := f.add(parent, nodeRow{kind: kind, name: g.Name})
	for _, ty := range g.Types {
		f.add(id, nodeRow{kind: kindType, name: ty.Name, blockKind: string(ty.Kind)})
	}
	for i := range g.Groups {
		f.typeGroup(id, kindTypeGroup, &g.Groups[i])
	}
}

// ─── Unflatten ───────────────────────────────────────────────────────────────

type unflattener struct {
	children map[int64][]*nodeRow
}

func unflatten(projectName string, rows []nodeRow) (*snapshot.Document, error) {
	u := &unflattener{children: make(map[int64][]*nodeRow)}
	for i := range rows {
		r := &rows[i]
		u.children[r.parentID] = append(u.children[r.parentID], r)
	}

	doc := &snapshot.Document{Name: projectName}
	for _, r := range u.children[-1] {
		switch r.kind {
		case kindDevice:
			d, err := u.device(r)
			if err != nil {
				return nil, err
			}
			doc.Devices = append(doc.Devices, d)
		case kindGroup:
			g, err := u.group(r)
			if err != nil {
				return nil, err
			}
			doc.Groups = append(doc.Groups, g)
		case kindUngrouped:
			g, err := u.group(r)
			if err != nil {
				return nil, err
			}
			doc.Ungrouped = &g
		default:
			return nil, unexpectedKind(r, "project")
		}
	}
	return doc, nil
}

func (u *unflattener) group(r *nodeRow) (snapshot.GroupDoc, error) {
	g := snapshot.GroupDoc{Name: r.name}
	for _, c := range u.children[r.id] {
		switch c.kind {
		case kindDevice:
			d, err := u.device(c)
			if err != nil {
				return g, err
			}
			g.Devices = append(g.Devices, d)
		case kindGroup:
			sub, err := u.group(c)
			if err != nil {
				return g, err
			}
			g.Groups = append(g.Groups, sub)
		default:
			return g, unexpectedKind(c, r.kind)
		}
	}
	return g, nil
}

func (u *unflattener) device(r *nodeRow) (snapshot.DeviceDoc, error) {
	d := snapshot.DeviceDoc{Name: r.name, Type: r.typeName}
	for _, c := range u.children[r.id] {
		if c.kind != kindItem {
			return d, unexpectedKind(c, r.kind)
		}
		it, err := u.item(c)
		if err != nil {
			return d, err
		}
		d.Items = append(d.Items, it)
	}
	return d, nil
}

func (u *unflattener) item(r *nodeRow) (snapshot.ItemDoc, error) {
	it := snapshot.ItemDoc{Name: r.name, Type: r.typeName, Container: r.container}
	for _, c := range u.children[r.id] {
		switch c.kind {
		case kindHardware:
			it.Hardware = append(it.Hardware, snapshot.HardwareDoc{Name: c.name, Type: c.typeName})
		case kindSoftware:
			sw, err := u.software(c)
			if err != nil {
				return it, err
			}
			it.Software = sw
		case kindItem:
			sub, err := u.item(c)
			if err != nil {
				return it, err
			}
			it.Items = append(it.Items, sub)
		default:
			return it, unexpectedKind(c, r.kind)
		}
	}
	return it, nil
}

func (u *unflattener) software(r *nodeRow) (*snapshot.SoftwareDoc, error) {
	sw := &snapshot.SoftwareDoc{Name: r.name, Variant: project.SoftwareVariant(r.variant)}
	for _, c := range u.children[r.id] {
		switch c.kind {
		case kindBlockRoot:
			g, err := u.blockGroup(c)
			if err != nil {
				return nil, err
			}
			sw.Blocks = &g
		case kindTypeRoot:
			g, err := u.typeGroup(c)
			if err != nil {
				return nil, err
			}
			sw.Types = &g
		default:
			return nil, unexpectedKind(c, r.kind)
		}
	}
	return sw, nil
}

func (u *unflattener) blockGroup(r *nodeRow) (snapshot.BlockGroupDoc, error) {
	g := snapshot.BlockGroupDoc{Name: r.name}
	for _, c := range u.children[r.id] {
		switch c.kind {
		case kindBlock:
			g.Blocks = append(g.Blocks, snapshot.BlockDoc{
				Name:     c.name,
				Kind:     project.BlockKind(c.blockKind),
				Number:   c.number,
				Language: c.language,
			})
		case kindBlockGroup:
			sub, err := u.blockGroup(c)
			if err != nil {
				return g, err
			}
			g.Groups = append(g.Groups, sub)
		default:
			return g, unexpectedKind(c, r.kind)
		}
	}
	return g, nil
}

func (u *unflattener) typeGroup(r *nodeRow) (snapshot.TypeGroupDoc, error) {
	g := snapshot.TypeGroupDoc{Name: r.name}
	for _, c := range u.children[r.id] {
		switch c.kind {
		case kindType:
			g.Types = append(g.Types, snapshot.TypeDoc{Name: c.name, Kind: project.TypeKind(c.blockKind)})
		case kindTypeGroup:
			sub, err := u.typeGroup(c)
			if err != nil {
				return g, err
			}
			g.Groups = append(g.Groups, sub)
		default:
			return g, unexpectedKind(c, r.kind)
		}
	}
	return g, nil
}

func unexpectedKind(r *nodeRow, under string) error {
	return fmt.Errorf("node %d: unexpected %s under %s", r.id, r.kind, under)
}
