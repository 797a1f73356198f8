package navigator

import (
	"github.com/HendryAvila/tianav/internal/project"
)

// Entry is one collected leaf with its caller-facing paths.
type Entry[L project.Node] struct {
	Leaf L
	// GroupPath is BuildGroupPath of the leaf's group, "" at the root.
	GroupPath string
	// Path is GroupPath joined with the leaf name.
	Path string
}

type (
	BlockEntry = Entry[project.Block]
	TypeEntry  = Entry[project.Type]
)

// DeviceEntry is one collected device. GroupPath names its device groups
// from the top; the ungrouped devices group is not part of it.
type DeviceEntry struct {
	Device    project.Device
	GroupPath string
	Path      string
}

// leafWalker collects the leaves of one group family in pre-order.
type leafWalker[G groupNode[G], L project.Node] struct {
	leaves func(G) ([]L, error)
	filter *leafFilter
	out    []Entry[L]
}

// walk visits g's direct leaves, then each sub-group in order. It reports
// whether anything below g matched. Every sub-group is walked whatever its
// siblings returned.
func (w *leafWalker[G, L]) walk(g G, path string) (bool, error) {
	leaves, err := w.leaves(g)
	if err != nil {
		return false, err
	}
	matched := false
	for _, l := range leaves {
		if !w.filter.match(l.Name()) {
			continue
		}
		w.out = append(w.out, Entry[L]{Leaf: l, GroupPath: path, Path: joinPath(path, l.Name())})
		matched = true
	}

	subs, err := g.Groups()
	if err != nil {
		return matched, err
	}
	for _, sub := range subs {
		ok, err := w.walk(sub, joinPath(path, sub.Name()))
		if err != nil {
			return matched, err
		}
		matched = matched || ok
	}
	return matched, nil
}

func blocksOf(g project.BlockGroup) ([]project.Block, error) { return g.Blocks() }
func typesOf(g project.TypeGroup) ([]project.Type, error)    { return g.Types() }

// CollectBlocks returns every block under the PLC software at softwarePath
// whose name matches pattern. An empty pattern matches all blocks; one that
// does not compile matches none.
func (n *Navigator) CollectBlocks(softwarePath, pattern string) ([]BlockEntry, error) {
	out, err := n.collectBlocks(softwarePath, pattern)
	return out, n.observe("collect_blocks", project.Wrap("CollectBlocks", err,
		"softwarePath", softwarePath, "pattern", pattern))
}

func (n *Navigator) collectBlocks(softwarePath, pattern string) ([]BlockEntry, error) {
	sw, err := n.software(softwarePath)
	if err != nil {
		return nil, err
	}
	root, err := sw.BlockGroup()
	if err != nil || root == nil {
		return nil, err
	}
	w := &leafWalker[project.BlockGroup, project.Block]{leaves: blocksOf, filter: n.filter(pattern)}
	matched, err := w.walk(root, "")
	if err != nil {
		return nil, err
	}
	n.log.Debugw("blocks collected", "software", softwarePath, "pattern", pattern, "count", len(w.out), "matched", matched)
	return w.out, nil
}

// CollectTypes is CollectBlocks for user types.
func (n *Navigator) CollectTypes(softwarePath, pattern string) ([]TypeEntry, error) {
	out, err := n.collectTypes(softwarePath, pattern)
	return out, n.observe("collect_types", project.Wrap("CollectTypes", err,
		"softwarePath", softwarePath, "pattern", pattern))
}

func (n *Navigator) collectTypes(softwarePath, pattern string) ([]TypeEntry, error) {
	sw, err := n.software(softwarePath)
	if err != nil {
		return nil, err
	}
	root, err := sw.TypeGroup()
	if err != nil || root == nil {
		return nil, err
	}
	w := &leafWalker[project.TypeGroup, project.Type]{leaves: typesOf, filter: n.filter(pattern)}
	matched, err := w.walk(root, "")
	if err != nil {
		return nil, err
	}
	n.log.Debugw("types collected", "software", softwarePath, "pattern", pattern, "count", len(w.out), "matched", matched)
	return w.out, nil
}

func (n *Navigator) filter(pattern string) *leafFilter {
	f := newLeafFilter(pattern)
	if f.err != nil {
		n.log.Debugw("pattern does not compile, skipping every leaf", "pattern", pattern, "error", f.err)
	}
	return f
}

// deviceWalker collects devices in project order.
type deviceWalker struct {
	filter *leafFilter
	out    []DeviceEntry
}

func (w *deviceWalker) devices(devices []project.Device, path string) bool {
	matched := false
	for _, d := range devices {
		if !w.filter.match(d.Name()) {
			continue
		}
		w.out = append(w.out, DeviceEntry{Device: d, GroupPath: path, Path: joinPath(path, d.Name())})
		matched = true
	}
	return matched
}

func (w *deviceWalker) walkGroup(g project.DeviceGroup, path string) (bool, error) {
	devices, err := g.Devices()
	if err != nil {
		return false, err
	}
	matched := w.devices(devices, path)
	subs, err := g.Groups()
	if err != nil {
		return matched, err
	}
	for _, sub := range subs {
		ok, err := w.walkGroup(sub, joinPath(path, sub.Name()))
		if err != nil {
			return matched, err
		}
		matched = matched || ok
	}
	return matched, nil
}

// walkProject visits top-level devices, then each device group, then the
// ungrouped devices group.
func (w *deviceWalker) walkProject(p project.Project) (bool, error) {
	devices, err := p.Devices()
	if err != nil {
		return false, err
	}
	matched := w.devices(devices, "")

	groups, err := p.DeviceGroups()
	if err != nil {
		return matched, err
	}
	for _, g := range groups {
		ok, err := w.walkGroup(g, g.Name())
		if err != nil {
			return matched, err
		}
		matched = matched || ok
	}

	ungrouped, err := p.UngroupedDevicesGroup()
	if err != nil || ungrouped == nil {
		return matched, err
	}
	ok, err := w.walkGroup(ungrouped, "")
	return matched || ok, err
}

// CollectDevices returns every device in the project whose name matches
// pattern, with the same pattern rules as CollectBlocks.
func (n *Navigator) CollectDevices(pattern string) ([]DeviceEntry, error) {
	out, err := n.collectDevices(pattern)
	return out, n.observe("collect_devices", project.Wrap("CollectDevices", err, "pattern", pattern))
}

func (n *Navigator) collectDevices(pattern string) ([]DeviceEntry, error) {
	p, err := n.project()
	if err != nil {
		return nil, err
	}
	w := &deviceWalker{filter: n.filter(pattern)}
	matched, err := w.walkProject(p)
	if err != nil {
		return nil, err
	}
	n.log.Debugw("devices collected", "pattern", pattern, "count", len(w.out), "matched", matched)
	return w.out, nil
}
