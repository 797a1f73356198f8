package navigator

import (
	"errors"
	"strings"

	"github.com/HendryAvila/tianav/internal/project"
)

// topScope is the scope a device path starts in: the project's own devices
// and groups, plus the members of the ungrouped devices group. The ungrouped
// group can also be named explicitly.
func topScope(p project.Project) (scope, error) {
	sc, err := projectScope(p)
	if err != nil {
		return scope{}, err
	}
	ungrouped, err := p.UngroupedDevicesGroup()
	if err != nil || ungrouped == nil {
		return sc, err
	}
	inner, err := groupScope(ungrouped)
	if err != nil {
		return scope{}, err
	}
	// Fresh slices: the adapter's own collections must not be appended to.
	devices := make([]project.Device, 0, len(sc.devices)+len(inner.devices))
	devices = append(append(devices, sc.devices...), inner.devices...)
	groups := make([]project.DeviceGroup, 0, len(sc.groups)+len(inner.groups)+1)
	groups = append(append(append(groups, sc.groups...), inner.groups...), ungrouped)
	return scope{devices: devices, groups: groups}, nil
}

// ResolveDevice returns the device addressed by path. Leading segments name
// device groups, matched ignoring case; the last one names the device.
func (n *Navigator) ResolveDevice(path string) (project.Device, error) {
	d, err := n.resolveDevice(splitPath(path), path)
	return d, n.observe("device", project.Wrap("ResolveDevice", err, "path", path))
}

func (n *Navigator) resolveDevice(segs []string, path string) (project.Device, error) {
	p, err := n.project()
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, project.NotFound("device", path)
	}
	sc, err := topScope(p)
	if err != nil {
		return nil, err
	}
	for _, seg := range segs[:len(segs)-1] {
		g := findGroup(sc.groups, seg)
		if g == nil {
			return nil, project.NotFound("device group", path)
		}
		if sc, err = groupScope(g); err != nil {
			return nil, err
		}
	}
	if d := findByName(sc.devices, segs[len(segs)-1]); d != nil {
		return d, nil
	}
	return nil, project.NotFound("device", path)
}

// ResolveDeviceItem returns the device item addressed by path, either
// "<device path>/<item>[/<nested item>...]" or a bare item chain whose first
// segment is an item of any device in the project.
func (n *Navigator) ResolveDeviceItem(path string) (project.DeviceItem, error) {
	it, err := n.resolveDeviceItem(path)
	return it, n.observe("device_item", project.Wrap("ResolveDeviceItem", err, "path", path))
}

func (n *Navigator) resolveDeviceItem(path string) (project.DeviceItem, error) {
	p, err := n.project()
	if err != nil {
		return nil, err
	}
	segs := splitPath(path)
	if len(segs) == 0 {
		return nil, project.NotFound("device item", path)
	}

	for k := 1; k < len(segs); k++ {
		d, err := n.resolveDevice(segs[:k], path)
		if errors.Is(err, project.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items, err := d.DeviceItems()
		if err != nil {
			return nil, err
		}
		it, err := itemChain(items, segs[k:])
		if err != nil || it != nil {
			return it, err
		}
	}

	devices, err := allDevices(p)
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		items, err := d.DeviceItems()
		if err != nil {
			return nil, err
		}
		it, err := itemChain(items, segs)
		if err != nil || it != nil {
			return it, err
		}
	}
	return nil, project.NotFound("device item", path)
}

// itemChain follows segs through nested device items. Every item with a
// matching name is tried before giving up.
func itemChain(items []project.DeviceItem, segs []string) (project.DeviceItem, error) {
	for _, it := range items {
		if it.Name() != segs[0] {
			continue
		}
		if len(segs) == 1 {
			return it, nil
		}
		nested, err := it.DeviceItems()
		if err != nil {
			return nil, err
		}
		found, err := itemChain(nested, segs[1:])
		if err != nil || found != nil {
			return found, err
		}
	}
	return nil, nil
}

// allDevices flattens every device of the project in collection order.
func allDevices(p project.Project) ([]project.Device, error) {
	w := &deviceWalker{filter: newLeafFilter("")}
	if _, err := w.walkProject(p); err != nil {
		return nil, err
	}
	out := make([]project.Device, len(w.out))
	for i, e := range w.out {
		out[i] = e.Device
	}
	return out, nil
}

// findGroup returns the first group named name, ignoring case, or nil.
func findGroup(groups []project.DeviceGroup, name string) project.DeviceGroup {
	for _, g := range groups {
		if strings.EqualFold(g.Name(), name) {
			return g
		}
	}
	return nil
}

func findByName[N project.Node](nodes []N, name string) N {
	for _, n := range nodes {
		if n.Name() == name {
			return n
		}
	}
	var zero N
	return zero
}
