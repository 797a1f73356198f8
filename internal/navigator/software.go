package navigator

import (
	"strings"

	"github.com/HendryAvila/tianav/internal/project"
)

// scope is the set of devices and groups a path segment is matched against.
type scope struct {
	devices []project.Device
	groups  []project.DeviceGroup
}

func groupScope(g project.DeviceGroup) (scope, error) {
	devices, err := g.Devices()
	if err != nil {
		return scope{}, err
	}
	groups, err := g.Groups()
	if err != nil {
		return scope{}, err
	}
	return scope{devices: devices, groups: groups}, nil
}

func projectScope(p project.Project) (scope, error) {
	devices, err := p.Devices()
	if err != nil {
		return scope{}, err
	}
	groups, err := p.DeviceGroups()
	if err != nil {
		return scope{}, err
	}
	return scope{devices: devices, groups: groups}, nil
}

// containerResolver walks path segments towards a software container.
type containerResolver struct {
	segs []string
}

// containerStrategy tries one interpretation of segment i in sc. A nil
// container with a nil error means "no match, try the next strategy".
type containerStrategy func(i int, sc scope) (project.SoftwareContainer, error)

// strategies lists the interpretations in order; the first match wins.
func (r *containerResolver) strategies() []containerStrategy {
	return []containerStrategy{r.deviceThenItem, r.directItem, r.viaGroup}
}

func (r *containerResolver) inScope(i int, sc scope) (project.SoftwareContainer, error) {
	for _, try := range r.strategies() {
		c, err := try(i, sc)
		if err != nil || c != nil {
			return c, err
		}
	}
	return nil, nil
}

// deviceThenItem reads segs[i] as a device and segs[i+1] as one of its
// items, as in "PC-System_1/Software PLC_1".
func (r *containerResolver) deviceThenItem(i int, sc scope) (project.SoftwareContainer, error) {
	if i+1 >= len(r.segs) {
		return nil, nil
	}
	for _, d := range sc.devices {
		if d.Name() != r.segs[i] {
			continue
		}
		items, err := d.DeviceItems()
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if it.Name() != r.segs[i+1] {
				continue
			}
			c, err := r.fromItem(it, i+1)
			if err != nil || c != nil {
				return c, err
			}
		}
	}
	return nil, nil
}

// directItem reads segs[i] as an item of any device in scope, as in
// "PLC_1" where the device name is not part of the path.
func (r *containerResolver) directItem(i int, sc scope) (project.SoftwareContainer, error) {
	for _, d := range sc.devices {
		items, err := d.DeviceItems()
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if it.Name() != r.segs[i] {
				continue
			}
			c, err := r.fromItem(it, i)
			if err != nil || c != nil {
				return c, err
			}
		}
	}
	return nil, nil
}

// viaGroup reads segs[i] as a device group and resolves the rest inside it.
// Group names match ignoring case.
func (r *containerResolver) viaGroup(i int, sc scope) (project.SoftwareContainer, error) {
	if i+1 >= len(r.segs) {
		return nil, nil
	}
	for _, g := range sc.groups {
		if !strings.EqualFold(g.Name(), r.segs[i]) {
			continue
		}
		inner, err := groupScope(g)
		if err != nil {
			return nil, err
		}
		c, err := r.inScope(i+1, inner)
		if err != nil || c != nil {
			return c, err
		}
	}
	return nil, nil
}

// fromItem finishes resolution from an item anchored at segment a: the
// last segment must carry a container, earlier ones descend into nested
// items.
func (r *containerResolver) fromItem(it project.DeviceItem, a int) (project.SoftwareContainer, error) {
	if a == len(r.segs)-1 {
		return it.SoftwareContainer()
	}
	nested, err := it.DeviceItems()
	if err != nil {
		return nil, err
	}
	for _, sub := range nested {
		if sub.Name() != r.segs[a+1] {
			continue
		}
		c, err := r.fromItem(sub, a+1)
		if err != nil || c != nil {
			return c, err
		}
	}
	return nil, nil
}

// ResolveSoftwareContainer locates the software container addressed by path.
func (n *Navigator) ResolveSoftwareContainer(path string) (project.SoftwareContainer, error) {
	c, err := n.resolveContainer(path)
	return c, n.observe("software_container", project.Wrap("ResolveSoftwareContainer", err, "path", path))
}

func (n *Navigator) resolveContainer(path string) (project.SoftwareContainer, error) {
	p, err := n.project()
	if err != nil {
		return nil, err
	}
	r := &containerResolver{segs: splitPath(path)}
	if len(r.segs) == 0 {
		return nil, project.NotFound("software container", path)
	}

	top, err := projectScope(p)
	if err != nil {
		return nil, err
	}
	c, err := r.inScope(0, top)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	// The ungrouped devices group has no name in paths, so it is probed
	// without consuming a segment.
	ungrouped, err := p.UngroupedDevicesGroup()
	if err != nil {
		return nil, err
	}
	if ungrouped != nil {
		inner, err := groupScope(ungrouped)
		if err != nil {
			return nil, err
		}
		c, err = r.inScope(0, inner)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}
	return nil, project.NotFound("software container", path)
}

// ResolveSoftware returns the PLC software addressed by path. A container
// that is empty or holds HMI software is NotFound.
func (n *Navigator) ResolveSoftware(path string) (project.PlcSoftware, error) {
	sw, err := n.software(path)
	return sw, n.observe("software", project.Wrap("ResolveSoftware", err, "path", path))
}

// software is ResolveSoftware without the outcome bookkeeping, shared by
// the block and type operations.
func (n *Navigator) software(path string) (project.PlcSoftware, error) {
	sw, gen, ok := n.cached(path)
	if ok {
		return sw, nil
	}
	c, err := n.resolveContainer(path)
	if err != nil {
		return nil, err
	}
	content, err := c.Software()
	if err != nil {
		return nil, err
	}
	plc, ok := project.AsPlcSoftware(content)
	if !ok {
		return nil, project.NotFound("PLC software", path)
	}
	n.remember(gen, path, plc)
	return plc, nil
}
