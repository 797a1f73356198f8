// Package project defines the read-only view of an engineering project that
// the navigator and tree renderer walk.
//
// The engineering tool owns every object behind these interfaces. Nothing in
// tianav creates, mutates, or caches them beyond a single call (see the
// navigator's software cache for the one exception). Implementations live
// elsewhere: the snapshot package materializes them from exported YAML.
package project

// Kind identifies the concrete role of a Node in the project tree.
type Kind int

const (
	KindDevice Kind = iota
	KindDeviceGroup
	KindDeviceItem
	KindSoftwareContainer
	KindPlcSoftware
	KindBlockGroup
	KindTypeGroup
	KindBlock
	KindType
	// KindSystemGroup marks the root block or type group of a PLC program.
	KindSystemGroup
)

var kindNames = [...]string{
	KindDevice:            "Device",
	KindDeviceGroup:       "DeviceGroup",
	KindDeviceItem:        "DeviceItem",
	KindSoftwareContainer: "SoftwareContainer",
	KindPlcSoftware:       "PlcSoftware",
	KindBlockGroup:        "BlockGroup",
	KindTypeGroup:         "TypeGroup",
	KindBlock:             "Block",
	KindType:              "Type",
	KindSystemGroup:       "SystemGroup",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Node is the common surface of every handle in the tree.
// Parent returns nil at a root. Handles are comparable, and two handles for
// the same node compare equal.
type Node interface {
	Name() string
	Kind() Kind
	Parent() Node
}

// Project is the entry point of a project view.
type Project interface {
	Name() string
	Devices() ([]Device, error)
	DeviceGroups() ([]DeviceGroup, error)
	// UngroupedDevicesGroup returns nil when the project has none.
	UngroupedDevicesGroup() (DeviceGroup, error)
}

// Device is a top-level hardware or virtual controller.
type Device interface {
	Node
	TypeName() string
	DeviceItems() ([]DeviceItem, error)
}

// DeviceGroup holds direct member devices and nested sub-groups.
// The two collections are separate and both may be non-empty.
type DeviceGroup interface {
	Node
	Devices() ([]Device, error)
	Groups() ([]DeviceGroup, error)
}

// DeviceItem is a rack slot, software carrier, or hardware module.
type DeviceItem interface {
	Node
	TypeName() string
	DeviceItems() ([]DeviceItem, error)
	HardwareItems() ([]HardwareItem, error)
	// SoftwareContainer returns nil when the item carries no software.
	SoftwareContainer() (SoftwareContainer, error)
}

// HardwareItem is a non-recursive hardware component below a device item.
type HardwareItem interface {
	Node
	TypeName() string
}

// SoftwareContainer is the capability through which a device item exposes
// its installed software.
type SoftwareContainer interface {
	// Software returns nil when the container is empty.
	Software() (Software, error)
}

// SoftwareVariant tags the concrete kind of a Software value.
type SoftwareVariant string

const (
	VariantPlcSoftware SoftwareVariant = "PlcSoftware"
	VariantHmiTarget   SoftwareVariant = "HmiTarget"
	VariantHmiSoftware SoftwareVariant = "HmiSoftware"
)

// Valid reports whether v is one of the known variants.
func (v SoftwareVariant) Valid() bool {
	switch v {
	case VariantPlcSoftware, VariantHmiTarget, VariantHmiSoftware:
		return true
	}
	return false
}

// Software is installed software of any variant. Only values that also
// implement PlcSoftware take part in block and type navigation.
type Software interface {
	Name() string
	Variant() SoftwareVariant
}

// PlcSoftware is the program model of a PLC, root of its block and type
// groups. Either group may be nil.
type PlcSoftware interface {
	Software
	BlockGroup() (BlockGroup, error)
	TypeGroup() (TypeGroup, error)
}

// BlockGroup is a folder of blocks. The root group of a program reports
// KindSystemGroup.
type BlockGroup interface {
	Node
	Blocks() ([]Block, error)
	Groups() ([]BlockGroup, error)
}

// TypeGroup is a folder of user types. The root group of a program reports
// KindSystemGroup.
type TypeGroup interface {
	Node
	Types() ([]Type, error)
	Groups() ([]TypeGroup, error)
}

// Block is a code or data block.
type Block interface {
	Node
	BlockKind() BlockKind
	Number() int
	Language() string
}

// Type is a user-defined PLC type.
type Type interface {
	Node
	TypeKind() TypeKind
}

// AsPlcSoftware returns sw as PlcSoftware when it is the PLC variant.
func AsPlcSoftware(sw Software) (PlcSoftware, bool) {
	if sw == nil || sw.Variant() != VariantPlcSoftware {
		return nil, false
	}
	plc, ok := sw.(PlcSoftware)
	return plc, ok
}
