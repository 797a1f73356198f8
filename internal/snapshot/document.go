// Package snapshot materializes an exported project view from YAML.
//
// A Document is the serialized form; Build turns it into an immutable
// in-memory Project that implements every interface in the project
// package, with parent links wired. Snapshots stand in for a live
// engineering-tool session: the navigator cannot tell them apart.
package snapshot

import (
	"errors"
	"fmt"
	"os"

	"github.com/HendryAvila/tianav/internal/project"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultUngroupedName names the ungrouped devices group when the
	// document leaves it blank.
	DefaultUngroupedName = "UngroupedDevicesGroup"
	// DefaultBlockRootName names the root block group of a PLC program.
	DefaultBlockRootName = "Program blocks"
	// DefaultTypeRootName names the root type group of a PLC program.
	DefaultTypeRootName = "PLC data types"
)

// Document is the YAML form of a project view.
type Document struct {
	Name      string      `yaml:"name"`
	Devices   []DeviceDoc `yaml:"devices,omitempty"`
	Groups    []GroupDoc  `yaml:"groups,omitempty"`
	Ungrouped *GroupDoc   `yaml:"ungrouped,omitempty"`
}

// DeviceDoc describes a device and its top-level items.
type DeviceDoc struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type,omitempty"`
	Items []ItemDoc `yaml:"items,omitempty"`
}

// GroupDoc describes a device group.
type GroupDoc struct {
	Name    string      `yaml:"name,omitempty"`
	Devices []DeviceDoc `yaml:"devices,omitempty"`
	Groups  []GroupDoc  `yaml:"groups,omitempty"`
}

// ItemDoc describes a device item. Container marks an item that carries an
// empty software container; a non-nil Software implies one.
type ItemDoc struct {
	Name      string        `yaml:"name"`
	Type      string        `yaml:"type,omitempty"`
	Container bool          `yaml:"container,omitempty"`
	Software  *SoftwareDoc  `yaml:"software,omitempty"`
	Hardware  []HardwareDoc `yaml:"hardware,omitempty"`
	Items     []ItemDoc     `yaml:"items,omitempty"`
}

// HardwareDoc describes a non-recursive hardware component.
type HardwareDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// SoftwareDoc describes installed software. Blocks and Types apply to the
// PlcSoftware variant only.
type SoftwareDoc struct {
	Name    string                  `yaml:"name"`
	Variant project.SoftwareVariant `yaml:"variant"`
	Blocks  *BlockGroupDoc          `yaml:"blocks,omitempty"`
	Types   *TypeGroupDoc           `yaml:"types,omitempty"`
}

// BlockGroupDoc describes a block folder.
type BlockGroupDoc struct {
	Name   string          `yaml:"name,omitempty"`
	Blocks []BlockDoc      `yaml:"blocks,omitempty"`
	Groups []BlockGroupDoc `yaml:"groups,omitempty"`
}

// BlockDoc describes a single block.
type BlockDoc struct {
	Name     string            `yaml:"name"`
	Kind     project.BlockKind `yaml:"kind"`
	Number   int               `yaml:"number,omitempty"`
	Language string            `yaml:"language,omitempty"`
}

// TypeGroupDoc describes a type folder.
type TypeGroupDoc struct {
	Name   string         `yaml:"name,omitempty"`
	Types  []TypeDoc      `yaml:"types,omitempty"`
	Groups []TypeGroupDoc `yaml:"groups,omitempty"`
}

// TypeDoc describes a single user type.
type TypeDoc struct {
	Name string           `yaml:"name"`
	Kind project.TypeKind `yaml:"kind,omitempty"`
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes doc as YAML.
func Marshal(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

// Validate checks names, block kinds, and software variants.
func (d *Document) Validate() error {
	if d.Name == "" {
		return errors.New("snapshot: project name is required")
	}
	for _, dev := range d.Devices {
		if err := dev.validate("devices"); err != nil {
			return err
		}
	}
	for _, g := range d.Groups {
		if err := g.validate("groups", true); err != nil {
			return err
		}
	}
	if d.Ungrouped != nil {
		if err := d.Ungrouped.validate("ungrouped", false); err != nil {
			return err
		}
	}
	return nil
}

func (g *GroupDoc) validate(at string, named bool) error {
	if named && g.Name == "" {
		return fmt.Errorf("snapshot: %s: group name is required", at)
	}
	at = at + "/" + g.Name
	for _, dev := range g.Devices {
		if err := dev.validate(at); err != nil {
			return err
		}
	}
	for _, sub := range g.Groups {
		if err := sub.validate(at, true); err != nil {
			return err
		}
	}
	return nil
}

func (dev *DeviceDoc) validate(at string) error {
	if dev.Name == "" {
		return fmt.Errorf("snapshot: %s: device name is required", at)
	}
	at = at + "/" + dev.Name
	for _, it := range dev.Items {
		if err := it.validate(at); err != nil {
			return err
		}
	}
	return nil
}

func (it *ItemDoc) validate(at string) error {
	if it.Name == "" {
		return fmt.Errorf("snapshot: %s: device item name is required", at)
	}
	at = at + "/" + it.Name
	for _, hw := range it.Hardware {
		if hw.Name == "" {
			return fmt.Errorf("snapshot: %s: hardware item name is required", at)
		}
	}
	if sw := it.Software; sw != nil {
		if sw.Name == "" {
			return fmt.Errorf("snapshot: %s: software name is required", at)
		}
		if !sw.Variant.Valid() {
			return fmt.Errorf("snapshot: %s: unknown software variant %q", at, sw.Variant)
		}
		if sw.Variant != project.VariantPlcSoftware && (sw.Blocks != nil || sw.Types != nil) {
			return fmt.Errorf("snapshot: %s: %s cannot hold blocks or types", at, sw.Variant)
		}
		if sw.Blocks != nil {
			if err := sw.Blocks.validate(at); err != nil {
				return err
			}
		}
		if sw.Types != nil {
			if err := sw.Types.validate(at); err != nil {
				return err
			}
		}
	}
	for _, sub := range it.Items {
		if err := sub.validate(at); err != nil {
			return err
		}
	}
	return nil
}

func (g *BlockGroupDoc) validate(at string) error {
	for _, b := range g.Blocks {
		if b.Name == "" {
			return fmt.Errorf("snapshot: %s: block name is required", at)
		}
		if !b.Kind.Valid() {
			return fmt.Errorf("snapshot: %s: block %q has unknown kind %q", at, b.Name, b.Kind)
		}
	}
	for _, sub := range g.Groups {
		if sub.Name == "" {
			return fmt.Errorf("snapshot: %s: block group name is required", at)
		}
		if err := sub.validate(at + "/" + sub.Name); err != nil {
			return err
		}
	}
	return nil
}

func (g *TypeGroupDoc) validate(at string) error {
	for _, ty := range g.Types {
		if ty.Name == "" {
			return fmt.Errorf("snapshot: %s: type name is required", at)
		}
	}
	for _, sub := range g.Groups {
		if sub.Name == "" {
			return fmt.Errorf("snapshot: %s: type group name is required", at)
		}
		if err := sub.validate(at + "/" + sub.Name); err != nil {
			return err
		}
	}
	return nil
}
