package navigator

import (
	"testing"

	"github.com/HendryAvila/tianav/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDevice(t *testing.T) {
	n := newPlantNavigator(t)

	tests := []struct {
		path string
		want string
	}{
		{"PLC_1", "PLC_1"},
		{"PC-System_1", "PC-System_1"},
		{"Line A/PLC_A", "PLC_A"},
		{"Line A/Cell 1/PLC_A1", "PLC_A1"},
		{"/Line A//PLC_A/", "PLC_A"},
		{"line a/PLC_A", "PLC_A"},
		{"LINE A/cell 1/PLC_A1", "PLC_A1"},
		{"HMI_1", "HMI_1"},
		{"UngroupedDevicesGroup/HMI_1", "HMI_1"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			d, err := n.ResolveDevice(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
			assert.Equal(t, project.KindDevice, d.Kind())
		})
	}
}

func TestResolveDevice_NotFound(t *testing.T) {
	n := newPlantNavigator(t)

	for _, path := range []string{
		"",
		"Nope",
		"PLC_A",        // lives in Line A
		"Line A/plc_a", // device names are exact
		"Line A/Nope",
		"Nope/PLC_A",
		"Line A", // a group is not a device
	} {
		_, err := n.ResolveDevice(path)
		assert.ErrorIs(t, err, project.ErrNotFound, "path %q", path)
	}
}

func TestResolveDeviceItem(t *testing.T) {
	n := newPlantNavigator(t)

	tests := []struct {
		path   string
		want   string
		parent string
	}{
		{"PLC_1/PLC_1", "PLC_1", "PLC_1"},
		{"PLC_1/PLC_1/PROFINET interface_1", "PROFINET interface_1", "PLC_1"},
		{"PC-System_1/HMI_RT_1", "HMI_RT_1", "PC-System_1"},
		{"Line A/PLC_A/PLC_A", "PLC_A", "PLC_A"},
		{"UngroupedDevicesGroup/HMI_1/Panel", "Panel", "HMI_1"},
		// bare item chains
		{"Software PLC_1", "Software PLC_1", "PC-System_1"},
		{"PLC_1/PROFINET interface_1", "PROFINET interface_1", "PLC_1"},
		{"PLC_A1", "PLC_A1", "PLC_A1"},
		{"Panel", "Panel", "HMI_1"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			it, err := n.ResolveDeviceItem(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, it.Name())
			require.NotNil(t, it.Parent())
			assert.Equal(t, tt.parent, it.Parent().Name())
		})
	}
}

func TestResolveDeviceItem_NotFound(t *testing.T) {
	n := newPlantNavigator(t)

	for _, path := range []string{
		"",
		"Nope",
		"PLC_1/Nope",
		"PC-System_1", // a device, not an item
		"DI 32x24VDC", // hardware items are not device items
	} {
		_, err := n.ResolveDeviceItem(path)
		assert.ErrorIs(t, err, project.ErrNotFound, "path %q", path)
	}
}

func TestCollectDevices_Order(t *testing.T) {
	n := newPlantNavigator(t)

	got, err := n.CollectDevices("")
	require.NoError(t, err)

	var paths, groups []string
	for _, e := range got {
		paths = append(paths, e.Path)
		groups = append(groups, e.GroupPath)
	}
	assert.Equal(t, []string{"PLC_1", "PC-System_1", "Line A/PLC_A", "Line A/Cell 1/PLC_A1", "HMI_1"}, paths)
	assert.Equal(t, []string{"", "", "Line A", "Line A/Cell 1", ""}, groups)
}

func TestCollectDevices_PathsResolve(t *testing.T) {
	n := newPlantNavigator(t)

	got, err := n.CollectDevices("")
	require.NoError(t, err)
	for _, e := range got {
		d, err := n.ResolveDevice(e.Path)
		require.NoError(t, err, e.Path)
		assert.Same(t, e.Device, d, e.Path)
	}
}

func TestCollectDevices_Filter(t *testing.T) {
	n := newPlantNavigator(t)

	tests := []struct {
		pattern string
		want    []string
	}{
		{"^PLC", []string{"PLC_1", "PLC_A", "PLC_A1"}},
		{"plc_a", []string{"PLC_A", "PLC_A1"}},
		{"HMI|System", []string{"PC-System_1", "HMI_1"}},
		{"^nothing$", nil},
		{"[", nil},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := n.CollectDevices(tt.pattern)
			require.NoError(t, err)
			var names []string
			for _, e := range got {
				names = append(names, e.Device.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
