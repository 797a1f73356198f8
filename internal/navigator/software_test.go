package navigator

import (
	"testing"

	"github.com/HendryAvila/tianav/internal/project"
	"github.com/HendryAvila/tianav/internal/snapshot/snapshottest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSoftwareContainer_BothConventions(t *testing.T) {
	n := newPlantNavigator(t)

	tests := []struct {
		name      string
		itemOnly  string
		withOwner string
	}{
		{"hardware PLC", "PLC_1", "PLC_1/PLC_1"},
		{"PC-based PLC", "Software PLC_1", "PC-System_1/Software PLC_1"},
		{"grouped device", "Line A/PLC_A", "Line A/PLC_A/PLC_A"},
		{"nested group", "Line A/Cell 1/PLC_A1", "Line A/Cell 1/PLC_A1/PLC_A1"},
		{"group case ignored", "line a/cell 1/PLC_A1", "LINE A/Cell 1/PLC_A1/PLC_A1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := n.ResolveSoftwareContainer(tt.itemOnly)
			require.NoError(t, err)
			b, err := n.ResolveSoftwareContainer(tt.withOwner)
			require.NoError(t, err)
			assert.Same(t, a, b)
		})
	}
}

func TestResolveSoftwareContainer_Ungrouped(t *testing.T) {
	n := newPlantNavigator(t)

	c, err := n.ResolveSoftwareContainer("HMI_1")
	require.NoError(t, err)
	sw, err := c.Software()
	require.NoError(t, err)
	assert.Equal(t, project.VariantHmiSoftware, sw.Variant())

	c, err = n.ResolveSoftwareContainer("HMI_1/Panel")
	require.NoError(t, err)
	sw, err = c.Software()
	require.NoError(t, err)
	assert.Nil(t, sw, "empty container")
}

func TestResolveSoftwareContainer_NotFound(t *testing.T) {
	n := newPlantNavigator(t)

	for _, path := range []string{
		"",
		"/",
		"Nope",
		"PLC_1/PROFINET interface_1",       // nested item without a container
		"PLC_1/PLC_1/PROFINET interface_1", // same, addressed with its owner
		"Line A",                           // a group alone
		"PLC_A",                            // grouped device outside its group
		"plc_1",                            // container names are exact
	} {
		_, err := n.ResolveSoftwareContainer(path)
		assert.ErrorIs(t, err, project.ErrNotFound, "path %q", path)
	}
}

func TestResolveSoftwareContainer_SlashesAreLenient(t *testing.T) {
	n := newPlantNavigator(t)

	a, err := n.ResolveSoftwareContainer("PC-System_1/Software PLC_1")
	require.NoError(t, err)
	b, err := n.ResolveSoftwareContainer("/PC-System_1//Software PLC_1/")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestResolveSoftware(t *testing.T) {
	n := newPlantNavigator(t)

	sw, err := n.ResolveSoftware("PC-System_1/Software PLC_1")
	require.NoError(t, err)
	assert.Equal(t, "Software PLC_1", sw.Name())
	assert.Equal(t, project.VariantPlcSoftware, sw.Variant())

	sw, err = n.ResolveSoftware("Line A/Cell 1/PLC_A1")
	require.NoError(t, err)
	assert.Equal(t, "PLC_A1", sw.Name())
}

func TestResolveSoftware_NotPLC(t *testing.T) {
	n := newPlantNavigator(t)

	for _, path := range []string{
		"PC-System_1/HMI_RT_1", // HmiTarget
		"HMI_1",                // HmiSoftware
		"HMI_1/Panel",          // empty container
	} {
		_, err := n.ResolveSoftware(path)
		require.Error(t, err, path)
		assert.ErrorIs(t, err, project.ErrNotFound, path)

		var nf *project.NotFoundError
		if assert.ErrorAs(t, err, &nf, path) {
			assert.Equal(t, "PLC software", nf.What)
		}
	}
}

func TestResolveSoftware_DeviceThenItemWins(t *testing.T) {
	// "Rack" is both a device with an item "CPU" and, inside another
	// device, an item with a nested item "CPU". The device reading comes
	// first.
	const yaml = `
name: Tie
devices:
  - name: Holder
    items:
      - name: Rack
        items:
          - name: CPU
            software: {name: nested, variant: PlcSoftware}
  - name: Rack
    items:
      - name: CPU
        software: {name: direct, variant: PlcSoftware}
`
	n := New(&swapSource{p: snapshottest.Build(t, yaml)})

	sw, err := n.ResolveSoftware("Rack/CPU")
	require.NoError(t, err)
	assert.Equal(t, "direct", sw.Name())
}
