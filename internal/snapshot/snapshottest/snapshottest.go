// Package snapshottest provides project fixtures for tests.
package snapshottest

import (
	"testing"

	"github.com/HendryAvila/tianav/internal/snapshot"
)

// PlantYAML is a plant with a hardware PLC, a PC-based software PLC, a
// device group with a nested cell, and an ungrouped HMI panel. The PLC_1
// program is four block groups deep.
const PlantYAML = `
name: Plant
devices:
  - name: PLC_1
    type: CPU 1516-3 PN/DP
    items:
      - name: PLC_1
        type: CPU 1516-3 PN/DP
        software:
          name: PLC_1
          variant: PlcSoftware
          blocks:
            blocks:
              - {name: Main, kind: OB, number: 1, language: LAD}
              - {name: Settings, kind: GlobalDB, number: 10, language: DB}
            groups:
              - name: Motors
                blocks:
                  - {name: FB_Motor, kind: FB, number: 100, language: SCL}
                  - {name: "Motor(1)", kind: InstanceDB, number: 101, language: DB}
                groups:
                  - name: Conveyors
                    blocks:
                      - {name: FC_Belt, kind: FC, number: 200, language: FBD}
                    groups:
                      - name: Diagnostics
                        blocks:
                          - {name: "Belt_Diag)", kind: ArrayDB, number: 210}
          types:
            types:
              - {name: UDT_Motor, kind: PlcStruct}
            groups:
              - name: Enums
                types:
                  - {name: MotorState, kind: PlcEnum}
                groups:
                  - name: Legacy
                    types:
                      - {name: UDT_OldMotor}
        hardware:
          - {name: DI 32x24VDC, type: 6ES7 521-1BL00-0AB0}
        items:
          - name: PROFINET interface_1
            type: PROFINET interface
  - name: PC-System_1
    type: SIMATIC IPC427E
    items:
      - name: Software PLC_1
        software:
          name: Software PLC_1
          variant: PlcSoftware
          blocks:
            blocks:
              - {name: Main, kind: OB, number: 1, language: SCL}
      - name: HMI_RT_1
        software: {name: HMI_RT_1, variant: HmiTarget}
groups:
  - name: Line A
    devices:
      - name: PLC_A
        items:
          - name: PLC_A
            software:
              name: PLC_A
              variant: PlcSoftware
    groups:
      - name: Cell 1
        devices:
          - name: PLC_A1
            items:
              - name: PLC_A1
                software: {name: PLC_A1, variant: PlcSoftware}
ungrouped:
  devices:
    - name: HMI_1
      items:
        - name: HMI_1
          software: {name: HMI_1, variant: HmiSoftware}
        - name: Panel
          container: true
`

// Plant builds the PlantYAML fixture.
func Plant(tb testing.TB) *snapshot.Project {
	tb.Helper()
	return Build(tb, PlantYAML)
}

// Build parses and builds a YAML fixture, failing the test on error.
func Build(tb testing.TB, yaml string) *snapshot.Project {
	tb.Helper()
	doc, err := snapshot.Parse([]byte(yaml))
	if err != nil {
		tb.Fatalf("parsing fixture: %v", err)
	}
	return snapshot.Build(doc)
}

// Document parses a YAML fixture without building it.
func Document(tb testing.TB, yaml string) *snapshot.Document {
	tb.Helper()
	doc, err := snapshot.Parse([]byte(yaml))
	if err != nil {
		tb.Fatalf("parsing fixture: %v", err)
	}
	return doc
}
