package navigator

import (
	"fmt"
	"sort"
	"testing"

	"github.com/HendryAvila/tianav/internal/project"
	"github.com/HendryAvila/tianav/internal/snapshot"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var groupNames = []string{"Alpha", "Beta", "Gamma", "Delta"}

// randomProgram builds a single-PLC project from placements. Each
// placement is [depth, g1, g2, g3]: the block goes depth groups deep,
// following groupNames[g1], groupNames[g2], ... from the root.
func randomProgram(placements [][]int) *snapshot.Project {
	root := &snapshot.BlockGroupDoc{}
	for i, pl := range placements {
		g := root
		for _, gi := range pl[1 : 1+pl[0]] {
			g = childGroup(g, groupNames[gi])
		}
		g.Blocks = append(g.Blocks, snapshot.BlockDoc{
			Name:   fmt.Sprintf("B%d", i),
			Kind:   project.BlockFB,
			Number: i + 1,
		})
	}
	return snapshot.Build(&snapshot.Document{
		Name: "Random",
		Devices: []snapshot.DeviceDoc{{
			Name: "CPU",
			Items: []snapshot.ItemDoc{{
				Name: "CPU",
				Software: &snapshot.SoftwareDoc{
					Name:    "CPU",
					Variant: project.VariantPlcSoftware,
					Blocks:  root,
				},
			}},
		}},
	})
}

func childGroup(g *snapshot.BlockGroupDoc, name string) *snapshot.BlockGroupDoc {
	for i := range g.Groups {
		if g.Groups[i].Name == name {
			return &g.Groups[i]
		}
	}
	g.Groups = append(g.Groups, snapshot.BlockGroupDoc{Name: name})
	return &g.Groups[len(g.Groups)-1]
}

func genPlacements() gopter.Gen {
	return gen.SliceOf(gen.SliceOfN(4, gen.IntRange(0, 3)))
}

func TestNavigatorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("built paths resolve to the same block", prop.ForAll(
		func(placements [][]int) bool {
			n := New(&swapSource{p: randomProgram(placements)})
			entries, err := n.CollectBlocks("CPU", "")
			if err != nil || len(entries) != len(placements) {
				return false
			}
			for _, e := range entries {
				got, err := n.ResolveBlock("CPU", BlockPath(e.Leaf))
				if err != nil || got != e.Leaf {
					return false
				}
			}
			return true
		},
		genPlacements(),
	))

	properties.Property("disjoint classes partition the full collection", prop.ForAll(
		func(placements [][]int) bool {
			n := New(&swapSource{p: randomProgram(placements)})
			all, err := n.CollectBlocks("CPU", "")
			if err != nil {
				return false
			}
			var union []string
			for _, class := range []string{`^B\d*[02468]$`, `^B\d*[13579]$`} {
				got, err := n.CollectBlocks("CPU", class)
				if err != nil {
					return false
				}
				union = append(union, paths(got)...)
			}
			want := paths(all)
			sort.Strings(want)
			sort.Strings(union)
			return fmt.Sprint(want) == fmt.Sprint(union)
		},
		genPlacements(),
	))

	properties.Property("collection lists leaves before sub-groups", prop.ForAll(
		func(placements [][]int) bool {
			n := New(&swapSource{p: randomProgram(placements)})
			entries, err := n.CollectBlocks("CPU", "")
			if err != nil {
				return false
			}
			// Once a deeper group has been entered, a shallower leaf of
			// the same group must not follow it.
			seen := map[string]bool{}
			for _, e := range entries {
				for g := range seen {
					if g != e.GroupPath && isPrefixGroup(e.GroupPath, g) {
						return false
					}
				}
				seen[e.GroupPath] = true
			}
			return true
		},
		genPlacements(),
	))

	properties.TestingRun(t)
}

// isPrefixGroup reports whether group is a strict ancestor of other.
func isPrefixGroup(group, other string) bool {
	if group == "" {
		return other != ""
	}
	return len(other) > len(group) && other[:len(group)+1] == group+"/"
}
