package navigator

import (
	"strings"

	"github.com/HendryAvila/tianav/internal/project"
)

// BuildGroupPath returns the path of g as ResolveBlock accepts it: the
// names from below the root system group down to g. The root group itself
// yields "".
func BuildGroupPath(g project.BlockGroup) string {
	if g == nil {
		return ""
	}
	return trimRoot(walkUp(g))
}

// BuildTypeGroupPath is BuildGroupPath for type groups.
func BuildTypeGroupPath(g project.TypeGroup) string {
	if g == nil {
		return ""
	}
	return trimRoot(walkUp(g))
}

// walkUp collects names from g up to and including the first system group.
// It stops early at a missing parent, one of another family, or a group
// already on the path.
func walkUp[G project.Node](g G) string {
	names := []string{g.Name()}
	seen := map[project.Node]bool{g: true}
	cur := g
	for cur.Kind() != project.KindSystemGroup {
		parent, ok := cur.Parent().(G)
		if !ok || seen[parent] {
			break
		}
		seen[parent] = true
		names = append(names, parent.Name())
		cur = parent
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// trimRoot drops the root group's name.
func trimRoot(walked string) string {
	i := strings.IndexByte(walked, '/')
	if i < 0 {
		return ""
	}
	return walked[i+1:]
}

// BlockPath returns the caller-facing path of b: its group path joined with
// its name.
func BlockPath(b project.Block) string {
	g, _ := b.Parent().(project.BlockGroup)
	return joinPath(BuildGroupPath(g), b.Name())
}

// TypePath returns the caller-facing path of t.
func TypePath(t project.Type) string {
	g, _ := t.Parent().(project.TypeGroup)
	return joinPath(BuildTypeGroupPath(g), t.Name())
}
