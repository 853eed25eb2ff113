// Package shaders embeds the WGSL programs of the GPU sink. Every program
// reads the same per-item uniform block (model, view and projection
// matrices followed by the height range) at group 0, binding 0.
package shaders

import (
	_ "embed"
	"sort"
)

//go:embed simple3d.wgsl
var Simple3DWGSL string

//go:embed simple2d.wgsl
var Simple2DWGSL string

//go:embed heightmap.wgsl
var HeightMapWGSL string

// Programs maps program names to their WGSL source.
var Programs = map[string]string{
	"simple3d":  Simple3DWGSL,
	"simple2d":  Simple2DWGSL,
	"heightmap": HeightMapWGSL,
}

// IsOverlay reports whether the named program draws screen-space overlays,
// which ignore the depth buffer.
func IsOverlay(name string) bool {
	return name == "simple2d"
}

// Names returns the program names sorted.
func Names() []string {
	names := make([]string, 0, len(Programs))
	for n := range Programs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
