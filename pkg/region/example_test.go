package region_test

import (
	"fmt"
	"strings"

	"github.com/dwthomas77/dropgrid/pkg/region"
)

func show(r region.Region) {
	for _, row := range r {
		cells := make([]string, len(row))
		for i, it := range row {
			cells[i] = fmt.Sprintf("%s(%d,%d)", it.ID, it.Row, it.Position)
		}
		fmt.Println(strings.Join(cells, " "))
	}
}

func ExamplePack() {
	items := []region.Item{
		{ID: "a", Size: 3},
		{ID: "b", Size: 4},
		{ID: "c", Size: 2},
		{ID: "d", Size: 12},
	}
	show(region.Pack(items, region.PackingConfig{MaxSize: 8}))
	// Output:
	// a(1,1) b(1,2)
	// c(2,1)
	// d(3,1)
}

func ExampleRebuild() {
	cfg := region.PackingConfig{MaxSize: 8}
	r := region.Pack([]region.Item{{ID: "a", Size: 4}, {ID: "b", Size: 4}, {ID: "c", Size: 4}}, cfg)

	r = region.Rebuild(r, region.Add(region.Item{ID: "n", Size: 2}, region.Location{Row: 2, Position: 1}), cfg)
	show(r)
	fmt.Println("--")
	r = region.Rebuild(r, region.RemoveRow(1), cfg)
	show(r)
	// Output:
	// a(1,1) b(1,2)
	// n(2,1) c(2,2)
	// --
	// n(1,1) c(1,2)
}
