package pipeline

import (
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

// DropLocation turns a drag result on reg into the insertion location an
// add action needs. Top and bottom open a new row above or below the
// target row; left and right of a child insert before or after it; left
// and right of a whole row insert at its start or end.
func DropLocation(reg region.Region, drop hotspot.DragResult) region.Location {
	row := drop.ID
	switch drop.Modifier {
	case hotspot.ModifierTop:
		return region.Location{Row: row, NewRow: true}
	case hotspot.ModifierBottom:
		return region.Location{Row: row + 1, NewRow: true}
	}

	switch {
	case drop.ChildID > 0 && drop.Modifier == hotspot.ModifierRight:
		return region.Location{Row: row, Position: drop.ChildID + 1}
	case drop.ChildID > 0:
		return region.Location{Row: row, Position: drop.ChildID}
	case drop.Modifier == hotspot.ModifierLeft:
		return region.Location{Row: row, Position: 1}
	}

	// Right of a whole row: append after its last item.
	n := 0
	if row >= 1 && row <= len(reg) {
		n = len(reg[row-1])
	}
	return region.Location{Row: row, Position: n + 1}
}
