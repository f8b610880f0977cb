package region

// entry is an item queued for packing. Solo entries come from a group
// insertion and always get a row of their own.
type entry struct {
	item Item
	solo bool
}

// Rebuild applies a to r and returns the repacked region. r is not
// modified and the result shares no memory with it or with a.
//
// Every source row is repacked on its own: surviving items keep their
// order, insertions are spliced in at the target location, and the row
// wraps into as many rows as cfg allows. A row whose items are all removed
// disappears. RemoveRow runs afterwards on the repacked rows. Finally row
// and position numbers are reassigned from 1.
//
// Target resolution for add and addGroup:
//   - Location.Position inside the row inserts before the item currently
//     at that position (positions count the row as it was, removed items
//     included); an unset or larger position appends to the row.
//   - Location.Row outside the region, or unset, appends new rows at the end.
//   - Location.NewRow inserts the new rows before source row Location.Row
//     (clamped to 1), or at the end when the row is past the region.
//
// Removing an unknown identifier is a no-op. If every item is gone but r
// had rows, the result is a single empty placeholder row.
func Rebuild(r Region, a Action, cfg PackingConfig) Region {
	cfg = cfg.withDefaults()

	inserts, solo := a.inserted()
	removed := a.removed()
	loc := a.Location

	insertion := func() []entry {
		es := make([]entry, len(inserts))
		for i, it := range inserts {
			es[i] = entry{item: it.Clone(), solo: solo}
		}
		return es
	}
	placed := len(inserts) == 0

	spliceRow := 0
	if loc.NewRow && !placed {
		spliceRow = max(loc.Row, 1)
	}

	segments := make([][]entry, 0, len(r)+1)
	for i, row := range r {
		rowNum := i + 1
		if !placed && spliceRow == rowNum {
			segments = append(segments, insertion())
			placed = true
		}

		target := !placed && !loc.NewRow && loc.Row == rowNum
		seg := make([]entry, 0, len(row)+len(inserts))
		for j, it := range row {
			if target && loc.Position == j+1 {
				seg = append(seg, insertion()...)
				target, placed = false, true
			}
			if _, gone := removed[it.ID]; !gone {
				seg = append(seg, entry{item: it.Clone()})
			}
		}
		if target {
			seg = append(seg, insertion()...)
			placed = true
		}
		segments = append(segments, seg)
	}
	if !placed {
		segments = append(segments, insertion())
	}

	var rows []Row
	for _, seg := range segments {
		p := NewPacker(cfg)
		for _, e := range seg {
			if e.solo {
				p.AddSolo(e.item)
			} else {
				p.Add(e.item)
			}
		}
		rows = append(rows, p.Rows()...)
	}

	if a.Kind == KindRemoveRow && loc.Row >= 1 && loc.Row <= len(rows) {
		rows = append(rows[:loc.Row-1], rows[loc.Row:]...)
	}

	if len(rows) == 0 {
		if len(r) > 0 {
			return Region{Row{}}
		}
		return Region{}
	}
	return Number(rows)
}
