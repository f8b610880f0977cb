// Package region packs items into size-limited rows and rebuilds a region
// after a structural edit.
//
// A [Region] is an ordered list of [Row] values, each an ordered list of
// [Item] values. Rows fill left to right until the summed size of their
// items would pass PackingConfig.MaxSize, then wrap. An item larger than
// the limit is placed alone on its own row; it is never split or rejected.
//
// [Rebuild] takes the previous region and one [Action] and returns a fresh
// region with every Row and Position renumbered from 1:
//
//	r = region.Rebuild(r, region.Add(item, region.Location{Row: 2, Position: 1}), cfg)
//	r = region.Rebuild(r, region.Remove("hero"), cfg)
//	r = region.Rebuild(r, region.RemoveRow(3), cfg)
//
// Rebuild is a pure function of its arguments. It never mutates its inputs
// and keeps no state between calls, so concurrent callers need no locking.
package region
