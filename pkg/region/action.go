package region

// Kind tags an Action.
type Kind string

const (
	KindNone        Kind = "none"
	KindAdd         Kind = "add"
	KindAddGroup    Kind = "addGroup"
	KindRemove      Kind = "remove"
	KindRemoveGroup Kind = "removeGroup"
	KindRemoveRow   Kind = "removeRow"
)

// Kinds lists every action kind in a stable order.
var Kinds = []Kind{KindNone, KindAdd, KindAddGroup, KindRemove, KindRemoveGroup, KindRemoveRow}

// Valid reports whether k is a known kind. The empty kind counts as none.
func (k Kind) Valid() bool {
	switch k {
	case "", KindNone, KindAdd, KindAddGroup, KindRemove, KindRemoveGroup, KindRemoveRow:
		return true
	}
	return false
}

// Action is one structural edit of a region. Only the fields belonging to
// Kind are read:
//
//	add          Item, Location
//	addGroup     Items, Location
//	remove       ID
//	removeGroup  IDs
//	removeRow    Location.Row
//
// Use the constructors rather than filling the struct by hand.
type Action struct {
	Kind     Kind     `json:"type" yaml:"type"`
	Item     *Item    `json:"item,omitempty" yaml:"item,omitempty"`
	Items    []Item   `json:"items,omitempty" yaml:"items,omitempty"`
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	IDs      []string `json:"ids,omitempty" yaml:"ids,omitempty"`
	Location Location `json:"location" yaml:"location"`
}

// None is the action that changes nothing.
func None() Action { return Action{Kind: KindNone} }

// Add inserts item at loc.
func Add(item Item, loc Location) Action {
	it := item.Clone()
	return Action{Kind: KindAdd, Item: &it, Location: loc}
}

// AddGroup inserts items at loc, each on its own row.
func AddGroup(items []Item, loc Location) Action {
	group := make([]Item, len(items))
	for i, it := range items {
		group[i] = it.Clone()
	}
	return Action{Kind: KindAddGroup, Items: group, Location: loc}
}

// Remove deletes the item with identifier id.
func Remove(id string) Action { return Action{Kind: KindRemove, ID: id} }

// RemoveGroup deletes every item whose identifier is listed.
func RemoveGroup(ids ...string) Action {
	return Action{Kind: KindRemoveGroup, IDs: append([]string(nil), ids...)}
}

// RemoveRow deletes the 1-based row.
func RemoveRow(row int) Action {
	return Action{Kind: KindRemoveRow, Location: Location{Row: row}}
}

// inserted returns the items an action adds and whether each must sit on
// its own row.
func (a Action) inserted() (items []Item, solo bool) {
	switch a.Kind {
	case KindAdd:
		if a.Item != nil {
			return []Item{*a.Item}, false
		}
	case KindAddGroup:
		return a.Items, true
	}
	return nil, false
}

// removed returns the identifiers an action deletes.
func (a Action) removed() map[string]struct{} {
	var ids []string
	switch a.Kind {
	case KindRemove:
		ids = []string{a.ID}
	case KindRemoveGroup:
		ids = a.IDs
	default:
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
