package region

// Packer fills rows greedily in insertion order. An item that would push
// the open row past MaxSize closes it and opens a new one, even when the
// item alone is larger than MaxSize. Items are never reordered, split or
// rejected.
//
// A Packer is single-use; create one per sequence.
type Packer struct {
	cfg  PackingConfig
	rows []Row
	cur  Row
	size float64
}

// NewPacker returns an empty packer for cfg.
func NewPacker(cfg PackingConfig) *Packer {
	return &Packer{cfg: cfg.withDefaults()}
}

// Add appends it to the open row, wrapping when the row is full.
func (p *Packer) Add(it Item) {
	s := p.cfg.Sizer.Size(it)
	if len(p.cur) > 0 && p.size+s > p.cfg.MaxSize {
		p.close()
	}
	p.cur = append(p.cur, it)
	p.size += s
}

// AddSolo closes the open row and places it on a row of its own. The next
// Add starts a fresh row.
func (p *Packer) AddSolo(it Item) {
	p.close()
	p.rows = append(p.rows, Row{it})
}

// AddGroup places every item on its own row.
func (p *Packer) AddGroup(items []Item) {
	for _, it := range items {
		p.AddSolo(it)
	}
}

func (p *Packer) close() {
	if len(p.cur) > 0 {
		p.rows = append(p.rows, p.cur)
	}
	p.cur, p.size = nil, 0
}

// Rows closes the open row and returns everything packed so far. Row and
// Position fields are not assigned; see Number.
func (p *Packer) Rows() []Row {
	p.close()
	return p.rows
}

// Pack packs items into a numbered region. Items are copied.
func Pack(items []Item, cfg PackingConfig) Region {
	p := NewPacker(cfg)
	for _, it := range items {
		p.Add(it.Clone())
	}
	return Number(p.Rows())
}

// Number assigns 1-based Row and Position fields from slice order, in
// place, and returns the rows as a Region.
func Number(rows []Row) Region {
	for i, row := range rows {
		for j := range row {
			row[j].Row = i + 1
			row[j].Position = j + 1
		}
	}
	return Region(rows)
}
