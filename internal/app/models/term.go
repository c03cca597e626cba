package models

// Term represents an academic term, e.g. "Fall 2017".
type Term struct {
	ID          int64  `json:"id" db:"id"`
	DisplayName string `json:"displayName" db:"display_name"`
	Year        int    `json:"year" db:"year"`
	Semester    string `json:"semester" db:"semester"`

	// Blocks owned by this term (populated when needed)
	Blocks []*TermBlock `json:"blocks,omitempty"`
}

// TermKey is the natural key of a Term.
type TermKey struct {
	Year     int
	Semester string
}

// Key returns the term's natural key.
func (t *Term) Key() TermKey {
	return TermKey{Year: t.Year, Semester: t.Semester}
}

// AddBlock attaches a block to the term, keeping both sides of the relation
// consistent.
func (t *Term) AddBlock(block *TermBlock) {
	t.Blocks = append(t.Blocks, block)
	block.Term = t
}
