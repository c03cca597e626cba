package models

// TermBlock represents a sub-division of a term, e.g. the full semester or a
// half-semester module. Its id participates in section natural keys, so a
// block must be persisted before any section referencing it is cached.
type TermBlock struct {
	ID     int64  `json:"id" db:"id"`
	TermID int64  `json:"termId" db:"term_id"`
	Name   string `json:"name" db:"name"`

	// Relations (populated when needed)
	Term *Term `json:"term,omitempty"`
}

// TermBlockKey is the natural key of a TermBlock.
type TermBlockKey struct {
	Term string
	Name string
}

// Key returns the block's natural key. The owning term must be attached.
func (b *TermBlock) Key() TermBlockKey {
	return TermBlockKey{Term: b.Term.DisplayName, Name: b.Name}
}

// DisplayName maps the registrar block codes to human-readable labels.
func (b *TermBlock) DisplayName() string {
	switch b.Name {
	case "1":
		return "Full Semester"
	case "2":
		return "Module 1"
	case "3":
		return "Module 2"
	case "DEC":
		return "December"
	default:
		return b.Name
	}
}
