package entity

// Identity is the store-assigned key embedded by every persisted aggregate root.
// Stores assign positive ids only.
type Identity struct {
	ID int64 `db:"id"`
}

// IsNew reports whether the record has not been assigned an id yet.
func (i Identity) IsNew() bool {
	return i.ID <= 0
}
