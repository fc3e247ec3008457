package ports

// DeletedFilter selects how soft-deleted rows participate in reads.
// The zero value hides them, which is what every non-administrative
// caller wants.
type DeletedFilter string

const (
	DeletedExclude DeletedFilter = ""
	DeletedOnly    DeletedFilter = "only"
	DeletedAll     DeletedFilter = "all"
)

// Valid reports whether f is one of the recognised filter values.
func (f DeletedFilter) Valid() bool {
	switch f {
	case DeletedExclude, DeletedOnly, DeletedAll:
		return true
	}
	return false
}
