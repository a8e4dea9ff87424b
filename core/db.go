package core

// DBOrdering is a sort clause resolved from an allow-list; Field is always a
// known column name, never raw client input.
type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
