package icons

// Variant selects the base icon, and with it the cache partition, used for
// a row.
type Variant int

const (
	Row  Variant = iota // single-line list rows
	Grid                // large icon grid cells
)

// Variants lists every variant in index order.
var Variants = [...]Variant{Row, Grid}

func (v Variant) String() string {
	if v == Grid {
		return "grid"
	}
	return "row"
}

// fileName is the scratch file the derived icon is persisted to.
func (v Variant) fileName() string {
	if v == Grid {
		return "FolderLargeIcon.png"
	}
	return "FolderIcon.png"
}
