package dispatcher

// Side identifies the target that received an item
type Side int

const (
	// SideLocal is the single local lane
	SideLocal Side = iota
	// SideGrid is the lane pool
	SideGrid
)

func (s Side) String() string {
	if s == SideGrid {
		return "grid"
	}
	return "local"
}
