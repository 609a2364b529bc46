package detail

// CheckboxState is the value of the tri-state "select all" checkbox.
type CheckboxState int

const (
	// Unchecked means no enabled project is selected.
	Unchecked CheckboxState = iota
	// Checked means every enabled project is selected.
	Checked
	// Indeterminate means some but not all enabled projects are selected.
	Indeterminate
)

func (s CheckboxState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// checkboxStateFor derives the tri-state from the counts over the visible set.
func checkboxStateFor(selected, total int) CheckboxState {
	switch {
	case selected == 0:
		return Unchecked
	case selected == total:
		return Checked
	default:
		return Indeterminate
	}
}
