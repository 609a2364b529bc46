package cli

// Default values for CLI flags and output.
const (
	// MaxDescriptionLength is the maximum length of a package description in search results.
	MaxDescriptionLength = 40
	// TabWidth is the padding between columns in formatted output.
	TabWidth = 2
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
)
