package batch

// Config holds all configuration for batch identification.
type Config struct {
	// Reference data
	ProfilesDir string

	// Decision rule settings
	Threshold float64
	Margin    float64
	MaxLines  int

	// Output settings
	Format     string
	OutputFile string

	// Parallel processing settings
	Workers int

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Error handling
	ContinueOnError bool
	Quiet           bool
}
