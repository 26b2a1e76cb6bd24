package categorizer

// Strategy is one step of the classification chain. Strategies are tried in
// order and the first that reports found wins.
type Strategy interface {
	// Categorize returns the category for a description and the raw category
	// label supplied by the source, and whether this strategy decided.
	Categorize(description, supplied string) (string, bool)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
