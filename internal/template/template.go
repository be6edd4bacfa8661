package template

// Template represents a single generation template.
type Template struct {
	// Name is the unique identifier for the template.
	Name string
	// Body is the template text. It can contain placeholders in the format
	// ${source_name}, each replaced by a random line from the named source.
	Body string
	// Count is the number of times this template has been generated.
	Count int
}
