package validation

// DocumentValidator validates encoded documents against a registered schema.
type DocumentValidator interface {
	// Validate checks a JSON document. The error return is for schema
	// lookup, compilation or decoding failures; schema violations are
	// reported in the result.
	Validate(document []byte) (*ValidationResult, error)
}

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationIssue
}

// ValidationIssue is a single schema violation.
type ValidationIssue struct {
	Path    string // Instance location, e.g. "/Wolf/fields/0/type"
	Message string
	Keyword string // Schema keyword location that failed
}
