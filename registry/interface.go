package registry

// SchemaRegistry manages JSON schemas by name.
type SchemaRegistry interface {
	// Register adds a schema under a name.
	// model can be a struct (to generate schema) or a JSON schema string/map/bytes.
	Register(name string, model any) error

	// GetSchema returns the JSON schema registered under name.
	GetSchema(name string) (string, bool)

	// List returns all registered schema names in sorted order.
	List() []string
}
