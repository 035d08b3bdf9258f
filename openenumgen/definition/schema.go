package definition

import "github.com/invopop/jsonschema"

// SchemaID identifies the definition file JSON Schema.
const SchemaID = "https://github.com/broady/openenum/definition.schema.json"

// JSONSchema describes the definition file format so editors can validate
// and complete definition files.
func JSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(new(File))
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "openenum definitions"
	s.Description = "Open enumerations to generate Go code for."
	return s
}
