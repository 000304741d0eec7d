package api

import _ "embed"

// SchemaURL identifies OrganismSchemaV1 when compiled with a jsonschema compiler.
const SchemaURL = "https://morphogen.local/schemas/organism_v1.schema.json"

// OrganismSchemaV1 is the JSON Schema (draft-07) every OrganismV1 document satisfies.
//
//go:embed organism_v1.schema.json
var OrganismSchemaV1 string
