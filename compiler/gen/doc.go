// Package gen turns preference schemas into typed accessor artifacts.
//
// An entity is a named group of typed keys backed by one store namespace.
// A component is a facade aggregating entity singletons behind a declared
// contract. For each entity the package builds a Preference_<Name> artifact
// and for each component a PreferenceComponent_<Name> artifact.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Schema files (schema.yaml, schema.json)
//	        ↓
//	   load.Schema records
//	        ↓
//	   Graph (Entity, Field, Component, Contract)
//	        ↓
//	   EntityGenerator / ComponentGenerator
//	        ↓
//	   Class trees (language-neutral artifacts)
//	        ↓
//	   Backend (golang) + Writer
//	        ↓
//	   Generated code
//
// # Key Types
//
//   - Graph: entities keyed by name and components in order
//   - Entity, Field: a preference group and its typed keys
//   - Component, Contract, Operation: facades and their void-only contracts
//   - Class, Member, Method, Stmt: the artifact tree
//   - FieldAccessorGenerator: get/put/contains/remove per field
//   - ChangeListenerGenerator: nested listener type per field
//   - Writer, Backend, Manifest: rendering and writing files
//
// # Naming
//
// Every accessor is derived from UpperCamel(key), the single normalization
// rule of the package: the first letter and every letter following a
// separator (_ - . or space) are upper-cased and separators are removed.
// Keys normalizing to the same name are rejected by NewEntity.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: unknown entities, redeclared keys, name collisions
//   - ContractError: contract operations declaring results
//   - ConfigError: configuration errors
//   - GenerationError: per-artifact failures
//
// Failures are isolated per artifact:
//
//	classes, err := g.Artifacts()
//	if errors.Is(err, gen.ErrContractViolation) {
//	    // classes still holds every artifact that was generated.
//	}
package gen
