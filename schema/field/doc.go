// Package field defines the value kinds a preference field may hold.
//
// The set is closed and mirrors what a key/value settings store supports
// natively:
//
//	bool      field.TypeBool
//	int       field.TypeInt
//	int64     field.TypeInt64
//	float32   field.TypeFloat
//	string    field.TypeString
//	[]string  field.TypeStringSet
//
// Schema files name kinds with the Go type or a common alias ("boolean",
// "integer", "long", "float", "stringset"); see ParseType.
package field
