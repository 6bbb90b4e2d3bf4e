package id

// Generate creates a new unique identifier using the default XID generator.
// XID is chosen as the default because it offers the best performance with good uniqueness guarantees.
// The generated ID is a 20-character string using base32 encoding (0-9, a-v).
//
// Example:
//
//	id := Generate()
//	// Returns something like: "9m4e2mr0ui3e8a215n4g"
func Generate() string {
	return DefaultXIDGenerator.Generate()
}
