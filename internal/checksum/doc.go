// Package checksum hashes metadata documents.
//
// Two checksums are provided:
//
//   - Raw checksum: hash of the exact bytes (detects any change)
//   - Normalized checksum: hash after removing XML comments and whitespace
//     between markup, so reindenting a document leaves it unchanged
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(data)
//	normalized := calculator.CalculateNormalized(data)
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
