// Package tablediff computes the differences between two tables.
//
// # Usage
//
//	for _, c := range tablediff.Diff(input, canonical) {
//		fmt.Println(c)
//	}
//
// Entries are matched by key. Key order is aligned with a sequence
// diff so that changes are reported in document order; an entry whose
// key only moved is compared in place.
//
// # Related Packages
//
//   - github.com/signadot/luamap/ir - Table representation
//   - github.com/signadot/luamap/encode - Encode tables to text
package tablediff
