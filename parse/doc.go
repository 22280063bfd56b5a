// Package parse reads tables from lua, json or yaml text.
//
// Lua input is a chunk evaluated without libraries: either an
// expression such as a table constructor, or statements ending in
// return. JSON and YAML mappings keep their document order, so the
// first entry of a mapping is the first entry of the table. JSON keys
// such as "2" become integer keys, the form the json encoder writes
// them in.
package parse
