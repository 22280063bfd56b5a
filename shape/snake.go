package shape

import "github.com/ettle/strcase"

// SnakeCase converts a declared variant name to its table key:
// FooBar -> foo_bar, HTTPServer -> http_server, Utf8Value -> utf8_value.
// Acronyms stay one word and digits stay attached to the preceding word.
func SnakeCase(name string) string {
	return strcase.ToSnake(name)
}
