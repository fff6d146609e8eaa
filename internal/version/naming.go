package version

import (
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// fieldKey maps a Go field name to its document key (Version -> version).
func fieldKey(name string) string {
	return strcase.ToLowerCamel(name)
}

// documentKey lower-cases the first rune of a document key so that both
// "Version" and "version" bind to the same field. The rest of the key is kept.
func documentKey(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || unicode.IsLower(r) {
		return key
	}

	return string(unicode.ToLower(r)) + key[size:]
}
