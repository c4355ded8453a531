package xlbind

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isSeparator reports whether r splits a header label into words.
func isSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '/'
}

// Normalize converts a header label into its canonical field name: the
// lower-camel-case join of the label's words with everything but ASCII letters
// and digits removed. "First Name", "first_name" and "FIRST-NAME" all become
// "firstName". Every label goes through the same steps, so labels that differ
// only in case agree: "firstName" and "FIRSTNAME" both become "firstname".
// The result is therefore not a fixed point when it holds more than one word.
//
// Non-ASCII letters take part in case mapping but are dropped by the final
// ASCII filter, so "Café Name" becomes "cafName".
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	for _, word := range strings.FieldsFunc(raw, isSeparator) {
		first, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(first))
		b.WriteString(strings.ToLower(word[size:]))
	}

	out := make([]byte, 0, b.Len())
	for _, c := range []byte(b.String()) {
		if isASCIIAlnum(c) {
			out = append(out, c)
		}
	}
	if len(out) > 0 && out[0] >= 'A' && out[0] <= 'Z' {
		out[0] += 'a' - 'A'
	}
	return string(out)
}

// foldName reduces a name to the case-insensitive form used when an exact
// canonical name finds no match. foldName("First Name") and
// foldName("firstName") are both "firstname".
func foldName(s string) string {
	return strings.ToLower(Normalize(s))
}

func isASCIIAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
