// Package textutil normalizes free-text fields from legacy sources into a
// consistent UTF-8 form.
package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// ToUTF8 coerces a string into NFC-normalized UTF-8. Inputs that are not
// valid UTF-8 are assumed to be Windows-1252, the encoding the legacy Book
// exports were produced in; bytes that survive neither interpretation are
// dropped.
func ToUTF8(s string) string {
	if !utf8.ValidString(s) {
		if decoded, err := charmap.Windows1252.NewDecoder().String(s); err == nil {
			s = decoded
		} else {
			s = strings.ToValidUTF8(s, "")
		}
	}

	return norm.NFC.String(s)
}
