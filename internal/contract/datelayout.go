// SPDX-License-Identifier: Apache-2.0

package contract

import (
	"fmt"
	"regexp"
	"strings"
)

// dateLayout is the compiled form of a declarative date pattern such as
// YYYY-MM-DD: the equivalent Go time layout plus a shape regexp that
// enforces exact digit widths and separators, which time.Parse alone
// does not.
type dateLayout struct {
	layout string
	shape  *regexp.Regexp
}

var dateTokens = []struct {
	token  string
	layout string
	shape  string
}{
	{"YYYY", "2006", `\d{4}`},
	{"MM", "01", `\d{2}`},
	{"DD", "02", `\d{2}`},
	{"HH", "15", `\d{2}`},
	{"mm", "04", `\d{2}`},
	{"SS", "05", `\d{2}`},
}

// compileDateLayout translates a declarative pattern into a dateLayout.
// Any alphabetic run that is not a recognized token is an error so a
// typo like YYY-MM-DD fails at load time, not per record.
func compileDateLayout(pattern string) (dateLayout, error) {
	var layout, shape strings.Builder
	rest := pattern
	for rest != "" {
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(rest, tok.token) {
				layout.WriteString(tok.layout)
				shape.WriteString(tok.shape)
				rest = rest[len(tok.token):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		c := rest[0]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return dateLayout{}, fmt.Errorf("unsupported date pattern token at %q", rest)
		}
		layout.WriteByte(c)
		shape.WriteString(regexp.QuoteMeta(string(c)))
		rest = rest[1:]
	}
	re, err := regexp.Compile("^" + shape.String() + "$")
	if err != nil {
		return dateLayout{}, err
	}
	return dateLayout{layout: layout.String(), shape: re}, nil
}
