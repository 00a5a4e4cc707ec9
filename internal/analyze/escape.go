package analyze

import "strings"

// escapeReplacer rewrites carriage returns, newlines and double quotes to
// their two-character literal forms. Order matters: \r before \n so a CRLF
// pair becomes the four characters `\r\n`.
var escapeReplacer = strings.NewReplacer(
	"\r", `\r`,
	"\n", `\n`,
	`"`, `\"`,
)

// EscapeString escapes a value for embedding in the report
func EscapeString(s string) string {
	return escapeReplacer.Replace(s)
}
