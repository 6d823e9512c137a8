package remediate

import "strings"

// escapeTSString escapes a value for use inside a TypeScript
// double-quoted string literal.
func escapeTSString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
