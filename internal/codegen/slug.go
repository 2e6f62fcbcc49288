package codegen

import "strings"

// Slug lowercases s and replaces each whitespace run with a single hyphen.
// Leading and trailing whitespace is dropped; every other character is kept.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Targets.
const (
	TargetStatic   = "static"
	TargetScaffold = "scaffold"
)

// FileName maps an export target and sub-key to the literal download name.
// Unknown pairs yield "".
func FileName(target, key string) string {
	switch target {
	case TargetStatic:
		return "index.html"
	case TargetScaffold:
		for _, st := range ScaffoldTemplates() {
			if st.Key == key {
				return st.FileName
			}
		}
	}
	return ""
}
