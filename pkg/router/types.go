package router

import "net/http"

// Kind distinguishes page routes from API routes.
type Kind string

const (
	KindPage Kind = "page"
	KindAPI  Kind = "api"
)

// Verbs lists the HTTP verbs an API descriptor may export, in the
// lower-case spelling used inside descriptor files.
var Verbs = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// VerbMethod maps a lower-case descriptor verb to its HTTP method name.
// Returns "" for unrecognized verbs.
func VerbMethod(verb string) string {
	switch verb {
	case "get":
		return http.MethodGet
	case "post":
		return http.MethodPost
	case "put":
		return http.MethodPut
	case "patch":
		return http.MethodPatch
	case "delete":
		return http.MethodDelete
	case "head":
		return http.MethodHead
	case "options":
		return http.MethodOptions
	default:
		return ""
	}
}

// Entry is one resolved route. Entries are owned exclusively by the
// Table they were scanned into and are immutable once published.
type Entry struct {
	// Pattern is the resolved URL pattern.
	Pattern Pattern

	// Kind is the content kind (page or api).
	Kind Kind

	// SourceDir is the content-root-relative directory containing the
	// descriptor. It is recorded at scan time because the pattern's
	// filesystem inverse is lossy with respect to group directories.
	SourceDir string

	// Verb is the HTTP method for API entries ("" for pages).
	Verb string
}

// Key returns the table key for the entry: no two entries may share a
// (pattern, verb) pair.
func (e Entry) Key() string {
	return entryKey(e.Pattern.String(), e.Verb)
}

func entryKey(pattern, verb string) string {
	return pattern + "\x00" + verb
}
