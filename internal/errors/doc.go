// Package errors provides structured, actionable error messages for
// routefs.
//
// Errors carry a code, a category, an optional content-file location
// with surrounding source lines, a fix suggestion and a documentation
// link. They format either as a rich multi-line terminal message or as
// a compact single line.
//
// # Error Categories
//
//   - route: URL resolution errors (unresolvable paths, duplicates)
//   - scan: content tree walk errors
//   - descriptor: Lua descriptor load and invocation errors
//   - render: template and layout rendering errors
//   - config: routefs.json errors
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("D001").
//	    WithLocation("content/blog/page.lua", 4, 0).
//	    WithSuggestion("Check the descriptor for syntax errors")
//
//	fmt.Println(err.Format())
package errors
