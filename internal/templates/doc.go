// Package templates provides the project scaffolds behind
// "routefs create".
//
// A scaffold is a named set of files making up a starter content tree.
// File contents are Go text templates using [[ and ]] as delimiters so
// that the {{ }} syntax of the generated page templates passes through
// untouched.
package templates
