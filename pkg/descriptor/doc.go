// Package descriptor loads code-bearing content descriptors and exposes
// their well-known capabilities: a data provider, HTTP verb handlers,
// and error/loading fallback handlers.
//
// Descriptors are Lua files executed in an isolated state per load, so
// a syntax error or runtime failure in one file never affects another.
// A native Registry lets Go code claim the same capabilities for a
// content directory at compile time; registry entries shadow the Lua
// file in that directory.
package descriptor
