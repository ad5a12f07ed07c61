// Package router resolves a content directory tree into a URL route table.
//
// The filesystem shape of the content tree is the URL shape. Directory
// names encode the segment kind:
//
//	blog/        static segment, matched verbatim
//	[slug]/      dynamic segment, one path component
//	[[path]]/    catch-all segment, remaining path including slashes
//	(group)/     route group, organizes files without a URL segment
//
// Leaf files at well-known names (page.html, route.lua) mark routable
// directories. The Scanner walks the tree once and produces a Table of
// route entries; a Holder publishes whole-table snapshots so concurrent
// readers never observe a half-populated table across a reload.
package router
