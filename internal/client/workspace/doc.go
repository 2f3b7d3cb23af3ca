// Package workspace implements the document page: one document shown either
// read-only (Viewing) or as an editable draft (Editing).
//
// The draft is seeded from the last fetched document on BeginEdit and thrown
// away on Cancel. Save patches the document, then creates the pending note,
// then re-fetches the canonical copy; the result says which of those steps
// failed. Tag selection is kept as an id-list only and names are derived on
// demand from the loaded tag collection.
//
// A Workspace is owned by a single goroutine and is not safe for concurrent
// use.
package workspace
