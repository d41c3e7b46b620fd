// Package drive is the asset store boundary.
//
// Store abstracts the folder/file operations the renderer needs (list,
// download, upload, folder lookup) so the pipeline never talks to Google
// Drive directly. The production implementation wraps the Drive v3 API with
// OAuth refresh-token credentials; Fake provides an in-memory store for
// tests. Query builds Drive search predicates from typed terms with escaped
// values; callers never concatenate user-controlled names into a query
// string.
//
// Layout resolves the fixed folder structure under the configured root once
// per run and is passed down to every component that needs a folder ID.
package drive
