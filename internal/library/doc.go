// Package library reconciles a directory tree with the in-memory catalog.
//
// Each top-level directory of the library root is an album and each matching
// image file directly inside it is a photo named after the file's stem.
// Synchronizer loads the tree (LoadLibrary), copies external files into an
// album (ImportFiles), and writes each photo's description, tags, and date
// back into its file (WriteLibraryMetadata). Batch operations isolate
// failures per file and return them as Outcomes; they only return an error
// when the batch cannot start, for example when another process holds the
// library lock.
package library
