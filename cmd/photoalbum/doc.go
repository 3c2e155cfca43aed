// Command photoalbum manages a directory-backed photo library from the
// command line. Every invocation loads the library from disk, applies one
// operation, and writes changed metadata back into the photo files.
package main
