// Package preflight provides readiness checks for the filesystem paths the
// photo library depends on.
//
// The CLI "photoalbum check" command runs RunAll and prints one line per
// result; mutating commands call CheckDirectoryAccess on the library root
// before they start.
package preflight
