// Package logs reads the photoalbum log file for the CLI "logs" command.
//
// Last returns the final N lines with bounded memory, and Follow streams
// lines appended after a byte offset until the context ends. Follow copes
// with the file being truncated or not existing yet, which happens when log
// retention prunes it.
package logs
