// Package watch reports changes under the library root. Bursts of file
// system events are collapsed into one callback after a quiet period, so a
// bulk copy into an album triggers a single rescan.
package watch
