// Package catalog is the in-memory entity graph of albums, photos, and tags.
//
// Albums are identified by name; a registry keeps at most one album per name.
// Tags are identified by pointer so TagRegistry.Rename can change a tag's name
// without invalidating references held by photos. Photo membership is
// bidirectional in both directions:
//
//   - a photo belongs to at most one album, and that album's set holds it
//   - a photo's tag set holds a tag exactly when the tag's photo set holds
//     the photo
//
// Every mutation goes through the link/unlink helpers in links.go, which check
// containment on both sides, so repeated or mirrored calls are no-ops. The
// package holds no global state; callers pass a Catalog around explicitly and
// it is not safe for concurrent mutation.
package catalog
