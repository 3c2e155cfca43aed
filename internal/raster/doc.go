// Package raster holds decoded photo pixels and the in-place edits applied to
// them.
//
// A Raster is a width x height grid of 8-bit RGB triples. Scaling and
// thumbnailing return new rasters sized by FitWithin and ThumbnailSize; the
// edit operations (Grayscale, FlipHorizontal, FlipVertical, Blur) mutate the
// receiver and are deterministic functions of its current pixels. Nothing here
// knows about albums, files, or metadata.
package raster
