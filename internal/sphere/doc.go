// Package sphere renders Bloch-sphere snapshots to raster images.
//
// A [Sphere] is a stateful surface: points and state vectors accumulate until
// [Sphere.Clear], and [Sphere.Render] draws everything currently held:
//
//   - wireframe (silhouette, equator, meridians) with the far side faded
//   - x, y and z axes
//   - points, drawn with one [PointStyle] for the whole point set
//   - state vectors from the origin
//
// The point style is a single setting applied to every point; setting it
// again restyles points added earlier.
//
// # Themes
//
// Colors come from a [Theme]; "light" is the default and the remaining
// palettes mirror the terminal themes (cyberpunk, retro, minimal, ocean, sunset).
//
// A Sphere is not safe for concurrent use.
package sphere
