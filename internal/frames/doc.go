// Package frames writes and reads the numbered PNG snapshots of an export.
//
// Frames live in a [Dir], a locked directory holding frame_0.png through
// frame_{N-1}.png. The directory is released only through [Dir.Release],
// which removes the frames once the caller has committed a successful
// assembly and keeps them (reporting [CleanupRetained]) otherwise.
//
// [Exporter.Export] renders one frame per state with the cumulative point
// history; [Load] and [Collect] read them back, reporting each missing frame
// as a [*MissingFrameError] and applying a [Policy].
package frames
