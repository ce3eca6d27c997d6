// Package media turns a state trajectory into a video or an animated GIF.
//
// Both assemblers export one frame per state into a locked frame directory
// (see package frames), encode, and then release the directory. Frames are
// removed only after the output file was written; a failed assembly leaves
// them in place and reports [frames.CleanupRetained].
//
// Video goes through an ffmpeg subprocess with fixed codec settings. GIFs
// are encoded in-process in one of two variants: [VariantLossySafe] skips
// unreadable frames and uses default timing, [VariantFramePreserving]
// requires every frame and applies a uniform delay.
package media
