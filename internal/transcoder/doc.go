// Package transcoder invokes ffmpeg to re-encode uploaded media into a
// browser-playable H.264/AAC MP4 with a fixed quality profile.
//
// Encodes stream their progress through ffmpeg's machine-readable
// -progress output, which this package parses into completion fractions
// for the job manager. Failures distinguish a missing ffmpeg binary
// (ErrFFmpegNotFound) from a failed encode (ExitError), the latter
// carrying a bounded tail of the process's error stream.
package transcoder
