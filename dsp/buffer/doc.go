// Package buffer provides fixed-capacity sample accumulators that turn
// arbitrarily sized chunks of interleaved PCM into whole analysis frames.
// Frames are handed to a callback synchronously and never overlap.
package buffer
