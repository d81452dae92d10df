// Package vocoder provides a channel vocoder for off-line cross-synthesis.
//
// The spectral envelope of a modulator signal is imposed on a carrier
// signal. The work is split in two layers:
//
//   - [Engine] is the filter-bank capability: analyze both inputs in aligned
//     blocks and write one output sample per input frame. [ChannelEngine] is
//     the built-in implementation (log-spaced band-pass bank, envelope
//     followers, formant shift).
//   - [Vocoder] owns exactly one engine, validates every configuration
//     change before it reaches the engine, sizes output buffers from the
//     frame count and releases the engine on [Vocoder.Close].
//
// A Vocoder is not safe for concurrent use.
package vocoder
