// Package portaudio drives a device.Source from a PortAudio output callback.
//
// The stream is opened non-interleaved: each callback receives one float32
// plane per channel, which device.RenderPlanar exposes to the source as a
// planar view. Build with -tags portaudio to link the PortAudio library;
// without the tag every entry point returns device.ErrUnavailable.
package portaudio
