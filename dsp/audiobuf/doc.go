// Package audiobuf provides non-owning, layout-polymorphic views over
// multichannel sample memory.
//
// A mixing engine renders into whatever layout a sound backend demands
// without copying: interleaved (frame-contiguous), channel-contiguous,
// planar (one slice per channel), or a runtime-selected variant with explicit
// strides. All views share the same logical contract:
//
//	v.At(channel, frame)    // read
//	v.Set(channel, frame, x) // write
//	v.Ptr(channel, frame)   // reference into the backing storage
//
// The concrete types [Planar], [Interleaved] and [ChannelContiguous] report
// their contiguity as constants, so bulk-copy fast paths collapse at compile
// time once the generic code is instantiated. [Buffer] picks its layout at
// construction and computes its contiguity from its strides. [Offset] exposes
// the suffix of any view starting at a frame offset.
//
// At, Set and Ptr perform no validation of their own. Out-of-range indices
// either panic through the Go runtime or alias another sample of the same
// backing slice. Use [Load], [Store] and [CheckIndex] where a checked access
// is wanted.
//
// Views never allocate or retain ownership of sample memory; the storage must
// outlive every view constructed over it.
package audiobuf
