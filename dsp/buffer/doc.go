// Package buffer provides owning multichannel float64 storage and a pool for
// allocation-friendly processing. A Buffer hands out audiobuf views of its
// storage in any layout; the views stay valid until the next Resize.
package buffer
