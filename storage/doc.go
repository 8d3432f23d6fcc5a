// Package storage provides uniform read/write closures over heterogeneous
// backends, and a packed column backend for fixed-point values.
//
// An Adapter pairs a ReadFunc (index -> value) with a WriteFunc
// ((index, value) -> error). Backends only move values around: a bind.Value
// flows through any Adapter[bind.Value] without the backend knowing how its
// format was synthesized.
//
// Backends:
//   - NewSliceAdapter: fixed-length slice
//   - NewMapAdapter: sparse, goroutine-safe map
//   - Column.Adapter: values packed at their format's word size
//
// Columns serialize to a compact binary form:
//
//	offset  size  field
//	0       4     magic "FXC1"
//	4       1     flags (bit0 signed, bit1 big-endian payload)
//	5       2     integer bits (little-endian)
//	7       1     fractional bits
//	8       1     compression type
//	9       4     value count (little-endian)
//	13      8     xxHash64 of the packed payload (little-endian)
//	21      ...   compressed packed payload
package storage
