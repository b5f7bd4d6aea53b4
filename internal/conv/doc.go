// Package conv provides checked integer conversions for binary encoding.
//
// The snapshot codec writes lengths and counts into fixed-width fields.
// These helpers refuse values that would silently wrap, and convert
// lengths read from untrusted input back into Go ints.
package conv
