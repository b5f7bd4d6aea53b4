package mmap

import "errors"

// AccessPattern is a hint about how mapped data will be read.
type AccessPattern int

const (
	// AccessDefault gives no advice.
	AccessDefault AccessPattern = iota
	// AccessSequential expects a front-to-back scan, as done by the decoder.
	AccessSequential
	// AccessWillNeed asks the kernel to prefetch the whole file.
	AccessWillNeed
)

var (
	// ErrClosed is returned when reading from a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the file size cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned for negative read offsets.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
