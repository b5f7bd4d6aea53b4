//go:build unix

package mmap

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED) //nolint:gosec // fd fits in int
	if err != nil {
		return nil, nil, fmt.Errorf("mmap %s: %w", f.Name(), err)
	}
	return data, unix.Munmap, nil
}

var madvise = map[AccessPattern]int{
	AccessSequential: unix.MADV_SEQUENTIAL,
	AccessWillNeed:   unix.MADV_WILLNEED,
}

func osAdvise(data []byte, pattern AccessPattern) error {
	advice, ok := madvise[pattern]
	if !ok {
		advice = unix.MADV_NORMAL
	}

	// EINVAL means the kernel ignores the hint for this mapping.
	if err := unix.Madvise(data, advice); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
