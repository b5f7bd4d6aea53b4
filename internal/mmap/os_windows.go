//go:build windows

package mmap

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("mmap %s: %w", f.Name(), err)
	}
	// The view keeps the mapping object alive.
	defer windows.CloseHandle(h) //nolint:errcheck

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		return nil, nil, fmt.Errorf("mmap %s: %w", f.Name(), err)
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size) //nolint:govet // addr is a mapped view

	unmap := func([]byte) error { return windows.UnmapViewOfFile(addr) }
	return data, unmap, nil
}

func osAdvise([]byte, AccessPattern) error { return nil }
