//go:build linux || darwin

package jit

import "golang.org/x/sys/unix"

func pageSize() int { return unix.Getpagesize() }

func mapWritable(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
}

var protectExecutable = func(mem []byte) error {
	return unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC)
}

func unmap(mem []byte) error { return unix.Munmap(mem) }
