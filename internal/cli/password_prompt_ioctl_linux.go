//go:build linux

package cli

import "golang.org/x/sys/unix"

// ioctl requests used to read and write the terminal line discipline.
const (
	getTermiosRequest = unix.TCGETS
	setTermiosRequest = unix.TCSETS
)
