package securerand

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

var platformCall syscallFunc = func(p []byte, nonBlocking bool) (int, error) {
	flags := 0
	if nonBlocking {
		flags |= unix.GRND_NONBLOCK
	}
	return unix.Getrandom(p, flags)
}

// statusCode extracts the errno of a failed call, or -1.
func statusCode(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return -1
}
