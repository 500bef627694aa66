//go:build !linux

package securerand

var platformCall syscallFunc

func statusCode(err error) int {
	return -1
}
