//go:build !amd64

package hwrand

const hasAsm = false

func rdrand16() (uint16, bool) { return 0, false }
func rdrand32() (uint32, bool) { return 0, false }
func rdrand64() (uint64, bool) { return 0, false }
func rdseed16() (uint16, bool) { return 0, false }
func rdseed32() (uint32, bool) { return 0, false }
func rdseed64() (uint64, bool) { return 0, false }
