package hwrand

const hasAsm = true

// Implemented in rdrand_amd64.s.

func rdrand16() (v uint16, ok bool)
func rdrand32() (v uint32, ok bool)
func rdrand64() (v uint64, ok bool)
func rdseed16() (v uint16, ok bool)
func rdseed32() (v uint32, ok bool)
func rdseed64() (v uint64, ok bool)
