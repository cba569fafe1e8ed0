//go:build baremetal

package armcm

import "unsafe"

// The metal port.  Bus traffic is plain dereferencing; the special
// register and register-file operations resolve to symbols the
// port's startup assembly provides.

//go:nosplit
func Load8(addr uint32) uint8 {
	return *(*uint8)(unsafe.Pointer(uintptr(addr)))
}

//go:nosplit
func Load32(addr uint32) uint32 {
	return *(*uint32)(unsafe.Pointer(uintptr(addr)))
}

// LoadPair compiles to LDRD on this target, so the pair is observed
// atomically with respect to interrupts.
//
//go:nosplit
func LoadPair(addr uint32) (uint32, uint32) {
	p := (*[2]uint32)(unsafe.Pointer(uintptr(addr)))
	return p[0], p[1]
}

//go:nosplit
func Store8(addr uint32, v uint8) {
	*(*uint8)(unsafe.Pointer(uintptr(addr))) = v
}

//go:nosplit
func Store32(addr uint32, v uint32) {
	*(*uint32)(unsafe.Pointer(uintptr(addr))) = v
}

//go:linkname PSP _read_psp
//go:nosplit
func PSP() uint32

//go:linkname SetPSP _write_psp
//go:nosplit
func SetPSP(v uint32)

//go:linkname MSP _read_msp
//go:nosplit
func MSP() uint32

//go:linkname ExcReturn _read_exc_return
//go:nosplit
func ExcReturn() uint32

//go:linkname SetExcReturn _write_exc_return
//go:nosplit
func SetExcReturn(v uint32)

//go:linkname Reg _read_reg
//go:nosplit
func Reg(n int) uint32

//go:linkname SetReg _write_reg
//go:nosplit
func SetReg(n int, v uint32)

//go:linkname FPReg _read_fpreg
//go:nosplit
func FPReg(n int) uint32

//go:linkname SetFPReg _write_fpreg
//go:nosplit
func SetFPReg(n int, v uint32)

//go:linkname PRIMASK _read_primask
//go:nosplit
func PRIMASK() bool

//go:linkname SetPRIMASK _write_primask
//go:nosplit
func SetPRIMASK(on bool)

//go:linkname Call _call4
//go:nosplit
func Call(fn, r0, r1, r2, r3 uint32) (uint32, uint32)
