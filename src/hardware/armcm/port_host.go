//go:build !baremetal

package armcm

// The host port.  A Machine implementation (normally the reverie
// simulator) is installed once before any handler can run, the same
// way the external runtime gets installed at startup on real metal.

var machine Machine

// Use installs the machine every accessor below routes to.
func Use(m Machine) {
	machine = m
}

func Load8(addr uint32) uint8            { return machine.Load8(addr) }
func Load32(addr uint32) uint32          { return machine.Load32(addr) }
func LoadPair(addr uint32) (a, b uint32) { return machine.LoadPair(addr) }
func Store8(addr uint32, v uint8)        { machine.Store8(addr, v) }
func Store32(addr uint32, v uint32)      { machine.Store32(addr, v) }

func PSP() uint32     { return machine.PSP() }
func SetPSP(v uint32) { machine.SetPSP(v) }
func MSP() uint32     { return machine.MSP() }

func ExcReturn() uint32     { return machine.ExcReturn() }
func SetExcReturn(v uint32) { machine.SetExcReturn(v) }

func Reg(n int) uint32        { return machine.Reg(n) }
func SetReg(n int, v uint32)  { machine.SetReg(n, v) }
func FPReg(n int) uint32      { return machine.FPReg(n) }
func SetFPReg(n int, v uint32) { machine.SetFPReg(n, v) }

func PRIMASK() bool      { return machine.PRIMASK() }
func SetPRIMASK(on bool) { machine.SetPRIMASK(on) }

func Call(fn, r0, r1, r2, r3 uint32) (uint32, uint32) {
	return machine.Call(fn, r0, r1, r2, r3)
}
