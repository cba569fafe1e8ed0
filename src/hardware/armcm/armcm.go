// Package armcm is the Cortex-M4F access layer for the kernel core.
// Everything the handlers touch on the processor goes through this
// package: bus loads and stores, the process stack pointer, the
// EXC_RETURN value live in LR during an exception, the callee-saved
// register file, and the indirect call gate for raw function handles.
//
// There are two ports.  The default port routes every operation to an
// installed Machine, which in practice is the simulated processor in
// poise/src/reverie.  The baremetal port (build tag "baremetal")
// resolves bus traffic to plain dereferences and the register
// operations to symbols the startup assembly provides.
package armcm

// Machine is what a port has to supply.  Register numbering follows
// the architecture: Reg takes 0..12 for R0-R12, FPReg takes 0..31 for
// S0-S31 as raw bit patterns.
type Machine interface {
	Load8(addr uint32) uint8
	Load32(addr uint32) uint32
	// LoadPair reads two adjacent words with a single word-aligned
	// access, so callers observe a consistent snapshot.
	LoadPair(addr uint32) (uint32, uint32)
	Store8(addr uint32, v uint8)
	Store32(addr uint32, v uint32)

	PSP() uint32
	SetPSP(v uint32)
	MSP() uint32

	ExcReturn() uint32
	SetExcReturn(v uint32)

	Reg(n int) uint32
	SetReg(n int, v uint32)
	FPReg(n int) uint32
	SetFPReg(n int, v uint32)

	PRIMASK() bool
	SetPRIMASK(on bool)

	// Call invokes the function behind a raw handle with the AAPCS
	// argument registers and returns the R0/R1 result pair.
	Call(fn, r0, r1, r2, r3 uint32) (r0out, r1out uint32)
}

// Exception numbers and their vector table offsets.
const (
	VecSVCall  = 11
	VecPendSV  = 14
	VecSysTick = 15

	VectorOffsetSVC     = 4 * VecSVCall  // 0x2C
	VectorOffsetPendSV  = 4 * VecPendSV  // 0x38
	VectorOffsetSysTick = 4 * VecSysTick // 0x3C
)
