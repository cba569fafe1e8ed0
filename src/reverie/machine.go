// Package reverie is an instruction-free model of a Cortex-M4F: the
// register file, the banked stack pointers, a flat RAM window, the
// handful of System Control Space registers the kernel touches, and
// the exception entry/return machinery including FPU lazy stacking.
// It does not execute instructions; code drives it by raising
// exceptions and poking state, which is all the kernel core needs to
// be exercised end to end.
package reverie

import (
	"encoding/binary"
	"fmt"

	"poise/src/hardware/armcm"
)

const (
	ctrlSPSel = 1 << 1
	ctrlFPCA  = 1 << 2
)

// Callee is a function reachable through a raw handle from the call
// gate: AAPCS argument registers in, R0/R1 pair out.
type Callee func(r0, r1, r2, r3 uint32) (uint32, uint32)

// Machine is one simulated processor plus its RAM window.
type Machine struct {
	ramBase uint32
	ram     []byte

	regs [13]uint32 // R0-R12
	lr   uint32     // thread-mode LR
	pc   uint32
	xpsr uint32

	msp, psp  uint32
	excReturn uint32
	control   uint32
	primask   bool

	fpregs [32]uint32
	fpscr  uint32

	icsr   uint32
	shpr2  uint32
	shpr3  uint32
	cpacr  uint32
	fpccr  uint32
	fpcar  uint32
	systCS uint32
	systRV uint32
	systCV uint32

	handlers [16]func()
	funcs    map[uint32]Callee
	depth    int
}

// NewMachine builds a machine with RAM mapped at base for size bytes.
// Threads run on the PSP and lazy FPU stacking starts enabled, which
// is the reset state the kernel expects.
func NewMachine(base uint32, size int) *Machine {
	return &Machine{
		ramBase: base,
		ram:     make([]byte, size),
		xpsr:    0x01000000, // thumb
		control: ctrlSPSel,
		fpccr:   armcm.FPCCRAspen | armcm.FPCCRLspen,
		funcs:   make(map[uint32]Callee),
	}
}

var _ armcm.Machine = (*Machine)(nil)

func (m *Machine) fault(format string, args ...interface{}) {
	panic("reverie: " + fmt.Sprintf(format, args...))
}

func (m *Machine) ramIndex(addr uint32, n int) int {
	if addr < m.ramBase || uint64(addr)+uint64(n) > uint64(m.ramBase)+uint64(len(m.ram)) {
		m.fault("bus fault at %#08x", addr)
	}
	return int(addr - m.ramBase)
}

const scsFirst, scsLast = 0xE000E000, 0xE000EFFF

func (m *Machine) Load8(addr uint32) uint8 {
	return m.ram[m.ramIndex(addr, 1)]
}

func (m *Machine) Store8(addr uint32, v uint8) {
	m.ram[m.ramIndex(addr, 1)] = v
}

func (m *Machine) Load32(addr uint32) uint32 {
	if addr >= scsFirst && addr <= scsLast {
		return m.scsLoad(addr)
	}
	if addr%4 != 0 {
		m.fault("unaligned word load at %#08x", addr)
	}
	i := m.ramIndex(addr, 4)
	return binary.LittleEndian.Uint32(m.ram[i:])
}

func (m *Machine) Store32(addr uint32, v uint32) {
	if addr >= scsFirst && addr <= scsLast {
		m.scsStore(addr, v)
		return
	}
	if addr%4 != 0 {
		m.fault("unaligned word store at %#08x", addr)
	}
	i := m.ramIndex(addr, 4)
	binary.LittleEndian.PutUint32(m.ram[i:], v)
}

// LoadPair needs only word alignment, like LDRD; Load32 enforces it.
func (m *Machine) LoadPair(addr uint32) (uint32, uint32) {
	return m.Load32(addr), m.Load32(addr + 4)
}

func (m *Machine) scsLoad(addr uint32) uint32 {
	switch addr {
	case armcm.ICSR:
		return m.icsr
	case armcm.SHPR2:
		return m.shpr2
	case armcm.SHPR3:
		return m.shpr3
	case armcm.CPACR:
		return m.cpacr
	case armcm.FPCCR:
		return m.fpccr
	case armcm.FPCAR:
		return m.fpcar
	case armcm.SystCSR:
		return m.systCS
	case armcm.SystRVR:
		return m.systRV
	case armcm.SystCVR:
		return m.systCV
	}
	m.fault("unimplemented system register %#08x", addr)
	return 0
}

func (m *Machine) scsStore(addr uint32, v uint32) {
	switch addr {
	case armcm.ICSR:
		// write-one-to-set/clear semantics for the PendSV bits
		if v&armcm.ICSRPendSVSet != 0 {
			m.icsr |= armcm.ICSRPendSVSet
		}
		if v&armcm.ICSRPendSVClr != 0 {
			m.icsr &^= armcm.ICSRPendSVSet
		}
	case armcm.SHPR2:
		m.shpr2 = v
	case armcm.SHPR3:
		m.shpr3 = v
	case armcm.CPACR:
		m.cpacr = v
	case armcm.FPCCR:
		m.fpccr = v
	case armcm.FPCAR:
		m.fpcar = v
	case armcm.SystCSR:
		m.systCS = v
	case armcm.SystRVR:
		m.systRV = v & 0x00FFFFFF
	case armcm.SystCVR:
		m.systCV = 0 // any write clears
	default:
		m.fault("unimplemented system register %#08x", addr)
	}
}

func (m *Machine) PSP() uint32     { return m.psp }
func (m *Machine) SetPSP(v uint32) { m.psp = v }
func (m *Machine) MSP() uint32     { return m.msp }

func (m *Machine) ExcReturn() uint32     { return m.excReturn }
func (m *Machine) SetExcReturn(v uint32) { m.excReturn = v }

func (m *Machine) Reg(n int) uint32       { return m.regs[n] }
func (m *Machine) SetReg(n int, v uint32) { m.regs[n] = v }

// FPReg and SetFPReg model FPU instructions touching the register
// file: if a lazy stacking window is open, the pending S0-S15 spill
// resolves into the reserved frame area first, as the hardware would
// on the first FPU instruction inside a handler.
func (m *Machine) FPReg(n int) uint32 {
	m.resolveLazy()
	return m.fpregs[n]
}

func (m *Machine) SetFPReg(n int, v uint32) {
	m.resolveLazy()
	m.fpregs[n] = v
}

func (m *Machine) PRIMASK() bool       { return m.primask }
func (m *Machine) SetPRIMASK(on bool)  { m.primask = on }

func (m *Machine) Call(fn, r0, r1, r2, r3 uint32) (uint32, uint32) {
	f, ok := m.funcs[fn]
	if !ok {
		m.fault("call through unregistered handle %#08x", fn)
	}
	return f(r0, r1, r2, r3)
}

// RegisterFunc makes fn callable through the call gate at the given
// handle.  Handles share the address space with RAM but are never
// dereferenced as data.
func (m *Machine) RegisterFunc(handle uint32, fn Callee) {
	m.funcs[handle] = fn
}

// Thread-mode register access for tests and monitors.

func (m *Machine) PC() uint32       { return m.pc }
func (m *Machine) SetPC(v uint32)   { m.pc = v }
func (m *Machine) LR() uint32       { return m.lr }
func (m *Machine) SetLR(v uint32)   { m.lr = v }
func (m *Machine) XPSR() uint32     { return m.xpsr }
func (m *Machine) SetXPSR(v uint32) { m.xpsr = v }

// EnableFPContext marks the running thread as owning FPU state, so
// the next exception entry pushes (or lazily reserves) an extended
// frame.
func (m *Machine) EnableFPContext() { m.control |= ctrlFPCA }

// FPContext reports whether the running thread owns FPU state.
func (m *Machine) FPContext() bool { return m.control&ctrlFPCA != 0 }

// Snapshot is the full thread-visible register state, for whole-file
// comparisons in tests.
type Snapshot struct {
	R     [13]uint32
	LR    uint32
	PC    uint32
	XPSR  uint32
	PSP   uint32
	S     [32]uint32
	FPSCR uint32
}

// Snap captures the thread-visible register state.
func (m *Machine) Snap() Snapshot {
	return Snapshot{
		R:     m.regs,
		LR:    m.lr,
		PC:    m.pc,
		XPSR:  m.xpsr,
		PSP:   m.psp,
		S:     m.fpregs,
		FPSCR: m.fpscr,
	}
}
