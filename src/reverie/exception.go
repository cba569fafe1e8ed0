package reverie

import "poise/src/hardware/armcm"

// Exception entry and return.  The model follows the ARMv7-M rules
// the kernel depends on: an 8-word basic frame, or a 26-word extended
// frame when the thread owns FPU state, with lazy stacking deferring
// the S0-S15 spill until the first FPU instruction in the handler.

const (
	frameBasicBytes    = 8 * 4
	frameExtendedBytes = 26 * 4
	frameFPOffset      = 0x20 // S0 within an extended frame
)

// SetVector installs the handler for an exception number.  The
// kernel's three handlers go at armcm.VecSVCall, armcm.VecPendSV and
// armcm.VecSysTick.
func (m *Machine) SetVector(vec int, h func()) {
	m.handlers[vec] = h
}

// SVCall takes the SVC instruction at the current PC: the frame is
// pushed with a return address just past the instruction, so the
// handler finds the service number at savedPC-2.
func (m *Machine) SVCall() {
	if m.Load8(m.pc+1) != 0xDF {
		m.fault("no SVC instruction at %#08x", m.pc)
	}
	m.enter(armcm.VecSVCall, m.pc+2)
}

// Tick delivers one SysTick exception at the current instruction
// boundary.
func (m *Machine) Tick() {
	m.enter(armcm.VecSysTick, m.pc)
}

// PendSV delivers a PendSV exception immediately, clearing any
// pending request first.
func (m *Machine) PendSV() {
	m.icsr &^= armcm.ICSRPendSVSet
	m.enter(armcm.VecPendSV, m.pc)
}

// PendSVRequested reports whether a deferred switch is latched in
// ICSR.
func (m *Machine) PendSVRequested() bool {
	return m.icsr&armcm.ICSRPendSVSet != 0
}

func (m *Machine) enter(vec int, savedPC uint32) {
	h := m.handlers[vec]
	if h == nil {
		m.fault("unhandled exception %d", vec)
	}
	if m.depth != 0 {
		m.fault("nested exception %d", vec)
	}

	sp := m.psp
	if sp%8 != 0 {
		m.fault("frame base %#08x not 8-byte aligned", sp)
	}

	extended := m.control&ctrlFPCA != 0
	if extended {
		sp -= frameExtendedBytes
		if m.fpccr&armcm.FPCCRLspen != 0 {
			// Reserve only; the spill happens on the first FPU
			// instruction in the handler, if any.
			m.fpccr |= armcm.FPCCRLspact
			m.fpcar = sp + frameFPOffset
		} else {
			for i := 0; i < 16; i++ {
				m.Store32(sp+frameFPOffset+uint32(4*i), m.fpregs[i])
			}
			m.Store32(sp+frameFPOffset+64, m.fpscr)
		}
		m.excReturn = 0xFFFFFFED
	} else {
		sp -= frameBasicBytes
		m.excReturn = 0xFFFFFFFD
	}

	m.Store32(sp+0, m.regs[0])
	m.Store32(sp+4, m.regs[1])
	m.Store32(sp+8, m.regs[2])
	m.Store32(sp+12, m.regs[3])
	m.Store32(sp+16, m.regs[12])
	m.Store32(sp+20, m.lr)
	m.Store32(sp+24, savedPC)
	m.Store32(sp+28, m.xpsr)
	m.psp = sp
	m.control &^= ctrlFPCA

	m.depth++
	h()
	m.depth--
	m.exceptionReturn()

	// tail-chain a switch the handler deferred
	for m.icsr&armcm.ICSRPendSVSet != 0 {
		m.icsr &^= armcm.ICSRPendSVSet
		m.enter(armcm.VecPendSV, m.pc)
	}
}

func (m *Machine) exceptionReturn() {
	exc := m.excReturn
	if exc>>8 != 0xFFFFFF {
		m.fault("bad EXC_RETURN %#08x", exc)
	}
	if exc&0x8 == 0 || exc&0x4 == 0 {
		m.fault("only thread-mode PSP returns are modeled (EXC_RETURN %#08x)", exc)
	}

	sp := m.psp
	m.regs[0] = m.Load32(sp + 0)
	m.regs[1] = m.Load32(sp + 4)
	m.regs[2] = m.Load32(sp + 8)
	m.regs[3] = m.Load32(sp + 12)
	m.regs[12] = m.Load32(sp + 16)
	m.lr = m.Load32(sp + 20)
	m.pc = m.Load32(sp + 24)
	m.xpsr = m.Load32(sp + 28)

	if exc&0x10 == 0 {
		if m.fpccr&armcm.FPCCRLspact != 0 {
			// Lazy state was never spilled: the registers still
			// hold the thread's values, the reservation just goes
			// away.
			m.fpccr &^= armcm.FPCCRLspact
		} else {
			for i := 0; i < 16; i++ {
				m.fpregs[i] = m.Load32(sp + frameFPOffset + uint32(4*i))
			}
			m.fpscr = m.Load32(sp + frameFPOffset + 64)
		}
		m.control |= ctrlFPCA
		sp += frameExtendedBytes
	} else {
		m.control &^= ctrlFPCA
		sp += frameBasicBytes
	}
	m.psp = sp
}

// resolveLazy spills S0-S15 and FPSCR into the reserved frame area if
// a lazy stacking window is open.
func (m *Machine) resolveLazy() {
	if m.fpccr&armcm.FPCCRLspact == 0 {
		return
	}
	m.fpccr &^= armcm.FPCCRLspact
	for i := 0; i < 16; i++ {
		m.Store32(m.fpcar+uint32(4*i), m.fpregs[i])
	}
	m.Store32(m.fpcar+64, m.fpscr)
}
