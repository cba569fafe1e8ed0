package kernel

import "poise/src/hardware/armcm"

// switchContext is the tail shared by SVCHandler, PendSVHandler and
// SysTickHandler.  It parks the outgoing thread's callee-saved
// context below its hardware frame, publishes next as current, and
// rebuilds the incoming thread's context so the exception return
// lands in it.
//
// The fast path is a no-op: if the policy left the run pair equal,
// the handler returns with the caller's EXC_RETURN untouched and the
// caller's registers bitwise intact.
func switchContext() {
	curr, next := armcm.LoadPair(infoAddr + InfoRunOffset)
	if curr == next {
		return
	}

	exc := armcm.ExcReturn()
	if curr != 0 {
		sp := armcm.PSP()
		sp -= 8 * 4
		for i := 0; i < 8; i++ {
			armcm.Store32(sp+uint32(4*i), armcm.Reg(4+i))
		}
		if hasFPU && exc&ExcReturnFrameBasic == 0 {
			// Touching S16-S31 here forces any pending lazy
			// stacking of S0-S15 into the reserved frame area
			// first, exactly as VSTMDB would.
			sp -= 16 * 4
			for i := 0; i < 16; i++ {
				armcm.Store32(sp+uint32(4*i), armcm.FPReg(16+i))
			}
		}
		armcm.Store32(curr+ThreadSPOffset, sp)
		armcm.Store8(curr+ThreadFrameOffset, uint8(exc))
	} else if hasFPU && exc&ExcReturnFrameBasic == 0 {
		// The outgoing thread was deleted while it owned an
		// extended frame.  The FPU still expects to spill lazy
		// state into that stack; kill the pending spill before the
		// memory is reused.
		armcm.Store32(armcm.FPCCR, armcm.Load32(armcm.FPCCR)&^armcm.FPCCRLspact)
	}

	// From the publish to the PSP install the kernel state and the
	// live stack disagree; with the sandbox port this window runs
	// with interrupts masked, otherwise PendSV's lowest priority
	// keeps kernel-aware code out.
	if switchGuard {
		armcm.SetPRIMASK(true)
	}

	SwitchHelper()
	// Re-fetch the pair: the helper is allowed to move next.
	_, next = armcm.LoadPair(infoAddr + InfoRunOffset)
	armcm.Store32(infoAddr+InfoRunOffset, next)

	sp := armcm.Load32(next + ThreadSPOffset)
	exc = ExcReturnBase | uint32(armcm.Load8(next+ThreadFrameOffset))
	if hasFPU && exc&ExcReturnFrameBasic == 0 {
		for i := 0; i < 16; i++ {
			armcm.SetFPReg(16+i, armcm.Load32(sp+uint32(4*i)))
		}
		sp += 16 * 4
	}
	for i := 0; i < 8; i++ {
		armcm.SetReg(4+i, armcm.Load32(sp+uint32(4*i)))
	}
	sp += 8 * 4
	armcm.SetPSP(sp)
	armcm.SetExcReturn(exc)

	if switchGuard {
		armcm.SetPRIMASK(false)
	}
}
