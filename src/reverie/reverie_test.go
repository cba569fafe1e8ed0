package reverie

import (
	"testing"

	"poise/src/hardware/armcm"
)

const (
	base = 0x20000000
	size = 0x8000
)

func testMachine() *Machine {
	m := NewMachine(base, size)
	m.SetPSP(base + 0x4000)
	m.SetPC(base + 0x100)
	return m
}

func TestBasicFramePushAndPop(t *testing.T) {
	m := testMachine()
	for i := 0; i < 13; i++ {
		m.SetReg(i, 0x100+uint32(i))
	}
	m.SetLR(0xAAAA5555)

	var sp, exc uint32
	m.SetVector(armcm.VecSysTick, func() {
		sp = m.PSP()
		exc = m.ExcReturn()
	})
	m.Tick()

	if exc != 0xFFFFFFFD {
		t.Errorf("EXC_RETURN = %#x, want 0xFFFFFFFD", exc)
	}
	if sp != base+0x4000-32 {
		t.Errorf("frame base = %#x, want %#x", sp, uint32(base+0x4000-32))
	}
	if got := m.Load32(sp + 0); got != 0x100 {
		t.Errorf("saved R0 = %#x, want 0x100", got)
	}
	if got := m.Load32(sp + 16); got != 0x100+12 {
		t.Errorf("saved R12 = %#x, want %#x", got, 0x100+12)
	}
	if got := m.Load32(sp + 20); got != 0xAAAA5555 {
		t.Errorf("saved LR = %#x, want 0xAAAA5555", got)
	}
	if got := m.Load32(sp + 24); got != base+0x100 {
		t.Errorf("saved PC = %#x, want %#x", got, uint32(base+0x100))
	}
	if m.PSP() != base+0x4000 {
		t.Errorf("PSP after return = %#x, want %#x", m.PSP(), uint32(base+0x4000))
	}
	if m.PC() != base+0x100 {
		t.Errorf("PC after return = %#x, want %#x", m.PC(), uint32(base+0x100))
	}
}

func TestLazyStackingReservesWithoutSpilling(t *testing.T) {
	m := testMachine()
	m.EnableFPContext()
	m.SetFPReg(3, 0x40800000)

	var exc, fpccr, fpcar, reserved uint32
	m.SetVector(armcm.VecSysTick, func() {
		exc = m.ExcReturn()
		fpccr = m.Load32(armcm.FPCCR)
		fpcar = m.Load32(armcm.FPCAR)
		reserved = m.Load32(m.PSP() + 0x20 + 3*4)
	})
	m.Tick()

	if exc != 0xFFFFFFED {
		t.Errorf("EXC_RETURN = %#x, want 0xFFFFFFED", exc)
	}
	if fpccr&armcm.FPCCRLspact == 0 {
		t.Errorf("LSPACT not set on extended entry with lazy stacking")
	}
	if fpcar != base+0x4000-104+0x20 {
		t.Errorf("FPCAR = %#x, want %#x", fpcar, uint32(base+0x4000-104+0x20))
	}
	if reserved == 0x40800000 {
		t.Errorf("S3 was spilled eagerly despite lazy stacking")
	}
	if !m.FPContext() {
		t.Errorf("FP context not restored on extended return")
	}
}

func TestLazySpillResolvesOnFirstFPUTouch(t *testing.T) {
	m := testMachine()
	m.EnableFPContext()
	m.SetFPReg(3, 0x40800000)

	var spilled uint32
	m.SetVector(armcm.VecSysTick, func() {
		_ = m.FPReg(16) // any FPU instruction resolves the spill
		if m.Load32(armcm.FPCCR)&armcm.FPCCRLspact != 0 {
			t.Errorf("LSPACT still set after FPU touch in handler")
		}
		spilled = m.Load32(m.Load32(armcm.FPCAR) + 3*4)
	})
	m.Tick()

	if spilled != 0x40800000 {
		t.Errorf("spilled S3 = %#x, want 0x40800000", spilled)
	}
	if m.FPReg(3) != 0x40800000 {
		t.Errorf("S3 = %#x after return, want 0x40800000", m.FPReg(3))
	}
}

func TestPendSVLatchAndTailChain(t *testing.T) {
	m := testMachine()
	order := ""
	m.SetVector(armcm.VecSVCall, func() {
		m.Store32(armcm.ICSR, armcm.ICSRPendSVSet)
		if !m.PendSVRequested() {
			t.Errorf("ICSR write did not latch PendSV")
		}
		order += "svc "
	})
	m.SetVector(armcm.VecPendSV, func() { order += "pendsv" })

	m.Store8(base+0x100, 0x00)
	m.Store8(base+0x101, 0xDF)
	m.SVCall()

	if order != "svc pendsv" {
		t.Errorf("dispatch order %q, want \"svc pendsv\"", order)
	}
	if m.PendSVRequested() {
		t.Errorf("pend bit survived the tail-chained PendSV")
	}
}

func TestPendSVClearByWrite(t *testing.T) {
	m := testMachine()
	m.Store32(armcm.ICSR, armcm.ICSRPendSVSet)
	if !m.PendSVRequested() {
		t.Fatalf("set bit did not latch")
	}
	m.Store32(armcm.ICSR, armcm.ICSRPendSVClr)
	if m.PendSVRequested() {
		t.Errorf("clear bit did not unlatch")
	}
}

func TestCallGate(t *testing.T) {
	m := testMachine()
	m.RegisterFunc(0x1001, func(r0, r1, r2, r3 uint32) (uint32, uint32) {
		return r0 + r1, r2 + r3
	})
	a, b := m.Call(0x1001, 1, 2, 3, 4)
	if a != 3 || b != 7 {
		t.Errorf("call gate returned (%d,%d), want (3,7)", a, b)
	}
}
