package kernel

import (
	"testing"

	"poise/src/hardware/armcm"
	"poise/src/reverie"
)

// The collaborator side of every test: a machine, the info record and
// SVC table in RAM, and parked thread images built by hand the way
// the thread facade would build them.

const (
	ramBase = 0x20000000
	ramSize = 0x10000

	testInfo     = ramBase + 0x000
	testSVCTable = ramBase + 0x100
	tcb1         = ramBase + 0x200
	tcb2         = ramBase + 0x280
	tcb3         = ramBase + 0x300
	codeAddr     = ramBase + 0x400
	idlePC       = ramBase + 0x480

	stack1Top = ramBase + 0x4000
	stack2Top = ramBase + 0x8000
	stack3Top = ramBase + 0xC000
)

func newTestMachine(t *testing.T) *reverie.Machine {
	t.Helper()
	m := reverie.NewMachine(ramBase, ramSize)
	armcm.Use(m)
	Bind(testInfo, testSVCTable)
	m.SetVector(armcm.VecSVCall, SVCHandler)
	m.SetVector(armcm.VecPendSV, PendSVHandler)
	m.SetVector(armcm.VecSysTick, SysTickHandler)
	OnPendSV = func() {}
	OnTick = func() {}
	SwitchHelper = func() {}
	m.SetPSP(stack1Top)
	m.SetPC(idlePC)
	return m
}

func setRun(curr, next uint32) {
	armcm.Store32(testInfo+InfoRunOffset, curr)
	armcm.Store32(testInfo+InfoRunOffset+4, next)
}

func runPair() (uint32, uint32) {
	return armcm.LoadPair(testInfo + InfoRunOffset)
}

// parkThread lays out a parked thread: hardware frame at the top of
// its stack, callee-saved image below, TCB fields pointing at it.
// Register slots are seeded so tests can recognize whose context is
// live.
func parkThread(tcb, stackTop, pc, seed uint32, extended bool) {
	frameBytes := uint32(32)
	if extended {
		frameBytes = 104
	}
	base := stackTop - frameBytes
	armcm.Store32(base+0, seed+0)   // R0
	armcm.Store32(base+4, seed+1)   // R1
	armcm.Store32(base+8, seed+2)   // R2
	armcm.Store32(base+12, seed+3)  // R3
	armcm.Store32(base+16, seed+12) // R12
	armcm.Store32(base+20, seed+14) // LR
	armcm.Store32(base+24, pc)
	armcm.Store32(base+28, 0x01000000)
	frame := uint8(0xFD)
	if extended {
		for i := uint32(0); i < 16; i++ {
			armcm.Store32(base+0x20+4*i, seed+0x200+i) // S0-S15
		}
		armcm.Store32(base+0x60, seed+0x2F0) // FPSCR
		frame = 0xED
	}

	sp := base - 32
	for i := uint32(0); i < 8; i++ {
		armcm.Store32(sp+4*i, seed+0x40+i) // R4-R11
	}
	if extended {
		sp -= 64
		for i := uint32(0); i < 16; i++ {
			armcm.Store32(sp+4*i, seed+0x100+i) // S16-S31
		}
	}

	armcm.Store32(tcb+ThreadSPOffset, sp)
	armcm.Store8(tcb+ThreadFrameOffset, frame)
}

// seedLiveRegs gives the running thread a recognizable register file.
func seedLiveRegs(m *reverie.Machine, seed uint32) {
	for i := 0; i < 13; i++ {
		m.SetReg(i, seed+uint32(i))
	}
	m.SetLR(seed + 14)
}

func TestOffsetsMatchGeneratedContract(t *testing.T) {
	// layout.go enforces these at compile time; this spells out the
	// ABI numbers so a change shows up as a test diff too.
	if ThreadSPOffset != 56 {
		t.Errorf("thread sp offset moved: %d", ThreadSPOffset)
	}
	if ThreadFrameOffset != 34 {
		t.Errorf("thread stack-frame offset moved: %d", ThreadFrameOffset)
	}
	if InfoRunOffset != 28 {
		t.Errorf("run pair offset moved: %d", InfoRunOffset)
	}
}
