// Command poke is a single-key monitor for driving the kernel core on
// the simulated processor.  It brings up two threads and a
// round-robin policy, then lets you deliver exceptions one at a time
// and watch the run pair and register file move.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-tty"

	"poise/src/hardware/armcm"
	"poise/src/kernel"
	"poise/src/lib/trust"
	"poise/src/reverie"
)

const (
	ramBase = 0x20000000
	ramSize = 0x10000

	infoAddr  = ramBase + 0x000
	tableAddr = ramBase + 0x100
	tcbA      = ramBase + 0x200
	tcbB      = ramBase + 0x280
	codeA     = ramBase + 0x400
	codeB     = ramBase + 0x440
	svcCode   = ramBase + 0x480

	stackATop = ramBase + 0x4000
	stackBTop = ramBase + 0x8000

	doubleService = ramBase + 0x500
)

var ticks, switches int

func main() {
	m := buildMachine()

	t, err := tty.Open()
	if err != nil {
		trust.Fatalf(1, "can't open terminal: %v", err)
	}
	defer t.Close()

	help()
	for {
		r, err := t.ReadRune()
		if err != nil {
			trust.Fatalf(1, "read: %v", err)
		}
		switch r {
		case 't':
			ticks++
			m.Tick()
			trust.Debugf("tick %d delivered", ticks)
			showRun(m)
		case 'p':
			armcm.RaisePendSV()
			m.PendSV()
			showRun(m)
		case 'v':
			m.SetReg(0, uint32(ticks))
			writeSVC(svcCode, 1)
			m.SetPC(svcCode)
			m.SVCall()
			trust.Infof("user service 1 doubled the tick count: R0=%d", m.Reg(0))
		case 'r':
			dumpRegs(m)
		case 'n':
			showRun(m)
		case 's':
			trust.Statsf("poke", "ticks=%d switches=%d", ticks, switches)
		case 'q':
			trust.Infof("bye")
			return
		case 'h', '?':
			help()
		}
	}
}

func help() {
	fmt.Println("poke: t=tick p=pendsv v=user-svc r=regs n=run-pair s=stats q=quit")
}

func buildMachine() *reverie.Machine {
	m := reverie.NewMachine(ramBase, ramSize)
	armcm.Use(m)
	kernel.Bind(infoAddr, tableAddr)
	m.SetVector(armcm.VecSVCall, kernel.SVCHandler)
	m.SetVector(armcm.VecPendSV, kernel.PendSVHandler)
	m.SetVector(armcm.VecSysTick, kernel.SysTickHandler)
	armcm.SetLowestExceptionPriorities()

	// thread A is live, thread B parked and ready
	parkThread(tcbB, stackBTop, codeB, 0xB0000000)
	armcm.Store32(infoAddr+kernel.InfoRunOffset, tcbA)
	armcm.Store32(infoAddr+kernel.InfoRunOffset+4, tcbA)
	m.SetPSP(stackATop)
	m.SetPC(codeA)
	m.SetReg(4, 0xA0000044)

	// round-robin: every tick elects the other thread
	kernel.OnTick = func() {
		curr := armcm.Load32(infoAddr + kernel.InfoRunOffset)
		next := uint32(tcbA)
		if curr == tcbA {
			next = tcbB
		}
		armcm.Store32(infoAddr+kernel.InfoRunOffset+4, next)
	}
	kernel.OnPendSV = func() {}
	kernel.SwitchHelper = func() { switches++ }

	// one-entry user service table
	m.RegisterFunc(doubleService, func(r0, r1, r2, r3 uint32) (uint32, uint32) {
		return r0 * 2, 0
	})
	armcm.Store32(tableAddr, 1)
	armcm.Store32(tableAddr+4, doubleService)

	return m
}

func parkThread(tcb, stackTop, pc, seed uint32) {
	base := stackTop - 32
	armcm.Store32(base+24, pc)
	armcm.Store32(base+28, 0x01000000)
	sp := base - 32
	for i := uint32(0); i < 8; i++ {
		armcm.Store32(sp+4*i, seed+i)
	}
	armcm.Store32(tcb+kernel.ThreadSPOffset, sp)
	armcm.Store8(tcb+kernel.ThreadFrameOffset, 0xFD)
}

func writeSVC(addr uint32, num uint8) {
	armcm.Store8(addr, num)
	armcm.Store8(addr+1, 0xDF)
}

func showRun(m *reverie.Machine) {
	curr, next := armcm.LoadPair(infoAddr + kernel.InfoRunOffset)
	trust.Infof("current=%s next=%s psp=%#08x pc=%#08x",
		tcbName(curr), tcbName(next), m.PSP(), m.PC())
}

func tcbName(tcb uint32) string {
	switch tcb {
	case tcbA:
		return "A"
	case tcbB:
		return "B"
	case 0:
		return "<deleted>"
	}
	return fmt.Sprintf("%#08x", tcb)
}

func dumpRegs(m *reverie.Machine) {
	for i := 0; i < 13; i++ {
		fmt.Fprintf(os.Stdout, "r%-2d=%08x ", i, m.Reg(i))
		if i%4 == 3 {
			fmt.Println()
		}
	}
	fmt.Printf("\npsp=%08x pc=%08x xpsr=%08x\n", m.PSP(), m.PC(), m.XPSR())
}
