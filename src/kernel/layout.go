package kernel

import "unsafe"

// The collaborator records, declared here so the offset contract can
// be checked against a real layout at build time.  Handles crossing
// into the core are raw 32-bit addresses; the core itself never
// dereferences any field outside ThreadSPOffset, ThreadFrameOffset
// and InfoRunOffset.  All reference fields are uint32 handles, never
// host pointers, so the layout is identical on the target and under
// the simulator.

// Thread is the thread control block.  The core reads and writes SP
// and StackFrame while the thread is parked; everything else belongs
// to the thread and scheduler facades.
type Thread struct {
	ID    uint8
	State uint8
	Flags uint8
	Attr  uint8

	Name       uint32
	ThreadNext uint32
	ThreadPrev uint32
	DelayNext  uint32
	DelayPrev  uint32
	ThreadJoin uint32
	Delay      uint32

	Priority     int8
	PriorityBase int8

	// StackFrame mirrors the low byte of EXC_RETURN for the parked
	// context.  Bit 4 set: basic 8-word frame.  Bit 4 clear: the
	// frame is extended and S16-S31 sit below it.
	StackFrame   uint8
	FlagsOptions uint8

	WaitFlags   uint32
	ThreadFlags uint32
	MutexList   uint32
	StackMem    uint32
	StackSize   uint32

	// SP is the parked stack pointer.  Only meaningful while the
	// thread is not the running thread; the running thread's stack
	// pointer is the live PSP.
	SP uint32

	ThreadAddr uint32
}

// Info is the process-wide kernel state record.  The core touches
// only the run pair, and only ever writes RunCurr.
type Info struct {
	OSID    uint32
	Version uint32

	KernelState   uint8
	KernelBlocked uint8
	KernelPendSV  uint8
	KernelProtect uint8

	TickIRQn int32
	Tick     uint32

	Idle  uint32
	Timer uint32

	// RunCurr/RunNext are read as one aligned pair by the core.
	RunCurr uint32
	RunNext uint32

	ReadyList uint32
	DelayList uint32
}

// Build-time offset checks.  A drift between these layouts and the
// generated constants refuses to compile in either direction.
var _ [unsafe.Offsetof(Thread{}.SP) - ThreadSPOffset]byte
var _ [ThreadSPOffset - unsafe.Offsetof(Thread{}.SP)]byte
var _ [unsafe.Offsetof(Thread{}.StackFrame) - ThreadFrameOffset]byte
var _ [ThreadFrameOffset - unsafe.Offsetof(Thread{}.StackFrame)]byte
var _ [unsafe.Offsetof(Info{}.RunCurr) - InfoRunOffset]byte
var _ [InfoRunOffset - unsafe.Offsetof(Info{}.RunCurr)]byte
var _ [unsafe.Offsetof(Info{}.RunNext) - (InfoRunOffset + 4)]byte
var _ [(InfoRunOffset + 4) - unsafe.Offsetof(Info{}.RunNext)]byte
