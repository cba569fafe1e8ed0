package armcm

// System Control Space registers the kernel and its collaborators
// touch.  Access goes through the bus accessors, so the same code
// runs against the simulator and against the real address map.
const (
	SystCSR   = 0xE000E010
	SystRVR   = 0xE000E014
	SystCVR   = 0xE000E018
	SystCALIB = 0xE000E01C

	ICSR  = 0xE000ED04
	SHPR2 = 0xE000ED1C
	SHPR3 = 0xE000ED20
	CPACR = 0xE000ED88

	// FP extension block
	FPCCR = 0xE000EF34
	FPCAR = 0xE000EF38
)

const (
	ICSRPendSVSet = 1 << 28
	ICSRPendSVClr = 1 << 27
	ICSRPendSTSet = 1 << 26

	SystCSREnable    = 1 << 0
	SystCSRTickInt   = 1 << 1
	SystCSRClkSource = 1 << 2

	FPCCRLspact = 1 << 0
	FPCCRLspen  = 1 << 30
	FPCCRAspen  = 1 << 31
)

// RaisePendSV requests a deferred context switch.  The switch happens
// when PendSV is taken, which is after every currently active
// exception has unwound.
func RaisePendSV() {
	Store32(ICSR, Load32(ICSR)|ICSRPendSVSet)
}

// SetLowestExceptionPriorities parks PendSV and SysTick at the lowest
// priority the part supports so neither can preempt kernel-aware
// code.  SHPR3 holds SysTick in [31:24] and PendSV in [23:16].
func SetLowestExceptionPriorities() {
	Store32(SHPR3, Load32(SHPR3)|0xFFFF0000)
}

// StartSysTick programs the reload value and turns the counter on
// with its interrupt enabled, clocked from the processor.
func StartSysTick(reload uint32) {
	Store32(SystRVR, reload&0x00FFFFFF)
	Store32(SystCVR, 0)
	Store32(SystCSR, SystCSREnable|SystCSRTickInt|SystCSRClkSource)
}
