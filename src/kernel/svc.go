package kernel

import "poise/src/hardware/armcm"

// SVCHandler services the SVC exception.  The service number is the
// immediate of the SVC instruction, read from the byte two below the
// saved PC.  Number zero is a kernel service call: R0-R3 of the saved
// frame are the arguments, R12 is the service function, the result
// pair is written back into the frame, and the context-switch tail
// runs.  Positive numbers index the user service table and return
// without rescheduling.
func SVCHandler() {
	exc := armcm.ExcReturn()
	sp := armcm.PSP()
	if exc&ExcReturnPSP == 0 {
		sp = armcm.MSP()
	}

	num := armcm.Load8(armcm.Load32(sp+framePC) - 2)
	if num != 0 {
		userSVC(uint32(num), sp)
		return
	}

	r0, r1 := armcm.Call(armcm.Load32(sp+frameR12),
		armcm.Load32(sp+frameR0),
		armcm.Load32(sp+frameR1),
		armcm.Load32(sp+frameR2),
		armcm.Load32(sp+frameR3))
	armcm.Store32(sp+frameR0, r0)
	armcm.Store32(sp+frameR1, r1)

	switchContext()
}

// userSVC dispatches a positive service number through the user
// table.  Word zero of the table is the entry count; numbers beyond
// it are ignored and the caller sees its registers unchanged.
func userSVC(num, sp uint32) {
	if num > armcm.Load32(svcTableAddr) {
		return
	}
	fn := armcm.Load32(svcTableAddr + 4*num)
	r0, _ := armcm.Call(fn,
		armcm.Load32(sp+frameR0),
		armcm.Load32(sp+frameR1),
		armcm.Load32(sp+frameR2),
		armcm.Load32(sp+frameR3))
	armcm.Store32(sp+frameR0, r0)
}
