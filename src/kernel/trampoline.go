package kernel

// PendSVHandler services the PendSV exception: a context switch
// requested from interrupt context and deferred to the lowest
// priority.  The policy hook elects next, then the shared tail does
// the switch.  PendSV must sit at the lowest exception priority so it
// tail-chains after every pending interrupt and cannot preempt the
// policy's own critical sections.
func PendSVHandler() {
	OnPendSV()
	switchContext()
}

// SysTickHandler services the periodic tick.  The tick hook advances
// kernel time and may elect a new next thread; the shared tail then
// takes care of any switch.
func SysTickHandler() {
	OnTick()
	switchContext()
}
