// Package kernel is the hard real-time core: the SVC dispatcher, the
// PendSV and SysTick trampolines, and the context-switch tail they
// share.  The three handlers are the only entry points; everything
// they touch outside this package is reached through a raw address
// plus the offset contract, or through one of the collaborator hooks
// below.
//
// The core never allocates, never blocks, and has no recoverable
// error path.  A corrupt run pair is the collaborator's bug and ends
// in a hardware fault, not an error return.
package kernel

// Collaborator hooks.  These are the policy side of the kernel; the
// scheduler facade replaces them during bring-up.  Defaults are
// no-ops so an unconfigured hook behaves like the weak symbol it
// replaces.
var (
	// OnPendSV elects the next runnable thread after a deferred
	// switch request.  It may only mutate the run pair.
	OnPendSV = func() {}

	// OnTick advances kernel time and may elect a new next thread.
	OnTick = func() {}

	// SwitchHelper is the advisory per-switch hook.  It may clobber
	// scratch registers; the tail re-fetches the run pair after it
	// returns.  It must not trigger an exception.
	SwitchHelper = func() {}
)

var (
	infoAddr     uint32
	svcTableAddr uint32
)

// Bind points the core at the collaborator state: the kernel info
// record holding the run pair, and the user SVC table with its count
// in word zero.  Must be called before any of the three handlers can
// fire.
func Bind(info, svcTable uint32) {
	infoAddr = info
	svcTableAddr = svcTable
}

// Present anchors the core in the link image.  Startup code takes its
// address so the linker cannot drop the kernel archive as unused.
var Present byte
