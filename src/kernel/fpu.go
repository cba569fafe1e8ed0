//go:build !nofpu

package kernel

// FPv4-SP present: extended frames carry S16-S31 below the hardware
// frame and the deleted-thread path must cancel pending lazy state.
const hasFPU = true
