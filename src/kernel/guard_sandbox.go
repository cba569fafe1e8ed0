//go:build sandbox

package kernel

// Sandboxing port: a supervising collaborator can raise exceptions
// above PendSV's priority, so the publish and restore window runs
// with PRIMASK set.
const switchGuard = true
