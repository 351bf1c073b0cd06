//go:build arm64

package cpufeature

import "golang.org/x/sys/cpu"

// FastScan is true when NEON is available, which is unconditionally true
// on arm64 — kept as a feature check (rather than a hard-coded true) for
// symmetry with the amd64 build and in case a future narrower stride
// needs a real feature gate.
var FastScan = cpu.ARM64.HasASIMD
