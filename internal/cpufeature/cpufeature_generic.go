//go:build !amd64 && !arm64

package cpufeature

// FastScan is always false on platforms without a dedicated feature
// check; the interpreter's scalar loop is the one true implementation
// there and the fast-scan code path is simply never taken.
var FastScan = false
