package scan

import (
	"sync"

	"golang.org/x/sys/cpu"
)

var (
	accelOnce   sync.Once
	accelerated bool
)

// hasAcceleratedPath reports whether the wide (64-byte) SWAR stride should
// be preferred over the scalar 8-byte stride. Gated on AVX2 presence the
// same way entreya-csvquery's internal/simd package gates its dispatch,
// even though both paths here are pure Go: the wide stride only pays off
// on CPUs wide enough to keep the unrolled loop in cache-friendly bursts.
func hasAcceleratedPath() bool {
	accelOnce.Do(func() {
		accelerated = cpu.X86.HasAVX2
	})
	return accelerated
}
