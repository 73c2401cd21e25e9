package simd

import "golang.org/x/sys/cpu"

// getCPUFeatures detects AVX2 and SSE4.2 support.
//
// The original stage1_amd64.go/cpuinfo_amd64.go pair in this package declared
// detectStructuralCharsASM/cpuid as hand-written amd64 assembly, but no
// matching .s file ships with this module: there is nothing to link against.
// golang.org/x/sys/cpu already does this detection portably (it is the same
// mechanism entreya-csvquery's internal/simd package gates its AVX2/AVX512
// dispatch on), so feature detection is delegated to it instead of
// reintroducing unverified assembly.
func getCPUFeatures() cpuFeatures {
	return cpuFeatures{
		hasAVX2:   cpu.X86.HasAVX2,
		hasSSE4_2: cpu.X86.HasSSE42,
	}
}
