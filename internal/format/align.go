package format

// Align4 returns n aligned up to the next 4-byte boundary.
//
// Example:
//
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(5) = 8
func Align4(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// IsAligned reports whether n is a multiple of Alignment.
func IsAligned(n int) bool {
	return n&AlignmentMask == 0
}
