package av1

// negDeinterleave inverts the AV1 spec's segment_id delta encoding: diff was
// produced by encoding (segment - ref) zig-zagged around ref so that small
// magnitude differences (in either direction) get small diff values. This
// recovers segment from (diff, ref, max).
func negDeinterleave(diff, ref, max int) int {
	if ref == 0 {
		return diff
	}
	if ref >= max-1 {
		return max - diff - 1
	}
	if 2*ref < max {
		if diff <= 2*ref {
			if diff&1 != 0 {
				return ref + ((diff + 1) >> 1)
			}
			return ref - (diff >> 1)
		}
		return diff
	}
	if diff <= 2*(max-ref-1) {
		if diff&1 != 0 {
			return ref + ((diff + 1) >> 1)
		}
		return ref - (diff >> 1)
	}
	return max - (diff + 1)
}
