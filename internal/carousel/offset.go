package carousel

// Offset returns the shortest signed circular distance from active to item in
// a ring of n items, in [-n/2, n/2]. For even n the item exactly n/2 away is
// reported on the positive side. Offset returns 0 when n < 1.
func Offset(item, active, n int) int {
	if n < 1 {
		return 0
	}
	d := wrap(item-active, n)
	if d > n/2 {
		d -= n
	}
	return d
}

// wrap maps k into [0, n).
func wrap(k, n int) int {
	return ((k % n) + n) % n
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
