package util

// Clamp normalizes skip/take query values: skip is never negative and take
// falls back to def, capped at 100.
func Clamp(skip, take, def int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 || take > 100 {
		take = def
	}
	return skip, take
}
