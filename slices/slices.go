package slices

// Split splits slice into chunks of the specified size. The last chunk may
// be shorter.
func Split[T any](s []T, size int) [][]T {
	var result [][]T

	// A non-positive size would never advance; treat it as "no chunking".
	if size <= 0 {
		if len(s) == 0 {
			return nil
		}
		return [][]T{s}
	}

	for low := 0; low < len(s); low += size {
		high := low + size
		if high > len(s) {
			high = len(s)
		}
		result = append(result, s[low:high])
	}

	return result
}

// Merge flattens the given chunks back into a single slice, preserving
// chunk order.
func Merge[T any](chunks [][]T) []T {
	var total int
	for _, chunk := range chunks {
		total += len(chunk)
	}

	result := make([]T, 0, total)
	for _, chunk := range chunks {
		result = append(result, chunk...)
	}

	return result
}
