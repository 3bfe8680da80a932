package truevault

// chunk splits ids into contiguous, order-preserving slices of at most size elements.
// The slices share the backing array of ids.
func chunk(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end:end])
	}
	return chunks
}
