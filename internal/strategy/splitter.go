package strategy

import "fmt"

// Split partitions a total quantity into chunks no larger than maxChunk.
// All chunks equal maxChunk except possibly the last, which holds the
// remainder. The chunk sum always equals the total.
func Split(total, maxChunk int) ([]int, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: total quantity must be positive, got %d", ErrInvalidSplit, total)
	}
	if maxChunk <= 0 {
		return nil, fmt.Errorf("%w: split size must be positive, got %d", ErrInvalidSplit, maxChunk)
	}

	numChunks := (total + maxChunk - 1) / maxChunk
	chunks := make([]int, 0, numChunks)
	remaining := total
	for remaining > 0 {
		c := maxChunk
		if remaining < maxChunk {
			c = remaining
		}
		chunks = append(chunks, c)
		remaining -= c
	}
	return chunks, nil
}
