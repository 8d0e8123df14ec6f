package summarizer

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// SplitText cuts text into fixed-size windows with overlap. The windows
// operate on runes so multi-byte text never splits mid-character.
func SplitText(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - chunkOverlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
