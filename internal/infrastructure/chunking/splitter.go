// Package chunking splits document text into bounded token windows.
//
// Windows are contiguous and non-overlapping, so context straddling a
// chunk boundary is lost. That recall trade-off is accepted for the
// corpus sizes this service targets.
package chunking

// Codec converts text to token ids and back. Decode(Encode(text)) must
// reproduce text exactly, otherwise chunk boundaries corrupt the source.
type Codec interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

const defaultMaxTokens = 500

type TokenSplitter struct {
	codec     Codec
	maxTokens int
}

func NewTokenSplitter(codec Codec, maxTokens int) *TokenSplitter {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &TokenSplitter{
		codec:     codec,
		maxTokens: maxTokens,
	}
}

// Split tiles the token sequence into windows of at most maxTokens tokens
// and decodes each window back to text. Only the last window may be
// shorter. Empty input produces no chunks.
func (s *TokenSplitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	tokens := s.codec.Encode(text)
	if len(tokens) == 0 {
		return nil
	}

	out := make([]string, 0, len(tokens)/s.maxTokens+1)
	for start := 0; start < len(tokens); start += s.maxTokens {
		end := start + s.maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		out = append(out, s.codec.Decode(tokens[start:end]))
	}
	return out
}
