package chunking

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TiktokenCodec bounds chunk length in BPE tokens. The embedder tokenizes
// on its own, so this codec only has to be deterministic and lossless, not
// identical to the embedding model's vocabulary.
type TiktokenCodec struct {
	enc *tiktoken.Tiktoken
}

func NewTiktokenCodec(encoding string) (*TiktokenCodec, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load %q token encoding: %w", encoding, err)
	}
	return &TiktokenCodec{enc: enc}, nil
}

func (c *TiktokenCodec) Encode(text string) []int {
	return c.enc.Encode(text, nil, nil)
}

func (c *TiktokenCodec) Decode(tokens []int) string {
	return c.enc.Decode(tokens)
}
