package llm

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	codec     tokenizer.Codec
	codecOnce sync.Once
	codecErr  error
)

func getCodec() (tokenizer.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return codec, codecErr
}

// EstimateTokens returns the cl100k_base token count for text, falling
// back to a chars/4 approximation if the codec is unavailable.
func EstimateTokens(text string) int {
	c, err := getCodec()
	if err != nil {
		return len(text) / 4
	}

	ids, _, err := c.Encode(text)
	if err != nil {
		return len(text) / 4
	}

	return len(ids)
}
