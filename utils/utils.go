package utils

import (
	"github.com/twmb/murmur3"
)

func HashString(s string) uint64 {
	hash := murmur3.New64()
	_, err := hash.Write([]byte(s))
	if err != nil {
		panic(err)
	}
	return hash.Sum64()
}

// HashSequence hashes an ordered token sequence. Tokens are separated by a
// zero byte so that ["ab", "c"] and ["a", "bc"] hash differently.
func HashSequence(tokens []string) uint64 {
	hash := murmur3.New64()
	for _, token := range tokens {
		_, err := hash.Write([]byte(token))
		if err != nil {
			panic(err)
		}
		_, err = hash.Write([]byte{0})
		if err != nil {
			panic(err)
		}
	}
	return hash.Sum64()
}
