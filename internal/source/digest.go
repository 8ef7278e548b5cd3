package source

import (
	"crypto/sha256"
)

// Digest — фиксированный 256-битный хеш содержимого файла.
type Digest [sha256.Size]byte

// ContentDigest хеширует сырые байты файла.
func ContentDigest(content []byte) Digest {
	return sha256.Sum256(content)
}
