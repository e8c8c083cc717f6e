package internal

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Deduplicator keeps block ids unique within a notebook
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// EnsureUniqueBlockIDs gives every repeated block id after its first
// occurrence a fresh id and returns how many blocks were reassigned.
// A cell copied in the host editor carries its pocket along, which is how
// duplicates usually appear.
func (d *Deduplicator) EnsureUniqueBlockIDs(blocks []Block) int {
	seen := make(map[string]bool, len(blocks))
	reassigned := 0

	for i := range blocks {
		id := blocks[i].ID
		if id != "" && !seen[id] {
			seen[id] = true
			continue
		}

		fresh := GenerateBlockID()
		for seen[fresh] {
			fresh = GenerateBlockID()
		}
		LogWarn("Block %d reuses id %q, assigning %s", i, id, fresh)
		blocks[i].ID = fresh
		seen[fresh] = true
		reassigned++
	}

	return reassigned
}

// BlockFingerprint hashes a block's kind and content
func BlockFingerprint(block *Block) string {
	h := blake3.New()

	h.Write([]byte(block.Type))
	h.Write([]byte{0})
	h.Write([]byte(block.Content))

	return hex.EncodeToString(h.Sum(nil))
}
