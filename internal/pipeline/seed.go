package pipeline

import (
	"encoding/binary"
	"hash/fnv"
)

// DeriveSeed hashes the coordinates of one attempt into the seed of its
// generator (FNV-1a, 64 bit).
func DeriveSeed(runSeed uint64, pack, subcategory string, index, attempt int) uint64 {
	h := fnv.New64a()

	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], runSeed)
	h.Write(buf[:])

	h.Write([]byte(pack))
	h.Write([]byte{0})
	h.Write([]byte(subcategory))
	h.Write([]byte{0})

	binary.LittleEndian.PutUint64(buf[:], uint64(index))
	h.Write(buf[:])

	binary.LittleEndian.PutUint64(buf[:], uint64(attempt))
	h.Write(buf[:])

	return h.Sum64()
}
