package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for effect hosts.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid/detached)
//	0x10000000 - 0x1FFFFFFF: Characters
type ObjectIDGenerator struct {
	nextCharacterID atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextCharacterID.Store(0x10000000)
	return gen
}

// NextCharacterID generates next unique character object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextCharacterID() uint32 {
	return g.nextCharacterID.Add(1)
}

