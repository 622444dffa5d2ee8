package tm32

// SimpleBus is a sparse, map-backed Bus implementation with no memory map
// of its own: any address may be read or written, and Cycle merely
// accumulates a running total. It exists so a host — or a test — can get
// a CPU running without writing a purpose-built Bus first; a real host
// wanting address decoding, ROM protection, or peripheral devices should
// implement Bus directly instead of wrapping this type.
//
// The zero value is ready to use.
type SimpleBus struct {
	mem    map[uint32]uint8
	cycles int
}

// NewSimpleBus returns an empty SimpleBus.
func NewSimpleBus() *SimpleBus {
	return &SimpleBus{mem: make(map[uint32]uint8)}
}

// Read returns the byte at addr, or 0 if nothing has been written there.
func (b *SimpleBus) Read(addr uint32) uint8 {
	if b.mem == nil {
		return 0
	}
	return b.mem[addr]
}

// Write stores val at addr.
func (b *SimpleBus) Write(addr uint32, val uint8) {
	if b.mem == nil {
		b.mem = make(map[uint32]uint8)
	}
	b.mem[addr] = val
}

// Cycle adds n to the bus's running cycle count.
func (b *SimpleBus) Cycle(n int) { b.cycles += n }

// Cycles reports the total number of bus cycles charged so far.
func (b *SimpleBus) Cycles() int { return b.cycles }

// LoadWord writes a little-endian 16-bit instruction word at addr — the
// shape every test fixture needs to place an opcode header.
func (b *SimpleBus) LoadWord(addr uint32, word uint16) {
	b.Write(addr, byte(word))
	b.Write(addr+1, byte(word>>8))
}

// LoadBytes writes data sequentially starting at addr.
func (b *SimpleBus) LoadBytes(addr uint32, data ...uint8) {
	for i, v := range data {
		b.Write(addr+uint32(i), v)
	}
}

// LoadDword writes a little-endian 32-bit value at addr.
func (b *SimpleBus) LoadDword(addr uint32, val uint32) {
	b.Write(addr, byte(val))
	b.Write(addr+1, byte(val>>8))
	b.Write(addr+2, byte(val>>16))
	b.Write(addr+3, byte(val>>24))
}
