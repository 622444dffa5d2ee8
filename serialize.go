package tm32

import (
	"encoding/binary"
	"errors"
)

// cpuSerializeVersion is incremented whenever the binary layout changes.
const cpuSerializeVersion = 1

// cpuSerializeSize is the number of bytes produced by Serialize.
const cpuSerializeSize = 44

// SerializeSize returns the number of bytes needed for Serialize.
func (c *CPU) SerializeSize() int { return cpuSerializeSize }

// Serialize writes a snapshot of the CPU's architectural state into buf,
// which must be at least SerializeSize() bytes. The bus reference and the
// per-instruction scratch registers (sa/da/sd/ci) are not included, since
// they hold no meaning outside an in-progress Step. Returns an error if
// the buffer is too small.
func (c *CPU) Serialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("tm32: serialize buffer too small")
	}

	buf[0] = cpuSerializeVersion
	be := binary.BigEndian
	off := 1

	for _, v := range c.regs {
		be.PutUint32(buf[off:], v)
		off += 4
	}

	be.PutUint32(buf[off:], c.pc)
	off += 4
	be.PutUint32(buf[off:], c.sp)
	off += 4
	be.PutUint32(buf[off:], c.flags)
	off += 4

	buf[off] = c.ec
	off++
	be.PutUint32(buf[off:], c.ea)
	off += 4

	be.PutUint32(buf[off:], c.ifReg)
	off += 4
	be.PutUint32(buf[off:], c.ie)
	off += 4

	buf[off] = boolByte(c.ime)
	off++
	buf[off] = boolByte(c.ei)
	off++

	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Deserialize restores CPU state from buf, which must be at least
// SerializeSize() bytes and carry a matching version byte. The bus
// reference is left untouched; per-instruction scratch registers are
// cleared, matching the state Step expects at the top of a cycle.
func (c *CPU) Deserialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("tm32: deserialize buffer too small")
	}
	if buf[0] != cpuSerializeVersion {
		return errors.New("tm32: unsupported serialize version")
	}

	be := binary.BigEndian
	off := 1

	for i := range c.regs {
		c.regs[i] = be.Uint32(buf[off:])
		off += 4
	}

	c.pc = be.Uint32(buf[off:])
	off += 4
	c.sp = be.Uint32(buf[off:])
	off += 4
	c.flags = be.Uint32(buf[off:])
	off += 4

	c.ec = buf[off]
	off++
	c.ea = be.Uint32(buf[off:])
	off += 4

	c.ifReg = be.Uint32(buf[off:])
	off += 4
	c.ie = be.Uint32(buf[off:])
	off += 4

	c.ime = buf[off] != 0
	off++
	c.ei = buf[off] != 0
	off++

	c.ip, c.sa, c.da, c.sd, c.ci = 0, 0, 0, 0, 0

	return nil
}
