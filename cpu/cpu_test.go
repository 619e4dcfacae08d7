package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// loadImage writes a code image starting at address 0, load-protocol style.
func loadImage(cpu *Cpu, image ...byte) {
	for n, value := range image {
		cpu.Load(TARGET_CODE, uint16(n), value)
	}
}

func TestIncDecRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		cell byte
	}){
		{"zero", 0x00},
		{"one", 0x01},
		{"mid", 0x7f},
		{"wrap", 0xff},
	}

	for _, entry := range table {
		cpu := NewCpu()
		loadImage(cpu, byte(OP_INC), byte(OP_DEC))
		cpu.Load(TARGET_DATA, 0, entry.cell)
		cpu.Boot()

		cpu.Step()
		assert.Equal(entry.cell+1, cpu.Data[0], entry.name)
		assert.Equal(uint16(1), cpu.Ip, entry.name)

		cpu.Step()
		assert.Equal(entry.cell, cpu.Data[0], entry.name)
		assert.Equal(uint16(2), cpu.Ip, entry.name)
	}
}

func TestPointerWrap(t *testing.T) {
	assert := assert.New(t)

	// ptr_dec from 0 wraps to the top of data memory.
	cpu := NewCpu()
	loadImage(cpu, byte(OP_PREV))
	cpu.Boot()
	cpu.Step()
	assert.Equal(uint16(DATA_MASK), cpu.Dp)
	assert.Equal(uint16(1), cpu.Ip)

	// ptr_inc from the top wraps back to 0.
	cpu = NewCpu()
	loadImage(cpu, byte(OP_NEXT))
	cpu.Boot()
	cpu.Dp = DATA_MASK
	cpu.Step()
	assert.Equal(uint16(0), cpu.Dp)
}

func TestIpWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Load(TARGET_CODE, CODE_MASK, byte(OP_INC))
	cpu.Boot()
	cpu.Ip = CODE_MASK

	cpu.Step()
	assert.Equal(uint16(0), cpu.Ip)
	assert.Equal(byte(1), cpu.Data[0])
}

func TestJz(t *testing.T) {
	assert := assert.New(t)

	// Zero operand: skip one past the matching jmp's literal.
	cpu := NewCpu()
	loadImage(cpu, byte(OP_JZ), 5)
	cpu.Boot()
	cpu.Step()
	assert.Equal(uint16(6), cpu.Ip)

	// Non-zero operand: fall into the body, past the literal.
	cpu = NewCpu()
	loadImage(cpu, byte(OP_JZ), 5)
	cpu.Load(TARGET_DATA, 0, 1)
	cpu.Boot()
	cpu.Step()
	assert.Equal(uint16(2), cpu.Ip)
}

func TestJmp(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Load(TARGET_CODE, 10, byte(OP_JMP))
	cpu.Load(TARGET_CODE, 11, 5)
	cpu.Boot()
	cpu.Ip = 10

	// Branch back to the position of the corresponding jz.
	cpu.Step()
	assert.Equal(uint16(6), cpu.Ip)
}

func TestPutBackpressure(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadImage(cpu, byte(OP_PUT))
	cpu.Load(TARGET_DATA, 0, 0x41)
	cpu.Boot()

	// Consumer cannot accept: no data-ready, no advance.
	cpu.Step()
	assert.False(cpu.Out.Ready)
	assert.Equal(uint16(0), cpu.Ip)

	// Consumer can accept: emit and advance, both on the same step.
	cpu.Out.Accept = true
	cpu.Step()
	assert.True(cpu.Out.Ready)
	assert.Equal(byte(0x41), cpu.Out.Data)
	assert.Equal(uint16(1), cpu.Ip)
}

func TestGetStall(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadImage(cpu, byte(OP_GET))
	cpu.Load(TARGET_DATA, 0, 7)
	cpu.Boot()

	// No input available: cell untouched, no advance, can-accept raised.
	cpu.Step()
	assert.Equal(byte(7), cpu.Data[0])
	assert.Equal(uint16(0), cpu.Ip)
	assert.True(cpu.In.Accept)

	// Input available: cell overwritten, advance by one, can-accept
	// dropped on the accepting step.
	cpu.In.Ready = true
	cpu.In.Data = 0x42
	cpu.Step()
	assert.Equal(byte(0x42), cpu.Data[0])
	assert.Equal(uint16(1), cpu.Ip)
	assert.False(cpu.In.Accept)
}

func TestStrayLiteral(t *testing.T) {
	assert := assert.New(t)

	// A jump-distance literal reached as an opcode executes whatever
	// its low 3 bits decode to. 0xFB decodes to ptr_dec.
	cpu := NewCpu()
	loadImage(cpu, 0xFB)
	cpu.Boot()
	cpu.Step()
	assert.Equal(uint16(DATA_MASK), cpu.Dp)
	assert.Equal(uint16(1), cpu.Ip)
}

func TestBoot(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Ip = 0x123
	cpu.Dp = 0x1234
	cpu.Data[5] = 99
	cpu.Boot()

	assert.Equal(uint16(0), cpu.Ip)
	assert.Equal(uint16(0), cpu.Dp)
	assert.Equal(byte(99), cpu.Data[5]) // Boot performs no memory writes.
}

func TestOpString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("+", OP_INC.String())
	assert.Equal("]", OP_JMP.String())
	assert.Equal("code", TARGET_CODE.String())
}
