package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ubf/io"
)

// Channel is an I/O channel line triple.
type Channel = io.Channel

// Memory geometry. Both pointer registers are exactly wide enough to
// address their memory, so address arithmetic wraps at these sizes.
const (
	CODE_SIZE = 1024 // Code memory entries.
	CODE_MASK = CODE_SIZE - 1
	DATA_SIZE = 32768 // Data memory entries.
	DATA_MASK = DATA_SIZE - 1
)

// LOOP_SPAN is the fixed overhead added to a loop's body word count to
// form its jump-distance literal: the forward literal itself, the
// backward jump, and the backward literal. A body longer than
// 255-LOOP_SPAN words cannot be encoded.
const LOOP_SPAN = 3

var _cpu_defines = map[string]string{
	"CODE_SIZE": fmt.Sprintf("%v", CODE_SIZE),
	"DATA_SIZE": fmt.Sprintf("%v", DATA_SIZE),
	"LOOP_SPAN": fmt.Sprintf("%v", LOOP_SPAN),
}

// Cpu is the simulation context for the μBF processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip uint16 // Instruction pointer, modulo CODE_SIZE.
	Dp uint16 // Data pointer, modulo DATA_SIZE.

	Code [CODE_SIZE]byte // Code memory.
	Data [DATA_SIZE]byte // Data memory.

	In  Channel // Input channel. The engine is the consumer.
	Out Channel // Output channel. The engine is the producer.

	Ticks int // Steps executed since the last boot.
}

// NewCpu creates a new CPU with cleared memories and registers.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("  ip: %03X\n", cpu.Ip)
	text += fmt.Sprintf("  dp: %04X\n", cpu.Dp)
	text += fmt.Sprintf("cell: %02X\n", cpu.Data[cpu.Dp&DATA_MASK])
	text += fmt.Sprintf("  in: %v\n", cpu.In)
	text += fmt.Sprintf(" out: %v\n", cpu.Out)

	return
}

// Load applies a single load-mode write: one addressed byte into one of
// the two memories. Load never executes and never touches the pointer
// registers. The engine performs no implicit zeroing; the driver must
// write every address it wants initialized.
func (cpu *Cpu) Load(target Target, addr uint16, value byte) {
	switch target {
	case TARGET_CODE:
		cpu.Code[addr&CODE_MASK] = value
	case TARGET_DATA:
		cpu.Data[addr&DATA_MASK] = value
	}
}

// Boot is the boot pulse: the pointer registers reset to zero. Memory
// and channel lines are untouched, and nothing executes this step.
func (cpu *Cpu) Boot() {
	if cpu.Verbose {
		log.Printf("cpu: boot")
	}

	cpu.Ip = 0
	cpu.Dp = 0
	cpu.Ticks = 0
}

// Step advances logical state by exactly one instruction. All reads
// observe pre-step state; all writes commit together before Step
// returns. Step never blocks: an instruction whose handshake condition
// is unmet leaves Ip unchanged and is retried on the next call.
//
// There is no terminal state. The driver stops calling Step when it is
// done with the machine.
func (cpu *Cpu) Step() {
	// Fetch.
	op := DecodeOp(cpu.Code[cpu.Ip&CODE_MASK])
	addr := cpu.Code[(cpu.Ip+1)&CODE_MASK] // Jump distance, for OP_JZ/OP_JMP only.

	// Read.
	operand := cpu.Data[cpu.Dp&DATA_MASK]

	if cpu.Verbose {
		log.Printf("cpu: %03x: %v", cpu.Ip, op)
	}

	// Output data-ready is a per-step assertion.
	cpu.Out.Ready = false

	// Compute against the pre-step snapshot.
	next_ip := (cpu.Ip + 1) & CODE_MASK
	next_dp := cpu.Dp
	value := operand
	store := false

	switch op {
	case OP_INC:
		value = operand + 1
		store = true
	case OP_DEC:
		value = operand - 1
		store = true
	case OP_NEXT:
		next_dp = (cpu.Dp + 1) & DATA_MASK
	case OP_PREV:
		next_dp = (cpu.Dp - 1) & DATA_MASK
	case OP_PUT:
		if cpu.Out.Accept {
			cpu.Out.Ready = true
			cpu.Out.Data = operand
		} else {
			next_ip = cpu.Ip // Stall; the same put retries next step.
		}
	case OP_GET:
		if cpu.In.Ready {
			value = cpu.In.Data
			store = true
			cpu.In.Accept = false // One-shot acceptance.
		} else {
			cpu.In.Accept = true
			next_ip = cpu.Ip // Stall; the same get retries next step.
		}
	case OP_JZ:
		if operand == 0 {
			next_ip = (cpu.Ip + 1 + uint16(addr)) & CODE_MASK
		} else {
			next_ip = (cpu.Ip + 2) & CODE_MASK
		}
	case OP_JMP:
		next_ip = (cpu.Ip + 1 - uint16(addr)) & CODE_MASK
	}

	// Commit.
	if store {
		cpu.Data[cpu.Dp&DATA_MASK] = value
	}
	cpu.Ip = next_ip
	cpu.Dp = next_dp

	cpu.Ticks += 1
}
