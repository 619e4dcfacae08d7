// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ubf/cpu"
	"github.com/ezrec/ubf/internal"
	"github.com/ezrec/ubf/io"
)

const (
	STEP_LIMIT = 1 << 24 // Default step limit for Run.
)

var _emulator_defines = map[string]string{
	"STEP_LIMIT": fmt.Sprintf("%v", STEP_LIMIT),
}

// Emulator state. CPU + program + IO devices. The emulator is the
// external driver of the machine: it performs the load protocol and the
// boot pulse, steps the engine, and drives the far side of the channels
// through its devices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Tape  io.Tape  // Stream-backed channel driver.
	Queue io.Queue // In-memory channel driver.

	Devices []io.Device // Devices stepped after every engine step.
}

// NewEmulator creates a new emulator with the tape device attached.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Devices = []io.Device{&emu.Tape}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset performs the load protocol followed by the boot pulse: one
// addressed byte write per load step (the program image into code
// memory, explicit zeroes over all of data memory), one boot step, and
// one device step so the channel lines are primed before the first
// fetch.
func (emu *Emulator) Reset() (err error) {
	if len(emu.Program.Image) > cpu.CODE_SIZE {
		err = cpu.ErrProgramTooLarge
		return
	}

	if emu.Verbose {
		log.Printf("emulator: load %v code words", len(emu.Program.Image))
	}

	for n, value := range emu.Program.Image {
		emu.Cpu.Load(cpu.TARGET_CODE, uint16(n), value)
	}
	for addr := 0; addr < cpu.DATA_SIZE; addr++ {
		emu.Cpu.Load(cpu.TARGET_DATA, uint16(addr), 0)
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Boot()

	emu.stepDevices()

	return
}

func (emu *Emulator) stepDevices() {
	for _, dev := range emu.Devices {
		dev.Step(&emu.Cpu.In, &emu.Cpu.Out)
	}
}

// Done reports whether the instruction pointer has reached the end of
// the loaded image. The engine itself has no terminal state; this is
// driver policy.
func (emu *Emulator) Done() bool {
	return int(emu.Cpu.Ip) >= len(emu.Program.Image)
}

// Offset returns the source offset of the current instruction.
func (emu *Emulator) Offset() int {
	return emu.Program.OffsetAt(emu.Cpu.Ip)
}

// Tick performs a single step of the machine and then of its devices.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Done() {
		done = true
		return
	}

	emu.Cpu.Step()
	emu.stepDevices()

	done = emu.Done()

	return
}

// Run ticks the machine until the program is done or limit steps have
// elapsed. A limit of 0 means STEP_LIMIT. A run that stops stalled on a
// read with the tape exhausted reports ErrNoInput.
func (emu *Emulator) Run(limit int) (err error) {
	if limit == 0 {
		limit = STEP_LIMIT
	}

	for range limit {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	op := cpu.DecodeOp(emu.Cpu.Code[emu.Cpu.Ip&cpu.CODE_MASK])
	if op == cpu.OP_GET && !emu.Cpu.In.Ready && emu.Tape.Eof {
		err = ErrNoInput
		return
	}

	err = ErrStepLimit

	return
}
