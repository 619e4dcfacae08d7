// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ubf/cpu"
	"github.com/ezrec/ubf/io"
)

// Script is a starlark-scripted external driver for the machine. The
// machine constants from Defines() are predeclared, along with:
//
//	boot()             perform the load protocol and the boot pulse
//	step(n=1)          step the machine n times; returns the instruction pointer
//	run(limit=0)       tick until done or limit; returns True when done
//	send(value, ...)   queue bytes for the input channel
//	recv()             next collected output byte, or None
//	output()           all collected output, as a string
//	peek(addr)         read a data memory cell
//	poke(addr, value)  load-mode write to a data memory cell
//	ip()               instruction pointer
//	dp()               data pointer
//
// A Script drives the channels through the emulator's Queue device; the
// tape is detached.
type Script struct {
	Emulator *Emulator
}

// NewScript attaches a script driver to the emulator, replacing its
// device list with the in-memory queue.
func NewScript(emu *Emulator) (script *Script) {
	emu.Devices = []io.Device{&emu.Queue}

	script = &Script{
		Emulator: emu,
	}

	return
}

// Run executes a starlark driver program. filename names the script;
// src may be nil (read the file), a string, or a byte slice. The
// script's globals are returned for the caller to inspect.
func (script *Script) Run(filename string, src any) (globals starlark.StringDict, err error) {
	thread := starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{}
	for key, str := range script.Emulator.Defines() {
		value, nerr := strconv.Atoi(str)
		if nerr != nil {
			// Non-integer defines are not visible to scripts.
			continue
		}
		pred[key] = starlark.MakeInt(value)
	}
	for name, fn := range script.builtins() {
		pred[name] = starlark.NewBuiltin(name, fn)
	}

	globals, err = starlark.ExecFileOptions(&opts, &thread, filename, src, pred)

	return
}

type builtinFunc func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func (script *Script) builtins() map[string]builtinFunc {
	return map[string]builtinFunc{
		"boot":   script.boot,
		"step":   script.step,
		"run":    script.run,
		"send":   script.send,
		"recv":   script.recv,
		"output": script.output,
		"peek":   script.peek,
		"poke":   script.poke,
		"ip":     script.ipReg,
		"dp":     script.dpReg,
	}
}

func (script *Script) boot(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if err := script.Emulator.Reset(); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (script *Script) step(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	count := 1
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &count); err != nil {
		return nil, err
	}
	for range count {
		if _, err := script.Emulator.Tick(); err != nil {
			return nil, err
		}
	}
	return starlark.MakeInt(int(script.Emulator.Cpu.Ip)), nil
}

func (script *Script) run(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	limit := 0
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &limit); err != nil {
		return nil, err
	}
	err := script.Emulator.Run(limit)
	switch err {
	case nil:
		return starlark.True, nil
	case ErrStepLimit, ErrNoInput:
		return starlark.False, nil
	}
	return nil, err
}

func (script *Script) send(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	for _, arg := range args {
		value, err := starlark.AsInt32(arg)
		if err != nil {
			return nil, err
		}
		if err = script.Emulator.Queue.Feed(byte(value)); err != nil {
			return nil, err
		}
	}
	return starlark.None, nil
}

func (script *Script) recv(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	value, ok := script.Emulator.Queue.Pop()
	if !ok {
		return starlark.None, nil
	}
	return starlark.MakeInt(int(value)), nil
}

func (script *Script) output(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(script.Emulator.Queue.Drain()), nil
}

func (script *Script) peek(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	addr := 0
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr); err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(script.Emulator.Cpu.Data[uint16(addr)&cpu.DATA_MASK])), nil
}

func (script *Script) poke(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	addr := 0
	value := 0
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &addr, &value); err != nil {
		return nil, err
	}
	script.Emulator.Cpu.Load(cpu.TARGET_DATA, uint16(addr), byte(value))
	return starlark.None, nil
}

func (script *Script) ipReg(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(script.Emulator.Cpu.Ip)), nil
}

func (script *Script) dpReg(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(script.Emulator.Cpu.Dp)), nil
}
