package io

import (
	"io"
)

// Tape couples the machine's channels to sequential byte streams: Input
// feeds the input channel, Output drains the output channel. A nil or
// exhausted Input leaves the input channel idle and sets Eof.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Eof bool // No more input bytes are available.
}

var _ Device = (*Tape)(nil)

// Step drives one handshake step on both channels.
func (tape *Tape) Step(in *Channel, out *Channel) {
	// Output side: a Writer can always take another byte.
	out.Accept = true
	if out.Ready {
		if tape.Output != nil {
			tape.Output.Write([]byte{out.Data})
		}
		out.Ready = false
	}

	// Input side: offer a byte only while the machine is asking.
	if !in.Accept {
		in.Ready = false
		return
	}
	if in.Ready || tape.Eof {
		return
	}
	if tape.Input == nil {
		tape.Eof = true
		return
	}
	var one [1]byte
	if _, err := tape.Input.Read(one[:]); err != nil {
		tape.Eof = true
		return
	}
	in.Ready = true
	in.Data = one[0]
}
