package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTapeOutput(t *testing.T) {
	assert := assert.New(t)

	buffer := &bytes.Buffer{}
	tape := &Tape{Output: buffer}
	in := &Channel{}
	out := &Channel{}

	// Nothing pending: the tape just advertises Accept.
	tape.Step(in, out)
	assert.True(out.Accept)
	assert.Equal(0, buffer.Len())

	out.Ready = true
	out.Data = 'A'
	tape.Step(in, out)
	assert.False(out.Ready)
	assert.Equal("A", buffer.String())
}

func TestTapeInput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("AB")}
	in := &Channel{}
	out := &Channel{}

	// No Accept, no offer.
	tape.Step(in, out)
	assert.False(in.Ready)

	// The machine asks; the tape offers one byte and holds it until
	// Accept drops.
	in.Accept = true
	tape.Step(in, out)
	assert.True(in.Ready)
	assert.Equal(byte('A'), in.Data)
	tape.Step(in, out)
	assert.Equal(byte('A'), in.Data)

	// Consumed: Accept drops, the offer is withdrawn, and the next ask
	// gets the next byte.
	in.Accept = false
	tape.Step(in, out)
	assert.False(in.Ready)
	in.Accept = true
	tape.Step(in, out)
	assert.True(in.Ready)
	assert.Equal(byte('B'), in.Data)
}

func TestTapeEof(t *testing.T) {
	assert := assert.New(t)

	// A nil Input hits end of input on the first ask.
	tape := &Tape{}
	in := &Channel{Accept: true}
	out := &Channel{}
	tape.Step(in, out)
	assert.False(in.Ready)
	assert.True(tape.Eof)

	// An exhausted Reader does the same.
	tape = &Tape{Input: strings.NewReader("A")}
	in = &Channel{Accept: true}
	tape.Step(in, out)
	assert.True(in.Ready)
	in.Accept = false
	in.Ready = false
	tape.Step(in, out)
	in.Accept = true
	tape.Step(in, out)
	assert.False(in.Ready)
	assert.True(tape.Eof)
}
