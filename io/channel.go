// Package io provides the flow-controlled byte channels of the μBF
// machine and devices that drive their far side. A channel carries one
// byte per step under a producer/consumer handshake: the producer raises
// Ready with the byte on Data, the consumer raises Accept, and the byte
// moves only on a step where both are raised at once.
package io

import (
	"fmt"
)

// Channel is one direction of a flow-controlled byte channel.
type Channel struct {
	Ready  bool // Producer has a byte on Data this step.
	Accept bool // Consumer can take a byte this step.
	Data   byte
}

// Transfer reports whether a byte moves across the channel this step.
func (ch *Channel) Transfer() bool {
	return ch.Ready && ch.Accept
}

// String returns the current line state as a string.
func (ch Channel) String() string {
	return fmt.Sprintf("ready=%v accept=%v data=%02X", ch.Ready, ch.Accept, ch.Data)
}

// Device drives the far side of the machine's channels. A device is
// stepped once after every engine step: on in it is the producer (the
// machine consumes), on out it is the consumer (the machine produces).
type Device interface {
	Step(in *Channel, out *Channel)
}
