package io

// Queue is an in-memory device with a FIFO on each side: Feed queues
// bytes for the machine's input channel, and bytes taken from the output
// channel accumulate until Pop or Drain. A Capacity of 0 is unbounded;
// a full output queue deasserts Accept, exerting backpressure on the
// machine.
type Queue struct {
	Capacity int

	in  []byte
	out []byte
}

var _ Device = (*Queue)(nil)

// Feed queues bytes for the input channel.
func (q *Queue) Feed(values ...byte) (err error) {
	if q.Capacity > 0 && len(q.in)+len(values) > q.Capacity {
		err = ErrQueueFull
		return
	}
	q.in = append(q.in, values...)
	return
}

// Pop returns the next byte collected from the output channel.
func (q *Queue) Pop() (value byte, ok bool) {
	if len(q.out) == 0 {
		return
	}
	value = q.out[0]
	q.out = q.out[1:]
	ok = true
	return
}

// Drain returns and clears everything collected from the output channel.
func (q *Queue) Drain() (values []byte) {
	values = q.out
	q.out = nil
	return
}

// Pending returns the number of input bytes not yet taken by the machine.
func (q *Queue) Pending() int {
	return len(q.in)
}

// Step drives one handshake step on both channels.
func (q *Queue) Step(in *Channel, out *Channel) {
	// Take the byte under the Accept advertised last step, then
	// recompute Accept for the next one.
	if out.Ready && out.Accept {
		q.out = append(q.out, out.Data)
		out.Ready = false
	}
	out.Accept = q.Capacity == 0 || len(q.out) < q.Capacity

	if !in.Accept {
		in.Ready = false
		return
	}
	if in.Ready || len(q.in) == 0 {
		return
	}
	in.Ready = true
	in.Data = q.in[0]
	q.in = q.in[1:]
}
