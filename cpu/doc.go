// Package cpu implements the processor and compiler for the μBF machine.
//
// The processor consists of a 10-bit instruction pointer over 1024 bytes
// of code memory, a 15-bit data pointer over 32768 bytes of data memory,
// and two flow-controlled byte channels. Both pointers are modular
// hardware registers; arithmetic on them wraps instead of trapping.
// Each Step executes exactly one instruction in five phases (fetch,
// read, compute, commit, advance); an instruction that cannot complete
// its I/O handshake stalls by leaving the instruction pointer in place
// and is retried on the next step.
//
// The compiler translates Brainfuck source text into the code memory
// image, resolving loop jump distances at compile time. The engine
// trusts the compiler's layout and has no runtime fault path.
package cpu
