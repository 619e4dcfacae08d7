// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"log"
)

// charOps maps the significant source characters to their opcodes.
// Every other character is a comment.
var charOps = map[byte]Op{
	'+': OP_INC,
	'-': OP_DEC,
	'>': OP_NEXT,
	'<': OP_PREV,
	'.': OP_PUT,
	',': OP_GET,
}

// Program is the compiler's output: the flattened code memory image,
// plus the source offset each code byte was generated from.
type Program struct {
	Image  []byte
	Source []int
}

// add appends one code byte generated from the given source offset.
func (prog *Program) add(value byte, offset int) {
	prog.Image = append(prog.Image, value)
	prog.Source = append(prog.Source, offset)
}

// OffsetAt returns the source offset of the code byte at ip, or -1 for
// addresses past the end of the image.
func (prog *Program) OffsetAt(ip uint16) (offset int) {
	offset = -1
	if int(ip) < len(prog.Source) {
		offset = prog.Source[int(ip)]
	}

	return
}

// Compiler translates Brainfuck source text into a code memory image.
type Compiler struct {
	Verbose bool // If set, verbosely logs the compiler actions.
}

// Compile translates source text into a Program. It fails, before any
// load step can be issued, on unmatched brackets, on a program longer
// than code memory, and on any loop whose jump distance cannot be
// encoded in its one-byte literal.
func (bc *Compiler) Compile(source string) (prog *Program, err error) {
	prog = &Program{}

	pos, err := bc.block(prog, source, 0, -1)
	if err != nil {
		prog = nil
		return
	}
	if pos != len(source) {
		// Unconsumed ']' at top level.
		err = ErrSyntax{Offset: pos, Err: ErrUnmatchedBracket}
		prog = nil
		return
	}

	if len(prog.Image) > CODE_SIZE {
		err = ErrSyntax{Offset: len(source), Err: ErrProgramTooLarge}
		prog = nil
		return
	}

	if bc.Verbose {
		log.Printf("compile: %v source bytes, %v code words", len(source), len(prog.Image))
	}

	return
}

// block compiles source text from pos until the matching ']' or, at top
// level, end of input. openAt is the source offset of the enclosing '['
// (-1 at top level). It returns the position one past the consumed
// text: past the ']' when nested, at the first unconsumed ']' or end of
// input at top level.
func (bc *Compiler) block(prog *Program, source string, pos int, openAt int) (next int, err error) {
	for pos < len(source) {
		ch := source[pos]

		if op, ok := charOps[ch]; ok {
			prog.add(byte(op), pos)
			pos++
			continue
		}

		switch ch {
		case '[':
			openPos := pos
			start := len(prog.Image)
			prog.add(byte(OP_JZ), openPos)
			prog.add(0, openPos) // Distance backpatched below.

			pos, err = bc.block(prog, source, pos+1, openPos)
			if err != nil {
				return
			}
			closePos := pos - 1

			words := len(prog.Image) - start - 2
			if words+LOOP_SPAN > 0xff {
				err = ErrSyntax{Offset: openPos, Err: ErrProgramTooLarge}
				return
			}
			span := byte(words + LOOP_SPAN)

			// The forward skip and the backward branch reuse the
			// same distance.
			prog.Image[start+1] = span
			prog.add(byte(OP_JMP), closePos)
			prog.add(span, closePos)

		case ']':
			if openAt < 0 {
				// Caller reports the stray bracket.
				next = pos
				return
			}
			next = pos + 1
			return

		default:
			// Comment character.
			pos++
		}
	}

	if openAt >= 0 {
		err = ErrSyntax{Offset: openAt, Err: ErrUnmatchedBracket}
		return
	}
	next = pos

	return
}
