// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/ubf/cpu"
	"github.com/ezrec/ubf/emulator"
)

func main() {
	var compile string
	var script string
	var input string
	var output string
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".b file to compile")
	flag.StringVar(&script, "x", "", "Starlark driver script")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.IntVar(&limit, "l", 0, "Step limit (0 for default)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	prog := &cpu.Program{}

	// Compile a new code memory image.
	if len(compile) != 0 {
		source, err := os.ReadFile(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		bc := &cpu.Compiler{Verbose: verbose}
		prog, err = bc.Compile(string(source))
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose

	// A script drives the machine itself, through the queue device.
	if len(script) != 0 {
		drv := emulator.NewScript(emu)
		if _, err := drv.Run(script, nil); err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		os.Stdout.Write(emu.Queue.Drain())
		return
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	if err := emu.Reset(); err != nil {
		log.Fatal(err)
	}
	if err := emu.Run(limit); err != nil {
		log.Fatalf("offset %d: %v", emu.Offset(), err)
	}
}
