// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	stdio "io"
	"log"
	"os"

	"github.com/ezrec/baby/cpu"
	"github.com/ezrec/baby/io"
)

// Emulator state. CPU + loaded machine-code image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Source listing of the loaded image, if known.

	Image io.Image // Machine-code image loaded at reset.

	MaxTicks int // Cycle guard; zero is unlimited.
}

// NewEmulator creates a new emulator with a 32 or 64 word store.
func NewEmulator(size int) (emu *Emulator, err error) {
	switch size {
	case cpu.MEMORY_SMALL, cpu.MEMORY_LARGE:
	default:
		err = ErrMemorySize(size)
		return
	}

	emu = &Emulator{
		Cpu:     cpu.NewCpu(size),
		Program: &cpu.Program{},
	}

	return
}

// Load reads a machine-code image file, and resets the machine with it.
// A file that cannot be opened is an ErrFile; a malformed image is
// returned as its io.ErrLine.
func (emu *Emulator) Load(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = &cpu.ErrFile{Path: path, Err: err}
		return
	}
	defer inf.Close()

	return emu.LoadImage(inf)
}

// LoadImage reads a machine-code image, and resets the machine with it.
// On error the machine is left untouched.
func (emu *Emulator) LoadImage(r stdio.Reader) (err error) {
	var image io.Image
	err = image.Unmarshal(r)
	if err != nil {
		return
	}

	emu.Image = image
	emu.Program = &cpu.Program{}

	return emu.Reset()
}

// LoadProgram resets the machine with an assembled program, keeping its
// listing for line number lookups.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	emu.Image = *prog.Image()
	emu.Program = prog

	return emu.Reset()
}

// Reset the machine, and load the current image into the store.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	emu.Image.Rewind()
	words, err := emu.Cpu.Load(&emu.Image)
	if err != nil {
		return
	}

	if emu.Verbose && len(emu.Image.Data) > words {
		log.Printf("emu: image truncated, %d of %d words loaded", words, len(emu.Image.Data))
	}

	return
}

// LineNo returns the source line number for the current program counter,
// or zero if there is no listing.
func (emu *Emulator) LineNo() int {
	line := emu.Program.Debug(emu.Cpu.Pc)
	if line == nil {
		return 0
	}

	return line.LineNo
}

// Step performs a single cycle of the machine.
// ran is set if a cycle executed, and running if the machine has not halted.
func (emu *Emulator) Step() (ran bool, running bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	if !emu.Cpu.Running {
		return
	}

	address := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: address, LineNo: lineno, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
		emu.Cpu.Running = false
		err = ErrTickLimit(emu.MaxTicks)
		return
	}

	ticks := emu.Cpu.Ticks
	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrArithmetic) {
		log.Printf("emu: %02d: %v", address, err)
		err = nil
	}

	ran = emu.Cpu.Ticks > ticks
	running = emu.Cpu.Running

	return
}

// Run steps the machine until it halts.
func (emu *Emulator) Run() (err error) {
	for running := true; running; {
		_, running, err = emu.Step()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emu: halted after %d ticks", emu.Cpu.Ticks)
	}

	return
}
