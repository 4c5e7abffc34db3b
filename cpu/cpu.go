// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"cmp"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/baby/io"
)

const (
	MEMORY_SMALL = 32 // 32 x 32 store.
	MEMORY_LARGE = 64 // 64 x 32 store.

	// BOOT_ADDRESS holds boot metadata. Whenever the program counter is
	// here, the word is fetched but not executed, and control moves on to
	// the next address.
	BOOT_ADDRESS = 0
)

// State is the complete machine state.
type State struct {
	Memory      []Word // Store.
	Accumulator int32  // Accumulator.
	Pc          int    // Program counter.
	Instruction Word   // Last fetched word.
	Running     bool   // Cleared by STP.
	Mode        Mode   // Operand addressing mode.
	Index       int32  // Index register, reserved.
	Base        int32  // Base register, reserved.
}

// Trace records what a single Execute did.
type Trace struct {
	Pc      int    // Address of the executed word.
	Op      Opcode // Decoded opcode.
	Operand uint16 // Decoded operand.
	Boot    bool   // Set if the word was skipped as the boot line.
	Address int    // Store address read or written, -1 if none.
	Value   int32  // Value read from or written to the store.
	Before  int32  // Accumulator before.
	After   int32  // Accumulator after.
	Compare int    // CMP only: -1, 0, +1 for accumulator <, =, > value.
}

func (tr Trace) String() string {
	if tr.Boot {
		return fmt.Sprintf("%02d: boot line, skipped", tr.Pc)
	}

	text := fmt.Sprintf("%02d: %v", tr.Pc, tr.Op)
	if tr.Op != OP_STP {
		text += fmt.Sprintf(" %d", tr.Operand)
	}

	switch tr.Op {
	case OP_JMP, OP_JRP, OP_STP:
	case OP_STO:
		text += fmt.Sprintf(" [%02d] <- %d", tr.Address, tr.Value)
	case OP_CMP:
		rel := map[int]string{-1: "<", 0: "=", 1: ">"}[tr.Compare]
		text += fmt.Sprintf(" acc %d %v %d", tr.Before, rel, tr.Value)
	default:
		text += fmt.Sprintf(" acc %d -> %d (value %d)", tr.Before, tr.After, tr.Value)
	}

	return text
}

// Fetch loads the word at the program counter into the instruction register.
// The program counter is never wrapped; outside of the store it is an error.
func (s State) Fetch() (next State, err error) {
	next = s
	if s.Pc < 0 || s.Pc >= len(s.Memory) {
		err = ErrFetch(s.Pc)
		return
	}

	next.Instruction = s.Memory[s.Pc]
	return
}

// Execute applies one decoded instruction to a state, and returns the new
// state. The input state, including its store, is not modified.
//
// A division by zero returns ErrDivideByZero together with a valid next
// state: the accumulator is unchanged and the program counter advanced.
func Execute(state State, op Opcode, operand uint16) (next State, trace Trace, err error) {
	next = state
	trace = Trace{
		Pc:      state.Pc,
		Op:      op,
		Operand: operand,
		Address: -1,
		Before:  state.Accumulator,
	}
	defer func() {
		trace.After = next.Accumulator
	}()

	if len(state.Memory) == 0 {
		err = ErrFetch(state.Pc)
		return
	}

	if state.Pc == BOOT_ADDRESS {
		next.Pc = BOOT_ADDRESS + 1
		trace.Boot = true
		return
	}

	next.Pc = state.Pc + 1

	acc := state.Accumulator
	value := func() int32 {
		trace.Address, trace.Value = state.read(operand)
		return trace.Value
	}

	switch op {
	case OP_JMP:
		next.Pc = int(operand)
	case OP_JRP:
		next.Pc = state.Pc + int(operand)
	case OP_LDN:
		next.Accumulator = -value()
	case OP_STO:
		address := state.address(operand)
		next.Memory = slices.Clone(state.Memory)
		next.Memory[address] = Word(uint32(acc))
		trace.Address, trace.Value = address, acc
	case OP_SUB, OP_SUB2:
		next.Accumulator = acc - value()
	case OP_CMP:
		trace.Compare = cmp.Compare(acc, value())
	case OP_STP:
		next.Running = false
		next.Pc = state.Pc
	case OP_ADD:
		next.Accumulator = acc + value()
	case OP_MUL:
		next.Accumulator = acc * value()
	case OP_DIV:
		divisor := value()
		if divisor == 0 {
			err = ErrDivideByZero(trace.Address)
			return
		}
		next.Accumulator = acc / divisor
	case OP_AND:
		next.Accumulator = acc & value()
	case OP_OR:
		next.Accumulator = acc | value()
	case OP_XOR:
		next.Accumulator = acc ^ value()
	case OP_SHL:
		next.Accumulator = acc << (uint32(value()) & 0x1f)
	case OP_SHR:
		next.Accumulator = acc >> (uint32(value()) & 0x1f)
	default:
		next = state
		err = ErrOpcode
	}

	return
}

// Cpu is the simulation context for the Baby.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	State

	Ticks int // Cycles executed since reset.
}

// NewCpu creates a new CPU with a specifically sized store.
func NewCpu(size int) (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Memory = make([]Word, size)
	cpu.Reset()

	return
}

// Reset the CPU state.
// - Clears the store and registers.
// - Zeros the tick counter.
// - Selects direct addressing.
// - Starts running from the boot address.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory)
	cpu.State = State{
		Memory:  cpu.Memory,
		Running: true,
		Pc:      BOOT_ADDRESS,
		Mode:    MODE_DIRECT,
	}
	cpu.Ticks = 0
}

// SetMode selects the operand addressing mode.
func (cpu *Cpu) SetMode(mode Mode) (err error) {
	switch mode {
	case MODE_DIRECT, MODE_INDIRECT, MODE_IMMEDIATE, MODE_RELATIVE:
		cpu.Mode = mode
	default:
		err = ErrMode(mode)
	}

	return
}

// Load fills the store from a channel, 32 bits to a word, starting at
// address zero. Input beyond the end of the store is ignored.
func (cpu *Cpu) Load(in io.Channel) (words int, err error) {
	var n int
	var value uint32
	for bit := range in.Receive() {
		index := n / WORD_BITS
		if index >= len(cpu.Memory) {
			break
		}
		if bit {
			value |= 1 << (n % WORD_BITS)
		}
		n++
		if n%WORD_BITS == 0 {
			cpu.Memory[index] = Word(value)
			value = 0
		}
	}

	words = n / WORD_BITS
	if n%WORD_BITS != 0 {
		cpu.Memory[words] = Word(value)
		err = ErrChannelPartial
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", words)
	}

	return
}

// Dump writes the whole store to a channel.
func (cpu *Cpu) Dump(out io.Channel) (err error) {
	out.Rewind()
	for _, word := range cpu.Memory {
		for n := range WORD_BITS {
			err = out.Send(word.Bit(n))
			if err != nil {
				return
			}
		}
	}

	return
}

// Tick executes a single fetch, decode, execute cycle.
//
// An ErrArithmetic error is not fatal: the cycle has completed, and the
// machine is still running.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Running {
		return
	}

	state, err := cpu.State.Fetch()
	if err != nil {
		cpu.Running = false
		return
	}

	op, operand := state.Instruction.Decode()

	next, trace, err := Execute(state, op, operand)
	if err != nil && !errors.Is(err, ErrArithmetic) {
		cpu.Running = false
		return
	}

	cpu.State = next
	cpu.Ticks++

	if cpu.Verbose {
		log.Printf("cpu: %v", trace)
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "ir", "acc", "running", "mode", "index", "base", "ticks"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%d", cpu.Pc)
		case "ir":
			strval = fmt.Sprintf("%v (%v)", cpu.Instruction, Disassemble(cpu.Instruction))
		case "acc":
			strval = fmt.Sprintf("%v (%d)", Word(uint32(cpu.Accumulator)), cpu.Accumulator)
		case "running":
			strval = fmt.Sprintf("%v", cpu.Running)
		case "mode":
			strval = cpu.Mode.String()
		case "index":
			strval = fmt.Sprintf("%d", cpu.Index)
		case "base":
			strval = fmt.Sprintf("%d", cpu.Base)
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		}
		text += fmt.Sprintf("% 8s: %v\n", reg, strval)
	}

	for address, word := range cpu.Memory {
		text += fmt.Sprintf("%02d: %v (%d)\n", address, word, word.Int())
	}

	return
}
