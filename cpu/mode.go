package cpu

// Mode is an operand addressing mode. The store is always addressed
// directly unless another mode is selected with Cpu.SetMode.
type Mode int

const (
	MODE_DIRECT    = Mode(0) // direct
	MODE_INDIRECT  = Mode(1) // indirect
	MODE_IMMEDIATE = Mode(2) // immediate
	MODE_RELATIVE  = Mode(3) // relative
)

func (mode Mode) String() string {
	switch mode {
	case MODE_DIRECT:
		return "direct"
	case MODE_INDIRECT:
		return "indirect"
	case MODE_IMMEDIATE:
		return "immediate"
	case MODE_RELATIVE:
		return "relative"
	}
	return "unknown"
}

// wrap reduces an address into the store.
func (s *State) wrap(address int) int {
	size := len(s.Memory)
	address %= size
	if address < 0 {
		address += size
	}
	return address
}

// address returns the effective store address of an operand.
//   - direct: operand modulo store size.
//   - indirect: the word at the direct address, modulo store size.
//   - relative: program counter plus operand, modulo store size.
//   - immediate: there is no store address; the direct address is used
//     by writes.
func (s *State) address(operand uint16) int {
	switch s.Mode {
	case MODE_INDIRECT:
		pointer := s.Memory[s.wrap(int(operand))]
		return s.wrap(int(pointer.Int()))
	case MODE_RELATIVE:
		return s.wrap(s.Pc + int(operand))
	default:
		return s.wrap(int(operand))
	}
}

// read returns the value an operand refers to, and the store address it
// came from (-1 for an immediate operand).
func (s *State) read(operand uint16) (address int, value int32) {
	if s.Mode == MODE_IMMEDIATE {
		return -1, int32(operand)
	}

	address = s.address(operand)
	value = s.Memory[address].Int()
	return
}
