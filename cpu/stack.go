package cpu

const (
	StackLimit = 16 // Maximum call depth
)

// Stack holds return addresses for CALL/RET. It never grows past StackLimit;
// pushing onto a full stack or popping an empty one is an error rather than
// a silent wraparound.
type Stack struct {
	slots [StackLimit]uint16
	sp    int
}

func (s *Stack) Push(addr uint16) error {
	if s.Full() {
		return ErrStackOverflow
	}
	s.slots[s.sp] = addr
	s.sp++
	return nil
}

func (s *Stack) Pop() (uint16, error) {
	if s.Empty() {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.slots[s.sp], nil
}

func (s *Stack) Peek() (addr uint16, ok bool) {
	if s.Empty() {
		return
	}
	return s.slots[s.sp-1], true
}

func (s *Stack) Empty() bool {
	return s.sp == 0
}

func (s *Stack) Full() bool {
	return s.sp == StackLimit
}

// Len returns the current stack pointer.
func (s *Stack) Len() int {
	return s.sp
}

// Slice returns a copy of the pushed return addresses, oldest first.
func (s *Stack) Slice() []uint16 {
	return append([]uint16(nil), s.slots[:s.sp]...)
}

func (s *Stack) Reset() {
	*s = Stack{}
}
