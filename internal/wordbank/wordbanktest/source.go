// Package wordbanktest provides a scripted random source for deterministic tests.
package wordbanktest

import "fmt"

// Script replays fixed values. IntN consumes Ints, Float64 consumes Floats.
// Running out of values panics so a test never silently samples past its script.
type Script struct {
	Ints   []int
	Floats []float64

	intCalls   []int
	floatCalls int
}

// IntN returns the next scripted int, which must lie in [0, n)
func (s *Script) IntN(n int) int {
	if len(s.Ints) == 0 {
		panic(fmt.Sprintf("wordbanktest: IntN(%d) called with no scripted ints left", n))
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("wordbanktest: scripted int %d outside [0, %d)", v, n))
	}
	s.intCalls = append(s.intCalls, n)
	return v
}

// Float64 returns the next scripted float
func (s *Script) Float64() float64 {
	if len(s.Floats) == 0 {
		panic("wordbanktest: Float64 called with no scripted floats left")
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	s.floatCalls++
	return v
}

// IntCalls returns the n argument of every IntN call so far
func (s *Script) IntCalls() []int {
	return s.intCalls
}

// FloatCalls returns how many times Float64 was called
func (s *Script) FloatCalls() int {
	return s.floatCalls
}

// Zeros is a source that always returns 0 for IntN and 0 for Float64
type Zeros struct{}

func (Zeros) IntN(int) int     { return 0 }
func (Zeros) Float64() float64 { return 0 }
