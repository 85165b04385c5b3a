package cpu

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

type drawCall struct {
	X, Y byte
	Rows []byte
}

// fakeDisplay records what the Machine asks of it.
type fakeDisplay struct {
	clears    int
	draws     []drawCall
	collision bool
}

func (d *fakeDisplay) Clear() { d.clears++ }

func (d *fakeDisplay) Draw(x, y byte, rows []byte) bool {
	d.draws = append(d.draws, drawCall{x, y, append([]byte(nil), rows...)})
	return d.collision
}

// words assembles opcodes into a big-endian program image.
func words(ops ...uint16) []byte {
	var b []byte
	for _, op := range ops {
		b = append(b, byte(op>>8), byte(op))
	}
	return b
}

type testRig struct {
	*Machine
	display *fakeDisplay
	keys    *Keypad
	log     *bytes.Buffer
}

func newRig(t *testing.T, ops ...uint16) *testRig {
	t.Helper()

	var buf bytes.Buffer
	r := &testRig{
		Machine: New(log.New(&buf, "chip8:", 0)),
		display: &fakeDisplay{},
		keys:    &Keypad{},
		log:     &buf,
	}
	r.Seed(1)
	require.NoError(t, r.Load(words(ops...)))
	return r
}

func (r *testRig) step(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, r.Step(r.display, r.keys))
	}
}
