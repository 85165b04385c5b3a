package cpu

// The Display interface is the screen the Machine draws sprites on.
// The Machine only ever clears it and XORs sprites onto it; flushing the
// picture to a real screen is the owner's business.
type Display interface {
	// Clear turns every pixel off.
	Clear()
	// Draw XORs the sprite rows onto the screen with their top-left corner at
	// (x, y), wrapping around the screen edges. Each row is one byte, highest
	// bit leftmost. Draw reports whether any lit pixel was turned off.
	Draw(x, y byte, rows []byte) (collision bool)
}
