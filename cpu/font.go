package cpu

const (
	// FontAddress is where the hex glyphs live in memory.
	FontAddress = 0x000
	// GlyphSize is the number of bytes (rows) in one font glyph.
	GlyphSize = 5
)

// fontSprites holds the 16 built-in glyphs, 0 through F. Each glyph is
// 4 pixels wide, stored in the high nibble of its five rows.
var fontSprites = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// FontSprites returns a copy of the built-in font table.
func FontSprites() [16 * GlyphSize]byte {
	return fontSprites
}

func loadFontSprites(memory *[MemorySize]byte) {
	copy(memory[FontAddress:], fontSprites[:])
}
