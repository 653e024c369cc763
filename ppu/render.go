package ppu

// renderBackground implements §4.G's background rendering algorithm: for
// each of the 32x30 tile cells in nametable 0, decode its pattern tile
// through its quadrant's palette and blit the resulting 8x8 block into fb.
func (p *PPU) renderBackground(fb *framebuffer) {
	patternBase := p.backgroundPatternBase()

	for i := 0; i < 32*30; i++ {
		tileX, tileY := i%32, i/32

		tileID := p.ppuMem.ReadByte(nametable0 + uint16(i))
		paletteIdx := p.quadrantPalette(tileX, tileY)
		colors := p.paletteColors(paletteIdx)

		p.blitTile(fb, patternBase, tileID, tileX*8, tileY*8, colors)
	}
}

// quadrantPalette reads the attribute byte covering (tileX, tileY) and
// selects its 2-bit palette index for the tile's quadrant within the 4x4
// tile attribute block.
func (p *PPU) quadrantPalette(tileX, tileY int) uint8 {
	attrAddr := attributeBase + uint16(tileX/4) + uint16(tileY/4)*8
	attr := p.ppuMem.ReadByte(attrAddr)

	qx, qy := (tileX%4)/2, (tileY%4)/2
	var shift uint
	switch {
	case qx == 0 && qy == 0:
		shift = 0
	case qx == 1 && qy == 0:
		shift = 2
	case qx == 0 && qy == 1:
		shift = 4
	default:
		shift = 6
	}
	return (attr >> shift) & 0x03
}

// paletteColors reads the four-byte palette at paletteBase+idx*4: entry 0 is
// the universal background color, entries 1-3 the local palette.
func (p *PPU) paletteColors(idx uint8) [4]rgb {
	base := paletteBase + uint16(idx)*4
	var out [4]rgb
	for i := 0; i < 4; i++ {
		out[i] = systemPalette[p.ppuMem.ReadByte(base+uint16(i))&0x3F]
	}
	return out
}

// blitTile decodes one 8x8 pattern tile (two bit-planes 8 bytes apart) and
// draws it into fb at pixel origin (ox, oy).
func (p *PPU) blitTile(fb *framebuffer, patternBase uint16, tileID uint8, ox, oy int, colors [4]rgb) {
	base := patternBase + uint16(tileID)*16

	for row := 0; row < 8; row++ {
		lo := p.ppuMem.ReadByte(base + uint16(row))
		hi := p.ppuMem.ReadByte(base + 8 + uint16(row))

		for col := 0; col < 8; col++ {
			bit := uint(7 - col)
			colorIdx := ((hi>>bit)&1)<<1 | ((lo >> bit) & 1)
			fb.set(ox+col, oy+row, colors[colorIdx])
		}
	}
}

// renderPatternTables renders both CHR pattern tables (0x0000 and 0x1000,
// 16x16 tiles of 8x8 pixels each) through background palette 0 (its
// universal background color and three local colors), for the optional
// 256x128 debug surface (§4.G expansion).
func (p *PPU) renderPatternTables(fb *framebuffer) {
	colors := p.paletteColors(0)

	for bank := 0; bank < 2; bank++ {
		base := uint16(bank * 0x1000)
		for tile := 0; tile < 256; tile++ {
			tx, ty := tile%16, tile/16
			ox := bank*128 + tx*8
			oy := ty * 8
			p.blitTile(fb, base, uint8(tile), ox, oy, colors)
		}
	}
}
