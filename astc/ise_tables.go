package astc

// Trit/quint block decoding and color endpoint unquantization tables, derived from the
// bit-level rules of the ASTC integer sequence encoding.

// tritsOfInteger maps an 8-bit packed trit block T to its five trits.
var tritsOfInteger = buildTritsOfInteger()

// quintsOfInteger maps a 7-bit packed quint block Q to its three quints.
var quintsOfInteger = buildQuintsOfInteger()

// colorScrambledPquantToUquantTables maps ISE-ordered color values to 0..255, one table per
// quant method from quant6 to quant256.
var colorScrambledPquantToUquantTables = buildColorUnquantTables()

func bitsOf(v uint32, hi, lo uint) uint32 {
	return (v >> lo) & ((1 << (hi - lo + 1)) - 1)
}

func buildTritsOfInteger() [256][5]uint8 {
	var out [256][5]uint8
	for t := uint32(0); t < 256; t++ {
		var c, t0, t1, t2, t3, t4 uint32
		if bitsOf(t, 4, 2) == 7 {
			c = bitsOf(t, 7, 5)<<2 | bitsOf(t, 1, 0)
			t4, t3 = 2, 2
		} else {
			c = bitsOf(t, 4, 0)
			if bitsOf(t, 6, 5) == 3 {
				t4 = 2
				t3 = bitsOf(t, 7, 7)
			} else {
				t4 = bitsOf(t, 7, 7)
				t3 = bitsOf(t, 6, 5)
			}
		}

		switch {
		case bitsOf(c, 1, 0) == 3:
			t2 = 2
			t1 = bitsOf(c, 4, 4)
			t0 = bitsOf(c, 3, 3)<<1 | (bitsOf(c, 2, 2) &^ bitsOf(c, 3, 3))
		case bitsOf(c, 3, 2) == 3:
			t2, t1 = 2, 2
			t0 = bitsOf(c, 1, 0)
		default:
			t2 = bitsOf(c, 4, 4)
			t1 = bitsOf(c, 3, 2)
			t0 = bitsOf(c, 1, 1)<<1 | (bitsOf(c, 0, 0) &^ bitsOf(c, 1, 1))
		}
		out[t] = [5]uint8{uint8(t0), uint8(t1), uint8(t2), uint8(t3), uint8(t4)}
	}
	return out
}

func buildQuintsOfInteger() [128][3]uint8 {
	var out [128][3]uint8
	for q := uint32(0); q < 128; q++ {
		var q0, q1, q2 uint32
		if bitsOf(q, 2, 1) == 3 && bitsOf(q, 6, 5) == 0 {
			low := bitsOf(q, 0, 0)
			q2 = low<<2 | (bitsOf(q, 4, 4)&^low)<<1 | (bitsOf(q, 3, 3) &^ low)
			out[q] = [3]uint8{4, 4, uint8(q2)}
			continue
		}

		var c uint32
		if bitsOf(q, 2, 1) == 3 {
			q2 = 4
			c = bitsOf(q, 4, 3)<<3 | (^bitsOf(q, 6, 5)&3)<<1 | bitsOf(q, 0, 0)
		} else {
			q2 = bitsOf(q, 6, 5)
			c = bitsOf(q, 4, 0)
		}
		if bitsOf(c, 2, 0) == 5 {
			q1 = 4
			q0 = bitsOf(c, 4, 3)
		} else {
			q1 = bitsOf(c, 4, 3)
			q0 = bitsOf(c, 2, 0)
		}
		out[q] = [3]uint8{uint8(q0), uint8(q1), uint8(q2)}
	}
	return out
}

// colorUnquantParams holds the B bit layout (MSB first, '0' for a zero bit, 'b'..'f' for bits of
// the binary part) and the C multiplier for one trit or quint range.
var colorUnquantParams = map[quantMethod]struct {
	layout string
	c      uint32
}{
	quant6:   {"000000000", 204},
	quant10:  {"000000000", 113},
	quant12:  {"b000b0bb0", 93},
	quant20:  {"b0000bb00", 54},
	quant24:  {"cb000cbcb", 44},
	quant40:  {"cb0000cbc", 26},
	quant48:  {"dcb000dcb", 22},
	quant80:  {"dcb0000dc", 13},
	quant96:  {"edcb000ed", 11},
	quant160: {"edcb0000e", 6},
	quant192: {"fedcb000f", 5},
}

func buildColorUnquantTables() [int(quant256) - int(quant6) + 1][]uint8 {
	var out [int(quant256) - int(quant6) + 1][]uint8
	for q := quant6; q <= quant256; q++ {
		btq := btqCounts[q]
		bits := uint(btq.bits)
		table := make([]uint8, quantLevel(q))
		for v := range table {
			table[v] = unquantizeColor(q, bits, btq.trits || btq.quints, uint32(v))
		}
		out[int(q)-int(quant6)] = table
	}
	return out
}

func unquantizeColor(q quantMethod, bits uint, tq bool, v uint32) uint8 {
	if !tq {
		// Bit replication up to 8 bits.
		r := v << (8 - bits)
		for s := bits; s < 8; s += bits {
			r |= r >> s
		}
		return uint8(r)
	}

	p := colorUnquantParams[q]
	field := v & ((1 << bits) - 1)
	d := v >> bits

	var a uint32
	if field&1 != 0 {
		a = 0x1FF
	}
	var b uint32
	for i, ch := range p.layout {
		if ch == '0' {
			continue
		}
		b |= ((field >> uint(ch-'a')) & 1) << uint(8-i)
	}

	t := d*p.c + b
	t ^= a
	return uint8((a & 0x80) | (t >> 2))
}
