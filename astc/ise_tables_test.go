package astc

import "testing"

func TestTritsOfInteger_KnownEntries(t *testing.T) {
	cases := map[int][5]uint8{
		0: {0, 0, 0, 0, 0},
		1: {1, 0, 0, 0, 0},
		2: {2, 0, 0, 0, 0},
		3: {0, 0, 2, 0, 0},
		4: {0, 1, 0, 0, 0},
		7: {1, 0, 2, 0, 0},
	}
	for packed, want := range cases {
		if got := tritsOfInteger[packed]; got != want {
			t.Fatalf("tritsOfInteger[%d]=%v want %v", packed, got, want)
		}
	}
}

func TestQuintsOfInteger_KnownEntries(t *testing.T) {
	cases := map[int][3]uint8{
		0: {0, 0, 0},
		4: {4, 0, 0},
		5: {0, 4, 0},
		6: {4, 4, 0},
		7: {4, 4, 4},
		8: {0, 1, 0},
	}
	for packed, want := range cases {
		if got := quintsOfInteger[packed]; got != want {
			t.Fatalf("quintsOfInteger[%d]=%v want %v", packed, got, want)
		}
	}
}

func TestTritAndQuintTables_CoverEveryTuple(t *testing.T) {
	var trits [3][3][3][3][3]bool
	for _, v := range tritsOfInteger {
		for _, d := range v {
			if d > 2 {
				t.Fatalf("trit out of range: %v", v)
			}
		}
		trits[v[4]][v[3]][v[2]][v[1]][v[0]] = true
	}
	n := 0
	for a := range trits {
		for b := range trits[a] {
			for c := range trits[a][b] {
				for d := range trits[a][b][c] {
					for e := range trits[a][b][c][d] {
						if trits[a][b][c][d][e] {
							n++
						}
					}
				}
			}
		}
	}
	if n != 243 {
		t.Fatalf("trit tuples covered=%d want 243", n)
	}

	var quints [5][5][5]bool
	for _, v := range quintsOfInteger {
		for _, d := range v {
			if d > 4 {
				t.Fatalf("quint out of range: %v", v)
			}
		}
		quints[v[2]][v[1]][v[0]] = true
	}
	n = 0
	for a := range quints {
		for b := range quints[a] {
			for c := range quints[a][b] {
				if quints[a][b][c] {
					n++
				}
			}
		}
	}
	if n != 125 {
		t.Fatalf("quint tuples covered=%d want 125", n)
	}
}

func TestColorUnquantTables(t *testing.T) {
	cases := []struct {
		q    quantMethod
		want []uint8
	}{
		{quant6, []uint8{0, 255, 51, 204, 102, 153}},
		{quant8, []uint8{0, 36, 73, 109, 146, 182, 219, 255}},
		{quant12, []uint8{0, 255, 69, 186, 23, 232, 92, 163, 46, 209, 116, 139}},
	}
	for _, tc := range cases {
		got := colorScrambledPquantToUquantTables[int(tc.q)-int(quant6)]
		if len(got) != len(tc.want) {
			t.Fatalf("quant %d: len=%d want %d", tc.q, len(got), len(tc.want))
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("quant %d: table=%v want %v", tc.q, got, tc.want)
			}
		}
	}

	identity := colorScrambledPquantToUquantTables[int(quant256)-int(quant6)]
	for i, v := range identity {
		if int(v) != i {
			t.Fatalf("quant256[%d]=%d", i, v)
		}
	}
}
