package layout

import "testing"

func TestCoordString(t *testing.T) {
	tests := []struct {
		c    Coord
		want string
	}{
		{At(0, 0, 0), "(0,0,0)"},
		{At(6.5, 3.5, 4), "(6.5,3.5,4)"},
		{At(13, 3.5, 0), "(13,3.5,0)"},
		{At(-0.5, 2, 1), "(-0.5,2,1)"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestParseCoord(t *testing.T) {
	tests := []struct {
		input string
		want  Coord
	}{
		{"(6.5,3.5,4)", At(6.5, 3.5, 4)},
		{"6.5, 3.5, 4", At(6.5, 3.5, 4)},
		{" (1,2,0) ", At(1, 2, 0)},
		{"0,3.5,0", At(0, 3.5, 0)},
	}
	for _, tt := range tests {
		got, err := ParseCoord(tt.input)
		if err != nil {
			t.Errorf("ParseCoord(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCoord(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseCoordInvalid(t *testing.T) {
	for _, input := range []string{"", "1,2", "a,2,0", "1.25,2,0", "1,2,x", "1,2,-1", "1,2,3,4"} {
		if _, err := ParseCoord(input); err == nil {
			t.Errorf("ParseCoord(%q) should fail", input)
		}
	}
}

func TestParseCoordRoundTrip(t *testing.T) {
	l, err := Generate(Hard)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, c := range l.Coords() {
		got, err := ParseCoord(c.String())
		if err != nil {
			t.Fatalf("ParseCoord(%q): %v", c.String(), err)
		}
		if got != c {
			t.Fatalf("round trip of %v gave %v", c, got)
		}
	}
}

func TestCoordKeyDistinct(t *testing.T) {
	seen := make(map[int]Coord)
	for _, d := range Difficulties {
		l, err := Generate(d)
		if err != nil {
			t.Fatalf("Generate(%s): %v", d, err)
		}
		for _, c := range l.Coords() {
			if prev, ok := seen[c.Key()]; ok && prev != c {
				t.Fatalf("key collision between %v and %v", prev, c)
			}
			seen[c.Key()] = c
		}
	}
}

func TestCoordNeighborsAndPosition(t *testing.T) {
	c := At(6.5, 3.5, 4)
	if c.X() != 6.5 || c.Y() != 3.5 {
		t.Fatalf("position = (%v,%v), want (6.5,3.5)", c.X(), c.Y())
	}
	if c.Left() != At(5.5, 3.5, 4) {
		t.Errorf("Left() = %v", c.Left())
	}
	if c.Right() != At(7.5, 3.5, 4) {
		t.Errorf("Right() = %v", c.Right())
	}
}
