package model

import "testing"

func TestReflectedSwapsOppositeSides(t *testing.T) {
	t.Parallel()

	c := Conns(SideTop, SideRight)
	r := c.Reflected()

	if !r[SideBottom] || !r[SideLeft] {
		t.Errorf("expected bottom+left open, got %v", r)
	}
	if r[SideTop] || r[SideRight] {
		t.Errorf("expected top+right closed, got %v", r)
	}
}

func TestReflectedTwiceIsIdentity(t *testing.T) {
	t.Parallel()

	cases := []Connections{
		{},
		Conns(SideTop),
		Conns(SideLeft, SideRight),
		Conns(SideTop, SideRight, SideBottom, SideLeft),
		Conns(SideBottom, SideLeft, SideTop),
	}

	for _, c := range cases {
		if got := c.Reflected().Reflected(); got != c {
			t.Errorf("double reflection of %v: got %v", c, got)
		}
	}
}

func TestOpenHonorsMirroredFlag(t *testing.T) {
	t.Parallel()

	card := Card{Type: CardPath, Connections: Conns(SideTop)}
	if !card.Open(SideTop) || card.Open(SideBottom) {
		t.Fatalf("unmirrored card should open top only")
	}

	card.Mirrored = true
	if card.Open(SideTop) || !card.Open(SideBottom) {
		t.Fatalf("mirrored card should open bottom only")
	}
}

func TestSideOpposite(t *testing.T) {
	t.Parallel()

	pairs := map[Side]Side{
		SideTop:    SideBottom,
		SideRight:  SideLeft,
		SideBottom: SideTop,
		SideLeft:   SideRight,
	}
	for side, want := range pairs {
		if got := side.Opposite(); got != want {
			t.Errorf("opposite of %d: got %d, want %d", side, got, want)
		}
	}
}
