package primegen

import "testing"

func refPrimes(lo, hi uint64) []uint64 {
	comp := make([]bool, hi+1)
	var ps []uint64
	for i := uint64(2); i <= hi; i++ {
		if comp[i] {
			continue
		}
		if i >= lo {
			ps = append(ps, i)
		}
		for j := i * i; j <= hi; j += i {
			comp[j] = true
		}
	}
	return ps
}

func drain(g *Generator) []uint64 {
	var ps []uint64
	for {
		p, ok := g.Peek()
		if !ok {
			break
		}
		ps = append(ps, p)
		g.Next()
	}
	return ps
}

func TestGeneratorMatchesReference(t *testing.T) {
	const limit = 1000000
	got := drain(New(limit))
	want := refPrimes(23, limit)
	if len(got) != len(want) {
		t.Fatalf("generated %d primes, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("prime %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGeneratorStartsAt23(t *testing.T) {
	g := New(100)
	p, ok := g.Peek()
	if !ok || p != 23 {
		t.Fatalf("first prime = %d, %v; want 23", p, ok)
	}
}

func TestGeneratorWindowBoundaries(t *testing.T) {
	// limits at and around the window span exercise the window stepping
	for _, limit := range []uint64{windowSpan - 1, windowSpan, windowSpan + 1, 3 * windowSpan} {
		got := drain(New(limit))
		want := refPrimes(23, limit)
		if len(got) != len(want) {
			t.Fatalf("limit %d: generated %d primes, want %d", limit, len(got), len(want))
		}
		if got[len(got)-1] != want[len(want)-1] {
			t.Fatalf("limit %d: last prime = %d, want %d", limit, got[len(got)-1], want[len(want)-1])
		}
	}
}

func TestGeneratorExhausted(t *testing.T) {
	g := New(20)
	if p, ok := g.Peek(); ok {
		t.Fatalf("limit 20 yielded %d", p)
	}
	g = New(23)
	ps := drain(g)
	if len(ps) != 1 || ps[0] != 23 {
		t.Fatalf("limit 23 yielded %v", ps)
	}
	if _, ok := g.Peek(); ok {
		t.Fatal("generator not exhausted after drain")
	}
}

func TestPeekIsIdempotent(t *testing.T) {
	g := New(1000)
	a, _ := g.Peek()
	b, _ := g.Peek()
	if a != b {
		t.Fatalf("Peek returned %d then %d", a, b)
	}
	g.Next()
	c, _ := g.Peek()
	if c == a {
		t.Fatal("Next did not consume the peeked prime")
	}
}
