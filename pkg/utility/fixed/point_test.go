package fixed

import (
	"testing"
)

func TestFixedPoint_FromInt64(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		scale int
		want  string
	}{
		{"zero", 0, 0, "0"},
		{"positive", 123, 0, "123"},
		{"negative", -456, 0, "-456"},
		{"with scale", 123, 2, "1.23"},
		{"negative with scale", -456, 3, "-0.456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromInt64(tt.value, tt.scale)
			if got.String() != tt.want {
				t.Errorf("FromInt64(%d, %d) = %s; want %s", tt.value, tt.scale, got.String(), tt.want)
			}
		})
	}
}

func TestFixedPoint_Arithmetic(t *testing.T) {
	a := FromInt64(1050, 0)
	b := FromInt64(1000, 0)

	if got := a.Sub(b).MulInt64(5); !got.Eq(FromInt64(250, 0)) {
		t.Errorf("(1050-1000)*5 = %s; want 250", got)
	}
	if got := a.Add(b); !got.Eq(FromInt64(2050, 0)) {
		t.Errorf("1050+1000 = %s; want 2050", got)
	}
	if got := b.MulInt64(-1); !got.Eq(FromInt64(-1000, 0)) {
		t.Errorf("1000*-1 = %s; want -1000", got)
	}
	if got := FromInt64(1000, 0).MulInt64(4).DivInt64(10); !got.Eq(FromInt64(400, 0)) {
		t.Errorf("1000*4/10 = %s; want 400", got)
	}
}

func TestFixedPoint_Comparisons(t *testing.T) {
	low := FromInt64(990, 0)
	high := FromInt64(1010, 0)
	price := FromInt64(1000, 0)

	if !price.Gte(low) || !price.Lte(high) {
		t.Error("price should be within [low, high]")
	}
	if !low.Lt(high) || !high.Gt(low) {
		t.Error("low/high ordering broken")
	}
	if !FromInt64(10, 1).Eq(FromInt64(100, 2)) {
		t.Error("1.0 and 1.00 should compare equal")
	}
}

func TestFixedPoint_Predicates(t *testing.T) {
	if !Zero.IsZero() {
		t.Error("Zero should be zero")
	}
	if !FromInt64(-5, 0).IsNeg() {
		t.Error("-5 should be negative")
	}
	if FromInt64(5, 0).IsNeg() {
		t.Error("5 should not be negative")
	}
	if got := FromInt64(-25, 1).Abs(); !got.Eq(FromInt64(25, 1)) {
		t.Errorf("Abs(-2.5) = %s; want 2.5", got)
	}
	if got := FromInt64(25, 1).Neg(); !got.Eq(FromInt64(-25, 1)) {
		t.Errorf("Neg(2.5) = %s; want -2.5", got)
	}
}

func TestFixedPoint_FromStringRoundTrip(t *testing.T) {
	p, err := FromString("1234.5678")
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	if p.String() != "1234.5678" {
		t.Errorf("round trip = %s; want 1234.5678", p.String())
	}

	if _, err := FromString("not a number"); err == nil {
		t.Error("Expected error for invalid input")
	}
}

func TestFixedPoint_TextMarshalling(t *testing.T) {
	p := FromInt64(40125, 2)
	raw, err := p.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var q Point
	if err := q.UnmarshalText(raw); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if !p.Eq(q) {
		t.Errorf("round trip = %s; want %s", q, p)
	}
}

func TestFixedPoint_Sqrt(t *testing.T) {
	if got := FromInt64(25, 0).Sqrt(); !got.Eq(FromInt64(5, 0)) {
		t.Errorf("Sqrt(25) = %s; want 5", got)
	}
}
