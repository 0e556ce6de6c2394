package fixed

import (
	"testing"
)

func TestFixedMath_Mean(t *testing.T) {
	points := []Point{FromInt64(1, 0), FromInt64(2, 0), FromInt64(3, 0)}
	if got := Mean(points); !got.Eq(FromInt64(2, 0)) {
		t.Errorf("Mean = %s; want 2", got)
	}

	if got := Mean(nil); !got.IsZero() {
		t.Errorf("Mean of empty slice = %s; want 0", got)
	}
}

func TestFixedMath_StdDev(t *testing.T) {
	points := []Point{FromInt64(2, 0), FromInt64(4, 0), FromInt64(4, 0), FromInt64(6, 0)}
	mean := Mean(points)

	got := StdDev(points, mean)
	want := FromInt64(2, 0).Sqrt()
	if !got.Sub(want).Abs().Lt(FromInt64(1, 6)) {
		t.Errorf("StdDev = %s; want %s", got, want)
	}

	if got := StdDev([]Point{One}, One); !got.IsZero() {
		t.Errorf("StdDev of single point = %s; want 0", got)
	}
}

func TestFixedMath_DownsideDev(t *testing.T) {
	points := []Point{FromInt64(-2, 0), FromInt64(-4, 0), FromInt64(3, 0), FromInt64(5, 0)}

	got := DownsideDev(points, Zero)
	want := FromInt64(10, 0).Sqrt()
	if !got.Sub(want).Abs().Lt(FromInt64(1, 6)) {
		t.Errorf("DownsideDev = %s; want %s", got, want)
	}

	// All returns above the threshold leave nothing to measure.
	if got := DownsideDev([]Point{One, Two}, Zero); !got.IsZero() {
		t.Errorf("DownsideDev = %s; want 0", got)
	}
}

func TestFixedMath_SharpeRatio(t *testing.T) {
	if got := SharpeRatio([]Point{One, One, One}, Zero); !got.IsZero() {
		t.Errorf("SharpeRatio with zero volatility = %s; want 0", got)
	}

	points := []Point{FromInt64(1, 2), FromInt64(2, 2), FromInt64(3, 2)}
	got := SharpeRatio(points, Zero)
	if !got.Gt(Zero) {
		t.Errorf("SharpeRatio of positive returns = %s; want > 0", got)
	}
}

func TestFixedMath_SortinoRatio(t *testing.T) {
	if got := SortinoRatio([]Point{One, Two}, Zero); !got.IsZero() {
		t.Errorf("SortinoRatio without downside = %s; want 0", got)
	}

	points := []Point{FromInt64(-1, 2), FromInt64(-2, 2), FromInt64(3, 2), FromInt64(4, 2)}
	got := SortinoRatio(points, Zero)
	if !got.Gt(Zero) {
		t.Errorf("SortinoRatio = %s; want > 0", got)
	}
}
