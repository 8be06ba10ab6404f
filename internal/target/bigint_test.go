package target

import (
	"math/big"
	"testing"
)

func TestComplement256(t *testing.T) {
	zero := big.NewInt(0)
	got := Complement256(zero)
	want := new(big.Int).Sub(oneLsh256, big.NewInt(1))
	if got.Cmp(want) != 0 {
		t.Fatalf("Complement256(0) = %x, want %x", got, want)
	}

	// Complementing twice returns the original value.
	v := new(big.Int).SetUint64(123456789)
	twice := Complement256(Complement256(v))
	if twice.Cmp(v) != 0 {
		t.Fatalf("double complement = %x, want %x", twice, v)
	}
}

func TestLow64Truncates(t *testing.T) {
	v := new(big.Int).Lsh(big.NewInt(1), 70)
	v.Add(v, big.NewInt(42))
	if got := Low64(v); got != 42 {
		t.Fatalf("Low64 = %d, want 42", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 10, 20); got != 10 {
		t.Fatalf("Clamp(5, 10, 20) = %d, want 10", got)
	}
	if got := Clamp(25, 10, 20); got != 20 {
		t.Fatalf("Clamp(25, 10, 20) = %d, want 20", got)
	}
	if got := Clamp(15, 10, 20); got != 15 {
		t.Fatalf("Clamp(15, 10, 20) = %d, want 15", got)
	}
}

func TestBitLen(t *testing.T) {
	if BitLen(big.NewInt(0)) != 0 {
		t.Fatalf("BitLen(0) != 0")
	}
	if BitLen(big.NewInt(1)) != 1 {
		t.Fatalf("BitLen(1) != 1")
	}
	big64 := new(big.Int).Lsh(big.NewInt(1), 64)
	if BitLen(big64) != 65 {
		t.Fatalf("BitLen(2^64) = %d, want 65", BitLen(big64))
	}
}
