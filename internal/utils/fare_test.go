package utils

import "testing"

func TestComputePartyFare(t *testing.T) {
	got := ComputePartyFare(30_000_000, 2, 1, 1)
	want := int64(60_000_000 + 22_500_000 + 3_000_000)
	if got != want {
		t.Fatalf("party fare got %d want %d", got, want)
	}
	if ComputePartyFare(0, 2, 0, 0) != 0 {
		t.Fatalf("zero price must give zero fare")
	}
}

func TestComputeStayFare(t *testing.T) {
	if got := ComputeStayFare(1_500_000, 3, 2); got != 9_000_000 {
		t.Fatalf("stay fare got %d", got)
	}
	if got := ComputeStayFare(1_500_000, 0, 2); got != 0 {
		t.Fatalf("expected 0 for zero nights, got %d", got)
	}
}

func TestFormatRupiah(t *testing.T) {
	if got := FormatRupiah(35_500_000); got != "Rp 35.500.000" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatRupiah(-1500); got != "-Rp 1.500" {
		t.Fatalf("unexpected negative format %q", got)
	}
}
