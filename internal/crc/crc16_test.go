package crc

import "testing"

func TestComputeCheckValue(t *testing.T) {
	// The standard CRC-16/CCITT-FALSE check value for the ASCII string
	// "123456789".
	got := Compute([]byte("123456789"))
	if got != 0x29B1 {
		t.Errorf("Compute = %#x, want 0x29b1", got)
	}
}

func TestSingleByte(t *testing.T) {
	c := New()
	c.Single(10)
	if c != 0x40BA {
		t.Errorf("Single(10) = %#x, want 0x40ba", uint16(c))
	}
}

func TestWriteMatchesCompute(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x2A, 0xFF}

	c := New()
	c.Write(data)

	if uint16(c) != Compute(data) {
		t.Errorf("Write result %#x does not match Compute %#x", uint16(c), Compute(data))
	}
}
