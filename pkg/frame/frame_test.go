package frame

import "testing"

func TestGenericFrame(t *testing.T) {
	f := Generic{Identifier: 0x123, Payload: []byte{1, 2, 3}}

	if f.ID() != 0x123 {
		t.Errorf("ID() = %#x, want 0x123", f.ID())
	}
	if len(f.Data()) != 3 {
		t.Errorf("len(Data()) = %d, want 3", len(f.Data()))
	}
}

func TestMTUConstants(t *testing.T) {
	if ClassicMTU != 8 {
		t.Errorf("ClassicMTU = %d, want 8", ClassicMTU)
	}
	if FDMTU != 64 {
		t.Errorf("FDMTU = %d, want 64", FDMTU)
	}
}
