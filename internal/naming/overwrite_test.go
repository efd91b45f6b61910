package naming

import "testing"

func TestOwnerTracker_FirstClaim(t *testing.T) {
	tr := NewOwnerTracker()
	if _, ok := tr.Claim("0001.png", "train"); ok {
		t.Error("first claim reported as overwrite")
	}
	if n := len(tr.Overwrites()); n != 0 {
		t.Errorf("got %d overwrites, want 0", n)
	}
}

func TestOwnerTracker_SameSourceReclaim(t *testing.T) {
	tr := NewOwnerTracker()
	tr.Claim("baby.png", "Set5")
	if _, ok := tr.Claim("baby.png", "Set5"); ok {
		t.Error("same-source reclaim reported as overwrite")
	}
	if n := len(tr.Overwrites()); n != 0 {
		t.Errorf("got %d overwrites, want 0", n)
	}
}

func TestOwnerTracker_LastWriterWins(t *testing.T) {
	tr := NewOwnerTracker()
	tr.Claim("img_001.png", "BSDS100")
	ow, ok := tr.Claim("img_001.png", "urban100")
	if !ok {
		t.Fatal("expected overwrite")
	}
	want := Overwrite{Key: "img_001.png", Previous: "BSDS100", Current: "urban100"}
	if ow != want {
		t.Errorf("got %+v, want %+v", ow, want)
	}
	tr.Claim("img_001.png", "Set14")
	got := tr.Overwrites()
	if len(got) != 2 || got[1].Previous != "urban100" || got[1].Current != "Set14" {
		t.Errorf("overwrites = %+v", got)
	}
}
