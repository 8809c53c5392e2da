package tensor

import "testing"

func TestRowSharesBacking(t *testing.T) {
	m := NewMat(3, 4)
	m.Row(1)[2] = 7
	if m.Data[1*4+2] != 7 {
		t.Fatalf("write through Row not visible in Data")
	}
}

func TestFillRandDeterministic(t *testing.T) {
	a := NewMat(4, 5)
	b := NewMat(4, 5)
	FillRand(&a, 99, 0.08)
	FillRand(&b, 99, 0.08)
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("value %d differs for identical seeds", i)
		}
	}

	c := NewMat(4, 5)
	FillRand(&c, 100, 0.08)
	same := true
	for i := range a.Data {
		if a.Data[i] != c.Data[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical matrices")
	}
}

func TestNewMatFromDataLengthCheck(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on length mismatch")
		}
	}()
	NewMatFromData(2, 3, make([]float32, 5))
}
