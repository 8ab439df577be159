package tensor

import "testing"

func TestNewRaw_ZeroedAndSized(t *testing.T) {
	r, err := NewRaw(Shape{2, 3, 4}, Float32)
	if err != nil {
		t.Fatal(err)
	}

	if r.NumElements() != 24 {
		t.Errorf("NumElements = %d, want 24", r.NumElements())
	}
	if r.ByteSize() != 96 {
		t.Errorf("ByteSize = %d, want 96", r.ByteSize())
	}
	for i, v := range r.AsFloat32() {
		if v != 0 {
			t.Fatalf("element %d = %v, want 0", i, v)
		}
	}
}

func TestNewRaw_InvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0, 4}, Float32); err == nil {
		t.Fatal("expected error for zero dimension")
	}
}

func TestClone_SharesBuffer(t *testing.T) {
	a, _ := NewRaw(Shape{4}, Float32)
	b := a.Clone()

	a.AsFloat32()[0] = 7
	if b.AsFloat32()[0] != 7 {
		t.Error("shallow clone must alias the buffer")
	}
}

func TestCloneDeep_Independent(t *testing.T) {
	a, _ := NewRaw(Shape{4}, Float32)
	a.AsFloat32()[0] = 1

	b, err := a.CloneDeep()
	if err != nil {
		t.Fatal(err)
	}

	a.AsFloat32()[0] = 7
	if b.AsFloat32()[0] != 1 {
		t.Error("deep clone must not alias the buffer")
	}
}

func TestCopyFrom(t *testing.T) {
	a, _ := FromFloats(Shape{2, 2}, []float32{1, 2, 3, 4})
	b, _ := NewRaw(Shape{2, 2}, Float32)

	if err := b.CopyFrom(a); err != nil {
		t.Fatal(err)
	}
	if b.AsFloat32()[3] != 4 {
		t.Errorf("element 3 = %v, want 4", b.AsFloat32()[3])
	}

	c, _ := NewRaw(Shape{4}, Float32)
	if err := c.CopyFrom(a); err == nil {
		t.Error("expected shape mismatch error")
	}
}

func TestIsEmpty(t *testing.T) {
	var nilTensor *RawTensor
	if !nilTensor.IsEmpty() {
		t.Error("nil tensor must be empty")
	}

	r, _ := NewRaw(Shape{1}, Float32)
	if r.IsEmpty() {
		t.Error("allocated tensor must not be empty")
	}
}

func TestFromFloats_LengthChecked(t *testing.T) {
	if _, err := FromFloats(Shape{2, 2}, []float32{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
