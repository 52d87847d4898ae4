package graph

import "testing"

func TestNewFloatTensor(t *testing.T) {
	tensor, err := NewFloatTensor(Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("NewFloatTensor failed: %v", err)
	}
	if tensor.DType != Float32 {
		t.Errorf("DType = %v, want Float32", tensor.DType)
	}
	if tensor.NumElements() != 6 {
		t.Errorf("NumElements = %d, want 6", tensor.NumElements())
	}

	if _, err := NewFloatTensor(Shape{2, 2}, []float32{1}); err == nil {
		t.Error("expected element count mismatch error")
	}
	if _, err := tensor.Int64s(); err == nil {
		t.Error("expected dtype mismatch reading int64s from a float tensor")
	}
}

func TestNewIntTensor(t *testing.T) {
	tensor, err := NewIntTensor(Shape{3}, []int64{1, 0, 2})
	if err != nil {
		t.Fatalf("NewIntTensor failed: %v", err)
	}
	vals, err := tensor.Int64s()
	if err != nil {
		t.Fatalf("Int64s failed: %v", err)
	}
	want := []int64{1, 0, 2}
	for i, v := range want {
		if vals[i] != v {
			t.Errorf("vals[%d] = %d, want %d", i, vals[i], v)
		}
	}
}

func TestDataTypeFromProto(t *testing.T) {
	cases := []struct {
		code int64
		want DataType
	}{
		{ProtoFloat, Float32},
		{ProtoDouble, Float64},
		{ProtoInt32, Int32},
		{ProtoInt64, Int64},
		{ProtoUint8, Uint8},
		{ProtoBool, Bool},
	}
	for _, c := range cases {
		got, err := DataTypeFromProto(c.code)
		if err != nil {
			t.Errorf("DataTypeFromProto(%d) failed: %v", c.code, err)
			continue
		}
		if got != c.want {
			t.Errorf("DataTypeFromProto(%d) = %v, want %v", c.code, got, c.want)
		}
		if got.ProtoCode() != c.code {
			t.Errorf("%v.ProtoCode() = %d, want %d", got, got.ProtoCode(), c.code)
		}
	}

	if _, err := DataTypeFromProto(ProtoString); err == nil {
		t.Error("expected error for unmapped wire code")
	}
}

func TestAttrGetters(t *testing.T) {
	n := NewNode("c", "Const", nil, 1)
	n.SetAttr(Attribute{Name: "dtype", I: ProtoFloat})
	n.SetAttr(Attribute{Name: "perm", Ints: []int64{1, 0, 2}})

	if got := n.AttrInt("dtype", -1); got != ProtoFloat {
		t.Errorf("AttrInt(dtype) = %d, want %d", got, int64(ProtoFloat))
	}
	if got := n.AttrInt("missing", 42); got != 42 {
		t.Errorf("AttrInt(missing) = %d, want default 42", got)
	}
	if got := n.AttrInts("perm"); len(got) != 3 || got[0] != 1 {
		t.Errorf("AttrInts(perm) = %v", got)
	}
}
