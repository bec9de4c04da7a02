package types

import "testing"

func TestArrayString(t *testing.T) {
	tests := []struct {
		arr  *ArrayType
		want string
	}{
		{NewArrayType(INT, false, 1), "int[]"},
		{NewArrayType(INT, true, 1), "int?[]"},
		{NewArrayType(INT, false, 2), "int[][]"},
	}
	for _, tc := range tests {
		if got := tc.arr.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestArrayInvariance(t *testing.T) {
	plain := NewArrayType(INT, false, 1)
	nullable := NewArrayType(INT, true, 1)
	other := NewArrayType(UINT, false, 1)

	if plain.Equals(nullable) {
		t.Error("a non-nullable array must not equal its nullable counterpart")
	}
	if plain.Equals(other) {
		t.Error("Array<int> must not equal Array<uint>: arrays are invariant over BaseType")
	}
	if plain.IsSubtype(other) {
		t.Error("array subtyping must be invariant, not covariant")
	}
	if !plain.IsSubtype(plain) {
		t.Error("an array type must be a subtype of itself")
	}
}

func TestArrayExtendsClassName(t *testing.T) {
	if NewArrayType(INT, false, 1).ExtendsClassName() != "Array" {
		t.Error("non-nullable array must extend Array")
	}
	if NewArrayType(INT, true, 1).ExtendsClassName() != "ArrayNullable" {
		t.Error("nullable array must extend ArrayNullable")
	}
}

func TestNewArrayTypeClampsDimensions(t *testing.T) {
	if NewArrayType(INT, false, 0).Dimensions != 1 {
		t.Error("dimensions below 1 must clamp to 1")
	}
}
