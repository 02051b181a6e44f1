package format

import (
	"errors"
	"testing"
)

func TestInferScalars(t *testing.T) {
	cases := []struct {
		cell string
		want Value
	}{
		{"", NullValue},
		{"null", NullValue},
		{"NULL", NullValue},
		{"true", BoolValue(true)},
		{"False", BoolValue(false)},
		{"0", LongValue(0)},
		{"-42", LongValue(-42)},
		{"100", LongValue(100)},
		{"0.2", DoubleValue(0.2)},
		{"-3.5", DoubleValue(-3.5)},
		{"1e3", DoubleValue(1000)},
		{"string_prop_1", StringValue("string_prop_1")},
		{"5x", StringValue("5x")},
		{"-", StringValue("-")},
		{"Straße", StringValue("Straße")},
	}
	for _, tc := range cases {
		got, err := Infer(tc.cell)
		if err != nil {
			t.Fatalf("Infer(%q): %v", tc.cell, err)
		}
		if got.Tag != tc.want.Tag {
			t.Fatalf("Infer(%q) tag = %v, want %v", tc.cell, got.Tag, tc.want.Tag)
		}
		switch got.Tag {
		case TypeBool:
			if got.Bool != tc.want.Bool {
				t.Fatalf("Infer(%q) = %v, want %v", tc.cell, got.Bool, tc.want.Bool)
			}
		case TypeLong:
			if got.Long != tc.want.Long {
				t.Fatalf("Infer(%q) = %d, want %d", tc.cell, got.Long, tc.want.Long)
			}
		case TypeDouble:
			if got.Dbl != tc.want.Dbl {
				t.Fatalf("Infer(%q) = %f, want %f", tc.cell, got.Dbl, tc.want.Dbl)
			}
		case TypeString:
			if got.Str != tc.want.Str {
				t.Fatalf("Infer(%q) = %q, want %q", tc.cell, got.Str, tc.want.Str)
			}
		}
	}
}

func TestInferLongOverflowFallsBackToDouble(t *testing.T) {
	v, err := Infer("99999999999999999999999999")
	if err != nil {
		t.Fatal(err)
	}
	if v.Tag != TypeDouble {
		t.Fatalf("tag = %v, want double", v.Tag)
	}
}

func TestCoerce(t *testing.T) {
	cases := []struct {
		cell     string
		declared Type
		want     Value
	}{
		{"0", TypeString, StringValue("0")},
		{"17", TypeLong, LongValue(17)},
		{"3.5", TypeDouble, DoubleValue(3.5)},
		{"5", TypeDouble, DoubleValue(5)},
		{"TRUE", TypeBool, BoolValue(true)},
		{"", TypeLong, NullValue},
		{"", TypeBool, NullValue},
	}
	for _, tc := range cases {
		got, err := Coerce(tc.cell, tc.declared)
		if err != nil {
			t.Fatalf("Coerce(%q, %v): %v", tc.cell, tc.declared, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("Coerce(%q, %v) = %+v, want %+v", tc.cell, tc.declared, got, tc.want)
		}
	}
}

func TestCoerceFailures(t *testing.T) {
	cases := []struct {
		cell     string
		declared Type
		wantMsg  string
	}{
		{"str", TypeLong, "Could not parse 'str' as a long"},
		{"1.5.2", TypeDouble, "Could not parse '1.5.2' as a double"},
		{"yes", TypeBool, "Could not parse 'yes' as a boolean"},
		{"strval", TypeArray, "Could not parse 'strval' as an array"},
	}
	for _, tc := range cases {
		_, err := Coerce(tc.cell, tc.declared)
		if err == nil {
			t.Fatalf("Coerce(%q, %v): expected error", tc.cell, tc.declared)
		}
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("Coerce(%q, %v): error %v is not a SchemaError", tc.cell, tc.declared, err)
		}
		if err.Error() != tc.wantMsg {
			t.Fatalf("Coerce(%q, %v) message = %q, want %q", tc.cell, tc.declared, err.Error(), tc.wantMsg)
		}
	}
}
