package params

import (
	"testing"
	"time"
)

func TestSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		spec    Spec
		value   any
		wantErr bool
	}{
		{"value accepts anything", Value{Meta: Meta{Name: "v"}}, struct{}{}, false},
		{"string accepts string", String{Meta: Meta{Name: "s"}}, "hi", false},
		{"string rejects int", String{Meta: Meta{Name: "s"}}, 3, true},
		{"dict accepts map", Dict{Meta: Meta{Name: "d"}}, map[string]any{"a": 1}, false},
		{"dict rejects slice", Dict{Meta: Meta{Name: "d"}}, []any{}, true},
		{"boolean accepts bool", Boolean{Meta: Meta{Name: "b"}}, false, false},
		{"boolean rejects string", Boolean{Meta: Meta{Name: "b"}}, "true", true},
		{"number in bounds", Number{Meta: Meta{Name: "n"}, Bounds: &Bounds{0, 1}}, 0.3, false},
		{"number accepts int input", Number{Meta: Meta{Name: "n"}}, 3, false},
		{"number out of bounds", Number{Meta: Meta{Name: "n"}, Bounds: &Bounds{0, 1}}, 1.5, true},
		{"integer accepts integral float", Integer{Meta: Meta{Name: "i"}}, float64(5), false},
		{"integer rejects fraction", Integer{Meta: Meta{Name: "i"}}, 5.5, true},
		{"integer out of bounds", Integer{Meta: Meta{Name: "i"}, Bounds: &Bounds{0, 4}}, 5, true},
		{"range accepts pair", Range{Meta: Meta{Name: "r"}}, [2]float64{1, 2}, false},
		{"range rejects inverted", Range{Meta: Meta{Name: "r"}}, [2]float64{2, 1}, true},
		{"range rejects scalar", Range{Meta: Meta{Name: "r"}}, 1.0, true},
		{"selector accepts member", Selector{Meta: Meta{Name: "c"}, Objects: []Option{{"Low", 1}, {"High", 2}}}, 2, false},
		{"selector rejects outsider", Selector{Meta: Meta{Name: "c"}, Objects: []Option{{"Low", 1}}}, 3, true},
		{"multiselector accepts subset", MultiSelector{Meta: Meta{Name: "m"}, Objects: []Option{{"a", "a"}, {"b", "b"}}}, []any{"b"}, false},
		{"multiselector rejects outsider", MultiSelector{Meta: Meta{Name: "m"}, Objects: []Option{{"a", "a"}}}, []any{"z"}, true},
		{"file accepts nil", File{Meta: Meta{Name: "f"}}, nil, false},
		{"file enforces candidates", File{Meta: Meta{Name: "f"}, Objects: []Option{{"a.csv", "a.csv"}}}, "b.csv", true},
		{"date accepts time", Date{Meta: Meta{Name: "t"}}, time.Now(), false},
		{"date rejects string", Date{Meta: Meta{Name: "t"}}, "2020-01-01", true},
		{"action accepts func", Action{Meta: Meta{Name: "go"}}, func() {}, false},
		{"action rejects value", Action{Meta: Meta{Name: "go"}}, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %v", tc.value)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSoftBounds_FallBackToHardBounds(t *testing.T) {
	n := Number{Meta: Meta{Name: "n"}, Bounds: &Bounds{Low: 2, High: 8}}
	lo, hi := n.SoftBounds()
	if lo != 2 || hi != 8 {
		t.Fatalf("want hard bounds (2, 8), got (%v, %v)", lo, hi)
	}

	n.Soft = &Bounds{Low: 3, High: 5}
	lo, hi = n.SoftBounds()
	if lo != 3 || hi != 5 {
		t.Fatalf("want soft bounds (3, 5), got (%v, %v)", lo, hi)
	}
}

func TestCapabilityInterfaces(t *testing.T) {
	var spec Spec = Selector{Meta: Meta{Name: "c"}, Objects: []Option{{"Low", 1}}}
	if _, ok := spec.(Ranged); !ok {
		t.Fatalf("selector should expose a range")
	}
	if _, ok := spec.(SoftBounded); ok {
		t.Fatalf("selector should not expose soft bounds")
	}

	spec = Integer{Meta: Meta{Name: "i"}}
	if _, ok := spec.(SoftBounded); !ok {
		t.Fatalf("integer should expose soft bounds")
	}
	if _, ok := spec.(Ranged); ok {
		t.Fatalf("integer should not expose a range")
	}
}
