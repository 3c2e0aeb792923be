package ir

import (
	"math"
	"testing"
)

func obj(kvs ...any) *Node {
	var res []KeyVal
	for i := 0; i < len(kvs); i += 2 {
		res = append(res, KeyVal{Key: kvs[i].(string), Val: kvs[i+1].(*Node)})
	}
	return FromKeyVals(res)
}

func list(vs ...*Node) *Node {
	return FromSlice(vs)
}

func TestCompareOrder(t *testing.T) {
	// each entry sorts strictly before the next
	ordered := []*Node{
		nil,
		Null(),
		FromBool(false),
		FromBool(true),
		FromFloat(math.Inf(-1)),
		FromInt(math.MinInt64),
		FromFloat(-0.5),
		FromInt(0),
		FromFloat(0.25),
		FromInt(math.MaxInt64),
		FromUint(math.MaxInt64 + 1),
		FromUint(math.MaxUint64),
		FromFloat(math.Inf(1)),
		FromString(""),
		FromString("a"),
		FromString("b"),
		list(),
		list(FromInt(1)),
		list(FromInt(1), FromInt(0)),
		list(FromInt(2)),
		obj(),
		obj("a", FromInt(1)),
		obj("a", FromInt(2)),
		obj("a", FromInt(2), "b", Null()),
		obj("b", Null()),
	}
	for i := range ordered {
		for j := range ordered {
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			if got := Compare(ordered[i], ordered[j]); got != want {
				t.Errorf("Compare(#%d, #%d) = %d, want %d", i, j, got, want)
			}
		}
	}
}

func TestCompareEqualNumbers(t *testing.T) {
	lit, err := FromNumber("2.0")
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []*Node{FromFloat(2), FromUint(2), lit} {
		if c := Compare(FromInt(2), n); c != 0 {
			t.Errorf("2 vs %v: %d", ToAny(n), c)
		}
	}
}

func TestClone(t *testing.T) {
	orig := FromMap(map[string]*Node{
		"a": list(FromInt(1), FromString("x")),
	})
	c := orig.Clone()
	if Compare(orig, c) != 0 {
		t.Fatalf("clone differs")
	}
	*Get(c, "a").Values[0].Int64 = 7
	if v, _ := Get(orig, "a").Values[0].Int64Value(); v != 1 {
		t.Errorf("clone shares storage with original")
	}
}
