package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datatree/node"
)

var leaves = []node.NodeInfo{
	{Class: "signal", Group: "magnetics", Version: 2, Name: "ip"},
	{Class: "signal", Group: "magnetics", Version: 1, Name: "bt"},
	{Class: "scalar", Group: "default", Version: 3, Name: "shot"},
	{Class: "image", Group: "camera", Version: 1, Name: "ir_frame"},
}

func TestFilter(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{`class == "signal"`, []string{"ip", "bt"}},
		{`version >= 2`, []string{"ip", "shot"}},
		{`group == "magnetics" && version < 2`, []string{"bt"}},
		{`glob("i*", name)`, []string{"ip", "ir_frame"}},
		{`name startsWith "s"`, []string{"shot"}},
		{`class in ["image", "scalar"]`, []string{"shot", "ir_frame"}},
		{`false`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			q, err := Compile(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			got, err := q.Filter(leaves)
			if err != nil {
				t.Fatal(err)
			}
			names := []string{}
			for _, l := range got {
				names = append(names, l.Name)
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{
		`version + 1`,
		`unknown == 1`,
		`class ==`,
	} {
		if _, err := Compile(src); !errors.Is(err, ErrQuery) {
			t.Errorf("Compile(%q) err = %v", src, err)
		}
	}
}
