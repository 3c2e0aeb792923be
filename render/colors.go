package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/datatree/kind"
)

// Role is what a piece of output text shows.
type Role int

const (
	NameRole Role = iota
	TypeRole
	ValueRole
	MetaRole
	SepRole
	BranchRole
)

type Colorable struct {
	Kind kind.Kind
	Role Role
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func rgb(r, g, b int) func(string, ...any) string {
	c := color.RGB(r, g, b)
	c.EnableColor()
	return c.SprintfFunc()
}

func named(attr color.Attribute) func(string, ...any) string {
	c := color.New(attr)
	c.EnableColor()
	return c.SprintfFunc()
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range kind.Kinds() {
		able := Colorable{Kind: k, Role: TypeRole}
		colors.Map[able] = rgb(74, 92, 138)
		able.Role = MetaRole
		colors.Map[able] = named(color.FgBlue)
		able.Role = SepRole
		colors.Map[able] = rgb(255, 0, 196)
		able.Role = NameRole
		colors.Map[able] = rgb(128, 168, 196)
		if k.IsInteger() || k.IsFloat() {
			able.Role = ValueRole
			colors.Map[able] = rgb(128, 216, 236)
		}
	}
	colors.Map[Colorable{Kind: kind.Null, Role: ValueRole}] = rgb(168, 0, 196)
	colors.Map[Colorable{Kind: kind.Bool, Role: ValueRole}] = named(color.FgCyan)
	colors.Map[Colorable{Kind: kind.String, Role: ValueRole}] = rgb(8, 196, 16)
	colors.Map[Colorable{Kind: kind.Dictionary, Role: BranchRole}] = rgb(196, 168, 128)

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

// NoColors returns colors which leave text unchanged.
func NoColors() *Colors {
	return &Colors{Default: colorDefault, Map: map[Colorable]func(string, ...any) string{}}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k kind.Kind, r Role, s string) string {
	return c.Get(k, r)(s)
}

func (c *Colors) Get(k kind.Kind, r Role) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Role: r}]
	if f == nil {
		return c.Default
	}
	return f
}
