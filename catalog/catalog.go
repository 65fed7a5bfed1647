// Package catalog S.O.L.I.D. 五条原则的索引
package catalog

import (
	"strings"

	"solid/errors"
)

// Principle 一条设计原则
type Principle struct {
	Letter  string
	Name    string
	Summary string
	Package string
}

var principles = []Principle{
	{
		Letter:  "S",
		Name:    "Single Responsibility",
		Summary: "A class should have one, and only one, reason to change.",
		Package: "solid/principles/srp",
	},
	{
		Letter:  "O",
		Name:    "Open Closed",
		Summary: "You should be able to extend a classes behavior, without modifying it.",
		Package: "solid/principles/ocp",
	},
	{
		Letter:  "L",
		Name:    "Liskov Substitution",
		Summary: "Derived classes must be substitutable for their base classes.",
		Package: "solid/principles/lsp",
	},
	{
		Letter:  "I",
		Name:    "Interface Segregation",
		Summary: "Make fine grained interfaces that are client specific.",
		Package: "solid/principles/isp",
	},
	{
		Letter:  "D",
		Name:    "Dependency Inversion",
		Summary: "Depend on abstractions, not on concretions.",
		Package: "solid/principles/dip",
	},
}

// All 按 S.O.L.I.D. 顺序返回全部原则（副本）
func All() []Principle {
	out := make([]Principle, len(principles))
	copy(out, principles)
	return out
}

// Lookup 按字母或名称查找（大小写不敏感，忽略空格与连字符）
func Lookup(key string) (Principle, error) {
	k := normalize(key)
	for _, p := range principles {
		if k == strings.ToLower(p.Letter) || k == normalize(p.Name) {
			return p, nil
		}
	}
	return Principle{}, errors.Errorf(errors.ErrCodeNotFound, "unknown principle %q", key)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "", "/", "").Replace(s)
}
