package encode

import (
	"strings"

	"github.com/fatih/color"
)

type colorClass int

const (
	nullClass colorClass = iota
	boolClass
	numberClass
	stringClass
	keyClass
)

// Colors maps syntax classes to terminal color functions. A nil Colors
// writes plain text.
type Colors struct {
	Default func(string, ...any) string
	Map     map[colorClass]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[colorClass]func(string, ...any) string{},
	}
	colors.Map[nullClass] = color.RGB(168, 0, 196).SprintfFunc()
	colors.Map[boolClass] = color.CyanString
	colors.Map[numberClass] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[stringClass] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[keyClass] = color.RGB(128, 168, 196).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) paint(class colorClass, s string) string {
	if c == nil {
		return s
	}
	f := c.Map[class]
	if f == nil {
		f = c.Default
	}
	return f(s)
}
