package domain

type ButtonShape string

const (
	ButtonPill   ButtonShape = "pill"
	ButtonSquare ButtonShape = "square"
)

// Theme is the record a profile page is rendered against.
type Theme struct {
	Name        string
	Background  string
	Surface     string
	Text        string
	Accent      string
	ButtonShape ButtonShape
}

const DefaultThemeName = "sakura"

var Themes = map[string]Theme{
	"sakura": {
		Name:        "sakura",
		Background:  "#fff1f5",
		Surface:     "#ffffff",
		Text:        "#3b1f2b",
		Accent:      "#e75480",
		ButtonShape: ButtonPill,
	},
	"midnight": {
		Name:        "midnight",
		Background:  "#0b1020",
		Surface:     "#161c33",
		Text:        "#e6e9f5",
		Accent:      "#7c8cff",
		ButtonShape: ButtonSquare,
	},
	"matcha": {
		Name:        "matcha",
		Background:  "#eef5e6",
		Surface:     "#fbfdf7",
		Text:        "#233018",
		Accent:      "#5f8d3a",
		ButtonShape: ButtonPill,
	},
	"sunset": {
		Name:        "sunset",
		Background:  "#2a1320",
		Surface:     "#3d1c2c",
		Text:        "#ffe8d6",
		Accent:      "#ff8c42",
		ButtonShape: ButtonSquare,
	},
}

// ThemeByName falls back to the default theme for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes[DefaultThemeName]
}

func IsKnownTheme(name string) bool {
	_, ok := Themes[name]
	return ok
}
