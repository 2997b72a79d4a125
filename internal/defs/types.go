// internal/defs/types.go
package defs

// ThemeDefinition: палитра взрывов в файле тем
type ThemeDefinition struct {
	ID     string   `json:"id"`
	Colors []string `json:"colors"`
}

// DefaultThemeID: тема, к которой откатываемся, если имя неизвестно
const DefaultThemeID = "default"

// BuiltinThemes: встроенные палитры в порядке переключения по Space
var BuiltinThemes = []ThemeDefinition{
	{
		ID: DefaultThemeID,
		Colors: []string{
			"#ff1493", "#00ff00", "#00bfff", "#ffd700",
			"#ff6b6b", "#4169e1", "#ff8c00", "#fff",
			"#ff00ff", "#00ffff", "#ffec8b", "#ff4500",
		},
	},
	{ID: "gold", Colors: []string{"#ffd700", "#ffeb3b", "#ffc107", "#ff9800", "#fff8e1"}},
	{ID: "cool", Colors: []string{"#00ffff", "#00bfff", "#1e90ff", "#4169e1", "#e0ffff"}},
	{ID: "neon", Colors: []string{"#ff00ff", "#00ffff", "#ffff00", "#ff0000", "#00ff00"}},
}
