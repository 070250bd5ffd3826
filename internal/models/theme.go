package models

// Theme тема оформления. Значения совпадают со строками,
// которые сохраняются в хранилище предпочтений.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme возвращает тему для сохранённого значения.
// ok == false, если значение не является "dark" или "light".
func ParseTheme(s string) (Theme, bool) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, true
	default:
		return "", false
	}
}

func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// Toggle возвращает противоположную тему.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
