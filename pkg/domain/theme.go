package domain

// Theme names understood by the server's card-set generator.
const (
	ThemeAnimals = "animals"
	ThemeFruits  = "fruits"
	ThemeSpace   = "space"
	ThemeOcean   = "ocean"
)

// Themes is the cycle order used by the client.
var Themes = []string{ThemeAnimals, ThemeFruits, ThemeSpace, ThemeOcean}

// ValidTheme returns true if t is a known theme.
func ValidTheme(t string) bool {
	for _, v := range Themes {
		if v == t {
			return true
		}
	}
	return false
}
