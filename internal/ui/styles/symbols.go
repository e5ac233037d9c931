package styles

// Status symbols used by the status and doctor renderers.
const (
	SymbolOK      = "✓"
	SymbolWarning = "⚠"
	SymbolError   = "✗"
	SymbolBullet  = "•"
)

// OK renders a green checkmark with trailing text.
func OK(text string) string {
	return SuccessStyle.Render(SymbolOK) + " " + text
}

// Warn renders an orange warning sign with trailing text.
func Warn(text string) string {
	return WarningStyle.Render(SymbolWarning) + " " + text
}

// Fail renders a red cross with trailing text.
func Fail(text string) string {
	return ErrorStyle.Render(SymbolError) + " " + text
}

// Bullet renders a muted bullet with trailing text.
func Bullet(text string) string {
	return MutedStyle.Render(SymbolBullet) + " " + text
}
