package types

// Confirmer gates destructive actions. Confirm returns true only when the
// user explicitly agreed to prompt.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Preconfirmed approves every prompt. Used for --yes style flags.
var Preconfirmed Confirmer = ConfirmFunc(func(string) bool { return true })
