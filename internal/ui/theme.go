package ui

import (
	"strings"

	"github.com/idilsaglam/todo/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending, Active string
	BoxUnchecked, BoxChecked, BoxActive                   string
	CornerTL, CornerTR, CornerBL, CornerBR                string
	H, V                                                  string
	SymDone, SymUnchecked                                 string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	disableColor = false
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m", Active: "\033[94m",
			BoxUnchecked: "◻", BoxChecked: "◼", BoxActive: "◧",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•",
		}
	case "mono":
		disableColor = true
		current = Theme{
			BoxUnchecked: "[ ]", BoxChecked: "[x]", BoxActive: "[~]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymUnchecked: "-",
		}
	default: // classic
		current = Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Pending: fgYellow, Active: fgCyan,
			BoxUnchecked: "☐", BoxChecked: "☑", BoxActive: "◪",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }

// StatusBox returns the box symbol and color for s.
func StatusBox(s model.Status) (box, color string) {
	t := current
	switch s {
	case model.StatusDone:
		return t.BoxChecked, t.Success
	case model.StatusInProgress:
		return t.BoxActive, t.Active
	}
	return t.BoxUnchecked, t.Muted
}
