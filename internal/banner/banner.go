package banner

import (
	"jsonbench/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(styles.ColorBanner).
		Bold(true)

	ascii := `
      _                 __                    __  
     (_)________  ____ / /_  ___  ____  _____/ /_ 
    / / ___/ __ \/ __ \/ __ \/ _ \/ __ \/ ___/ __ \
   / (__  ) /_/ / / / / /_/ /  __/ / / / /__/ / / /
__/ /____/\____/_/ /_/_.___/\___/_/ /_/\___/_/ /_/ 
/___/                                              `

	tagline := renderer.NewStyle().Foreground(styles.ColorSubtle).
		Render("   parse and serialize throughput for Go JSON codecs")

	return "\n" + style.Render(ascii) + "\n" + tagline + "\n"
}
