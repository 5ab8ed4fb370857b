package ui

import (
	"fmt"
	"strings"
)

// Box displays content inside a bordered box with an optional title.
func Box(title string, content string) {
	lines := strings.Split(content, "\n")
	width := len(title)
	for _, line := range lines {
		if n := len(line); n > width {
			width = n
		}
	}
	if width < 40 {
		width = 40
	}

	fmt.Printf("┌%s┐\n", strings.Repeat("─", width+2))
	if title != "" {
		fmt.Printf("│ %-*s │\n", width, title)
		fmt.Printf("├%s┤\n", strings.Repeat("─", width+2))
	}
	for _, line := range lines {
		fmt.Printf("│ %-*s │\n", width, line)
	}
	fmt.Printf("└%s┘\n", strings.Repeat("─", width+2))
}
