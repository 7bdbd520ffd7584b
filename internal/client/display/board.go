// FILE: connect4/internal/client/display/board.go
package display

import (
	"fmt"
	"strings"
)

// RenderBoard renders the server's ASCII grid with colored discs: the
// player's X discs red, the computer's O discs blue, column labels cyan.
func RenderBoard(asciiBoard string) {
	for _, line := range strings.Split(asciiBoard, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		for _, char := range line {
			switch char {
			case 'X':
				fmt.Printf("%s%c%s", Red, char, Reset)
			case 'O':
				fmt.Printf("%s%c%s", Blue, char, Reset)
			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				// Column labels
				fmt.Printf("%s%c%s", Cyan, char, Reset)
			default:
				fmt.Printf("%c", char)
			}
		}
		fmt.Println()
	}
}

// StatusText returns a colored game status indicator
func StatusText(status string) string {
	switch status {
	case "active":
		return Green + status + Reset
	case "won":
		return Cyan + status + Reset
	case "lost":
		return Red + status + Reset
	default:
		return Yellow + status + Reset
	}
}
