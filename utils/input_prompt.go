package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/codetrackhq/codetrack/constants/lipgloss"
)

// ReadLine prompts with a label and reads one trimmed line from the reader.
func ReadLine(label string, reader *bufio.Reader) (string, error) {
	fmt.Print(lipgloss.BlueSky.Render(label))

	input, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimSpace(input), nil
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// ConfirmPrompt asks a yes/no question and reports whether the user accepted.
func ConfirmPrompt(question string, reader *bufio.Reader) (bool, error) {
	answer, err := ReadLine(question+" (y/N): ", reader)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
