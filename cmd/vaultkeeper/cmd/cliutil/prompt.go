package cliutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var ErrAborted = errors.New("операция отменена")

// ReadSecret asks for a value without echo when stdin is a terminal and reads
// a plain line otherwise.
func ReadSecret(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("ошибка чтения: %w", err)
		}
		return string(b), nil
	}

	return readLine(cmd)
}

// Confirm asks a yes/no question. Anything but y/yes is a no.
func Confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", question)
	answer, err := readLine(cmd)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "д", "да":
		return true, nil
	}
	return false, nil
}

// readLine reads up to a newline one byte at a time so that the next prompt
// still sees the rest of the input.
func readLine(cmd *cobra.Command) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := cmd.InOrStdin().Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				break
			}
			return "", fmt.Errorf("ошибка чтения: %w", err)
		}
	}
	return strings.TrimRight(sb.String(), "\r"), nil
}
