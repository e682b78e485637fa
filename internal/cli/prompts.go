package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/hdkit/internal/wallet"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// maxSecretLine bounds a single line of secret input.
const maxSecretLine = 4096

// readSecret reads one line of secret input. On a terminal the prompt is
// shown on stderr and echo is disabled; piped input is read line by line.
func (a *app) readSecret(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // G115: Fd() fits in int
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
		secret, err := term.ReadPassword(int(f.Fd())) //nolint:gosec // G115: Fd() fits in int
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", kiterr.WithCause(kiterr.ErrInvalidInput, err)
		}
		defer wallet.ZeroBytes(secret)
		return strings.TrimSpace(string(secret)), nil
	}

	if a.input == nil {
		a.input = bufio.NewReaderSize(io.LimitReader(in, 16*maxSecretLine), maxSecretLine)
	}
	line, err := a.input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", kiterr.WithCause(kiterr.ErrInvalidInput, err)
	}
	line = strings.TrimSpace(line)
	if line == "" && errors.Is(err, io.EOF) {
		return "", kiterr.WithSuggestion(kiterr.ErrInvalidInput, "no input provided on stdin")
	}
	return line, nil
}
