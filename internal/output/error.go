package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// ErrorOutput is the JSON envelope for a failed command.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

func errorDetail(err error) ErrorDetail {
	var ke *kiterr.KitError
	if kiterr.As(err, &ke) {
		msg := ke.Message
		if ke.Cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, ke.Cause)
		}
		return ErrorDetail{
			Code:       ke.Code,
			Message:    msg,
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			ExitCode:   ke.ExitCode,
		}
	}
	return ErrorDetail{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		ExitCode: kiterr.ExitGeneral,
	}
}

// FormatError writes err to w. Details are printed in key order.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	d := errorDetail(err)
	if format == FormatJSON {
		return writeJSON(w, ErrorOutput{Error: d})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", d.Message)

	if len(d.Details) > 0 {
		sb.WriteString("\nDetails:\n")
		keys := make([]string, 0, len(d.Details))
		for k := range d.Details {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", k, d.Details[k])
		}
	}

	if d.Suggestion != "" {
		fmt.Fprintf(&sb, "\nSuggestion: %s\n", d.Suggestion)
	}

	_, writeErr := io.WriteString(w, sb.String())
	return writeErr
}
