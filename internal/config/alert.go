package config

import (
	"errors"
	"fmt"
	"strings"
)

// Severity classifies an alert and selects its palette.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

func (s Severity) orDefault() Severity {
	if s == "" {
		return SeverityError
	}
	return s
}

// Button pairs a label with the shell command its click runs.
type Button struct {
	Label   string
	Command string
}

// Alert is the immutable content of one invocation: the message, its
// severity, the optional detailed body and the ordered button list.
// The detailed body is kept for collaborators but never rendered on the
// surface; only the primary message is drawn.
type Alert struct {
	Message  string
	Severity Severity
	Detailed string
	Buttons  []Button
}

// NewAlert validates flag input and builds the alert content model.
// A missing message is a fatal configuration error.
func NewAlert(message, severity string, buttonSpecs []string) (*Alert, error) {
	if message == "" {
		return nil, errors.New("missing required flag message (-m/--message)")
	}

	alert := &Alert{
		Message:  message,
		Severity: Severity(strings.ToLower(severity)).orDefault(),
	}
	for _, spec := range buttonSpecs {
		btn, err := ParseButton(spec)
		if err != nil {
			return nil, err
		}
		alert.Buttons = append(alert.Buttons, btn)
	}
	return alert, nil
}

// ParseButton splits a LABEL:COMMAND flag value on the first colon, so the
// command itself may contain colons.
func ParseButton(spec string) (Button, error) {
	label, command, ok := strings.Cut(spec, ":")
	if !ok {
		return Button{}, fmt.Errorf("button %q missing action, want LABEL:COMMAND", spec)
	}
	if label == "" {
		return Button{}, fmt.Errorf("button %q missing label", spec)
	}
	if command == "" {
		return Button{}, fmt.Errorf("button %q missing action", spec)
	}
	return Button{Label: label, Command: command}, nil
}
