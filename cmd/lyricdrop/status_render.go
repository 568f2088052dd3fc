package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var statusKindNames = [...]string{
	statusInfo:  "INFO",
	statusOK:    "OK",
	statusWarn:  "WARN",
	statusError: "ERROR",
}

var statusKindColors = [...]string{
	statusInfo:  ansiBlue,
	statusOK:    ansiGreen,
	statusWarn:  ansiYellow,
	statusError: ansiRed,
}

const (
	statusLabelWidth = 16
	statusIndent     = "  "
)

// statusStyler renders the aligned label lines and section headers of the
// status report. Color is decided once, from the writer, so every render call
// agrees on it.
type statusStyler struct {
	color bool
}

func newStatusStyler(writer io.Writer) statusStyler {
	file, ok := writer.(*os.File)
	if !ok {
		return statusStyler{}
	}
	fd := file.Fd()
	return statusStyler{color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (st statusStyler) line(label string, kind statusKind, message string) string {
	status := "[" + statusKindNames[kind] + "]"
	if message != "" {
		status += " " + message
	}
	rendered := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if st.color {
		rendered = statusKindColors[kind] + rendered + ansiReset
	}
	return rendered
}

func (st statusStyler) header(title string) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if st.color {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}
