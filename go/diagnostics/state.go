// Copyright 2026 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diagnostics reports lexical errors for a single source file.
//
// A State is one diagnostic session. It prints a banner naming the file the
// first time anything is reported, then for every error a one-line message
// followed by the offending source line. Errors never stop the caller; they
// only flip the session into the erroneous state.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// State tracks whether a session has reported errors and whether the file
// banner has been printed. It is not safe for concurrent use; create one
// State per file.
type State struct {
	fileName string
	out      io.Writer // banner and source excerpts
	errOut   io.Writer // error lines

	erroneous       bool
	fileNamePrinted bool
	errorCount      int
	colorForced     *bool

	bannerColor  *color.Color
	quoteColor   *color.Color
	labelColor   *color.Color
	excerptColor *color.Color
}

// Option configures a State.
type Option func(*State)

// WithOutput redirects the banner/excerpt stream and the error stream.
func WithOutput(out, errOut io.Writer) Option {
	return func(s *State) {
		s.out = out
		s.errOut = errOut
	}
}

// WithColor forces ANSI colouring on or off. Without it, colour is used only
// when the output stream is a terminal.
func WithColor(enabled bool) Option {
	return func(s *State) {
		s.colorForced = &enabled
	}
}

// New creates a diagnostic session for fileName.
func New(fileName string, opts ...Option) *State {
	s := &State{
		fileName:     fileName,
		out:          os.Stdout,
		errOut:       os.Stderr,
		bannerColor:  color.New(color.FgCyan, color.Bold),
		quoteColor:   color.New(color.FgYellow),
		labelColor:   color.New(color.FgGreen),
		excerptColor: color.New(color.FgBlue, color.Bold),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.colorForced != nil {
		s.setColor(*s.colorForced)
	} else {
		s.setColor(IsTerminal(s.out))
	}
	return s
}

func (s *State) setColor(enabled bool) {
	for _, c := range []*color.Color{s.bannerColor, s.quoteColor, s.labelColor, s.excerptColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// IsTerminal reports whether w is a terminal, including Cygwin ptys.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FileName returns the name of the file this session reports on.
func (s *State) FileName() string {
	return s.fileName
}

// SetFileName points the session at another file. It does not reset the
// flags; call Reset for that.
func (s *State) SetFileName(name string) {
	s.fileName = name
}

// PrintFileName prints the file banner once per session.
func (s *State) PrintFileName(name string) {
	if !s.fileNamePrinted {
		quote := s.quoteColor.Sprint(`"`)
		fmt.Fprintf(s.out, "%s%s%s%s:\n", s.bannerColor.Sprint("In file "), quote, name, quote)
	}
	s.fileNamePrinted = true
}

// Error reports message for the character at pos (an absolute character
// offset into buffer) on the given 1-based line. The session becomes
// erroneous and stays so until Reset.
func (s *State) Error(message string, line, pos int, buffer []rune) {
	s.PrintFileName(s.fileName)

	s.erroneous = true
	s.errorCount++
	fmt.Fprintf(s.errOut, "%s %s\n", s.labelColor.Sprint("error:"), message)
	s.printExcerpt(line, pos, buffer)
}

// Errorf is Error with a formatted message.
func (s *State) Errorf(line, pos int, buffer []rune, format string, args ...any) {
	s.Error(fmt.Sprintf(format, args...), line, pos, buffer)
}

// printExcerpt prints the source line containing pos between two empty
// gutter rows. Out of range positions are clamped to the buffer.
func (s *State) printExcerpt(line, pos int, buffer []rune) {
	text := SourceLine(buffer, pos)
	lineNo := strconv.Itoa(line)
	gutter := strings.Repeat(" ", len(lineNo)+1) + "|"

	fmt.Fprintln(s.out, gutter)
	fmt.Fprintln(s.out, s.excerptColor.Sprintf("%s | %s", lineNo, text))
	fmt.Fprintln(s.out, gutter)
}

// SourceLine returns the line of buffer that contains pos, without its
// terminating newline or carriage return.
func SourceLine(buffer []rune, pos int) string {
	pos = max(0, min(pos, len(buffer)))

	start := pos
	for start > 0 && buffer[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(buffer) && buffer[end] != '\n' {
		end++
	}
	return strings.TrimSuffix(string(buffer[start:end]), "\r")
}

// HasEncounteredError reports whether any error was reported this session.
func (s *State) HasEncounteredError() bool {
	return s.erroneous
}

// ErrorCount returns the number of errors reported this session.
func (s *State) ErrorCount() int {
	return s.errorCount
}

// Reset clears the session so it can be reused for another file.
func (s *State) Reset() {
	s.erroneous = false
	s.fileNamePrinted = false
	s.errorCount = 0
}
