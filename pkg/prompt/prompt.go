// Package prompt asks for missing command input on the terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/mellow/pkg/entry"
)

// ErrCanceled is returned when the user declines or aborts a prompt.
var ErrCanceled = errors.New("prompt: canceled")

// Terminal prompts over the given streams.
type Terminal struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// Confirm asks a yes/no question. Anything but an explicit yes is a no.
func (t Terminal) Confirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     t.In,
		Stdout:    t.Out,
	}
	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrCanceled
		}
		return false, err
	}
	yes, err := ParseBool(result)
	if err != nil {
		return false, nil
	}
	return yes, nil
}

// Text asks for a non-blank line of text.
func (t Terminal) Text(label string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}
	p := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  notBlank,
		Stdin:     t.In,
		Stdout:    t.Out,
	}
	result, err := p.Run()
	if err != nil {
		return "", canceled(err)
	}
	return result, nil
}

// Mood lets the user pick one of the known moods, starting on Neutral.
func (t Terminal) Mood() (entry.Mood, error) {
	moods := entry.Moods()
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Emoji }} {{ .String | bold }}",
		Inactive: "   {{ .Emoji }} {{ .String }}",
		Selected: "{{ .Emoji }} {{ .String | bold }}",
	}
	s := promptui.Select{
		HideHelp:  true,
		Label:     "How are you feeling",
		Items:     moods,
		Templates: templates,
		Size:      len(moods),
		CursorPos: indexOf(moods, entry.Neutral),
		Searcher:  moodSearcher(moods),
		Stdin:     t.In,
		Stdout:    t.Out,
	}
	i, _, err := s.Run()
	if err != nil {
		return "", canceled(err)
	}
	return moods[i], nil
}

func moodSearcher(moods []entry.Mood) func(string, int) bool {
	return func(input string, index int) bool {
		name := strings.ToLower(string(moods[index]))
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}
}

func indexOf(moods []entry.Mood, m entry.Mood) int {
	for i, candidate := range moods {
		if candidate == m {
			return i
		}
	}
	return 0
}

func notBlank(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("empty")
	}
	return nil
}

func canceled(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrCanceled
	}
	return fmt.Errorf("prompt: %w", err)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
