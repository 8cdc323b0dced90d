// Package prompt runs the interactive mood logging flow on a plain terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/moodtrack/pkg/mood"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("prompt: cancelled")

// Prompter asks questions on In/Out; nil streams mean the process terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// Answers is the result of the entry flow.
type Answers struct {
	MoodIndex int
	Emotions  []string
	Journal   string
}

// Entry walks mood, emotions and journal, starting from current.
func (p *Prompter) Entry(current mood.Entry, logged bool) (Answers, error) {
	start := mood.DefaultIndex
	if logged {
		start = current.MoodIndex
	}
	idx, err := p.Mood(start)
	if err != nil {
		return Answers{}, err
	}
	emotions, err := p.Emotions(current.Emotions)
	if err != nil {
		return Answers{}, err
	}
	journal, err := p.Journal(current.Journal)
	if err != nil {
		return Answers{}, err
	}
	return Answers{MoodIndex: idx, Emotions: emotions, Journal: journal}, nil
}

// Mood asks for a mood, with the cursor on initial.
func (p *Prompter) Mood(initial int) (int, error) {
	moods := mood.All()
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Label | bold }} {{ .Index | faint }}",
		Inactive: "   {{ .Label }} {{ .Index | faint }}",
		Selected: "Mood: {{ .Label | bold }}",
	}

	searcher := func(input string, index int) bool {
		name := strings.ToLower(moods[index].Label)
		return strings.Contains(name, strings.ToLower(strings.TrimSpace(input)))
	}

	if !mood.Valid(initial) {
		initial = mood.DefaultIndex
	}
	sel := promptui.Select{
		HideHelp:  true,
		Label:     "How are you feeling",
		Items:     moods,
		Templates: templates,
		Size:      len(moods),
		CursorPos: initial,
		Searcher:  searcher,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	i, _, err := sel.Run()
	if err != nil {
		return 0, cancelled(err)
	}
	return moods[i].Index, nil
}

type emotionItem struct {
	Name string
	On   bool
	Done bool
}

// Emotions toggles catalogue emotions until "Done" is picked. Tags in
// selected that are not in the catalogue are kept.
func (p *Prompter) Emotions(selected []string) ([]string, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "➜ {{ if .Done }}{{ .Name | bold | green }}{{ else }}{{ if .On }}[x]{{ else }}[ ]{{ end }} {{ .Name | bold }}{{ end }}",
		Inactive: "  {{ if .Done }}{{ .Name | faint | green }}{{ else }}{{ if .On }}[x]{{ else }}[ ]{{ end }} {{ .Name }}{{ end }}",
		Selected: "{{ if .Done }}Emotions chosen{{ else }}{{ .Name }}{{ end }}",
	}

	tags := mood.NormalizeEmotions(selected)
	cursor := 0
	for {
		items := emotionItems(tags)
		sel := promptui.Select{
			HideHelp:     true,
			HideSelected: true,
			Label:        "Emotions (enter toggles)",
			Items:        items,
			Templates:    templates,
			Size:         10,
			CursorPos:    cursor,
			Stdin:        p.stdin(),
			Stdout:       p.stdout(),
		}
		i, _, err := sel.Run()
		if err != nil {
			return nil, cancelled(err)
		}
		if items[i].Done {
			return tags, nil
		}
		tags = mood.ToggleEmotion(tags, items[i].Name)
		cursor = i
	}
}

func emotionItems(tags []string) []emotionItem {
	on := make(map[string]bool, len(tags))
	for _, t := range tags {
		on[strings.ToLower(t)] = true
	}
	items := []emotionItem{{Name: "Done", Done: true}}
	for _, e := range mood.Emotions {
		items = append(items, emotionItem{Name: e, On: on[strings.ToLower(e)]})
	}
	return items
}

// Journal asks for a one-line note, pre-filled with initial.
func (p *Prompter) Journal(initial string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}
	pr := promptui.Prompt{
		Label:     "Journal (optional)",
		Default:   initial,
		AllowEdit: true,
		Templates: templates,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	out, err := pr.Run()
	if err != nil {
		return "", cancelled(err)
	}
	return strings.TrimSpace(out), nil
}

// Confirm asks a yes/no question. Answering no is (false, nil).
func (p *Prompter) Confirm(label string) (bool, error) {
	pr := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	_, err := pr.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, cancelled(err)
	}
}

func cancelled(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrCancelled
	}
	return fmt.Errorf("prompt: %w", err)
}

func (p *Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p *Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopCloser{p.Out}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
