// Package snake walks the user through a command interactively.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/tend/pkg/page"
)

// IO is where prompts read and write.
type IO struct {
	In  io.Reader
	Out io.Writer
}

// PromptPage asks which data-collecting page to record on.
func PromptPage(catalog *page.Catalog, o IO) (page.ID, error) {
	var pages []page.Page
	for _, p := range catalog.Pages() {
		if p.DataCollecting {
			pages = append(pages, p)
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Label | bold }} {{ .ID | green }}",
		Inactive: "   {{ .Label }} {{ .ID | cyan }}",
		Selected: "{{ .Label | bold }}",
		Details: `
--------- Needs ----------
{{ range .Required }}{{ . }} {{ end }}
`,
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Page",
		Items:     pages,
		Templates: templates,
		Size:      10,
		Searcher:  pageSearcher(pages),
		Stdin:     io.NopCloser(o.In),
		Stdout:    nopCloser{o.Out},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return pages[i].ID, nil
}

func pageSearcher(pages []page.Page) func(input string, index int) bool {
	return func(input string, index int) bool {
		p := pages[index]
		name := strings.Replace(strings.ToLower(p.Label+string(p.ID)), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)

		return strings.Contains(name, input)
	}
}

// PromptFields asks for each required field of p that pairs does not
// already set, and returns pairs with the answers appended as key=value.
func PromptFields(p page.Page, pairs []string, o IO) ([]string, error) {
	have := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		if k, _, ok := strings.Cut(pair, "="); ok {
			have[k] = true
		}
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}

	out := append([]string(nil), pairs...)
	for _, field := range p.Required {
		if have[field] {
			continue
		}
		prompt := promptui.Prompt{
			Label:     field,
			Templates: templates,
			Validate:  required,
			Stdin:     io.NopCloser(o.In),
			Stdout:    nopCloser{o.Out},
		}
		result, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		out = append(out, field+"="+strings.TrimSpace(result))
	}
	return out, nil
}

func required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("empty")
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
