// Package prompts builds the generation prompts from embedded templates.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var templateFS embed.FS

var (
	loadOnce  sync.Once
	loadErr   error
	templates map[string]*template.Template
)

// Data holds template data for all three prompt kinds. Question is only
// used by the answer prompt.
type Data struct {
	Topic    string
	Age      int
	Tone     string
	Question string
}

var names = []string{"lesson", "quiz", "answer"}

func load() error {
	loadOnce.Do(func() {
		templates = make(map[string]*template.Template)
		for _, name := range names {
			file := "templates/" + name + ".txt"
			content, err := templateFS.ReadFile(file)
			if err != nil {
				loadErr = fmt.Errorf("read prompt file %s: %w", file, err)
				return
			}
			tmpl, err := template.New(name).Parse(string(content))
			if err != nil {
				loadErr = fmt.Errorf("parse prompt template %s: %w", file, err)
				return
			}
			templates[name] = tmpl
		}
	})
	return loadErr
}

func build(name string, data Data) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	tmpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildLesson builds the lesson generation prompt.
func BuildLesson(data Data) (string, error) {
	return build("lesson", data)
}

// BuildQuiz builds the quiz generation prompt.
func BuildQuiz(data Data) (string, error) {
	return build("quiz", data)
}

// BuildAnswer builds the free-text question answering prompt.
func BuildAnswer(data Data) (string, error) {
	return build("answer", data)
}
