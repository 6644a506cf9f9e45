package agents

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsFS embed.FS

// Prompt is one named prompt loaded from the embedded registry.
type Prompt struct {
	System      string  `yaml:"system"`
	Template    string  `yaml:"template"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"maxTokens"`
}

type promptEntry struct {
	spec Prompt
	tmpl *template.Template
}

var prompts = mustLoadPrompts()

func mustLoadPrompts() map[string]promptEntry {
	raw, err := promptsFS.ReadFile("prompts.yaml")
	if err != nil {
		panic(fmt.Sprintf("read prompts.yaml: %v", err))
	}

	var specs map[string]Prompt
	if err := yaml.Unmarshal(raw, &specs); err != nil {
		panic(fmt.Sprintf("parse prompts.yaml: %v", err))
	}

	entries := make(map[string]promptEntry, len(specs))
	for name, spec := range specs {
		tmpl, err := template.New(name).Parse(spec.Template)
		if err != nil {
			panic(fmt.Sprintf("parse prompt template %q: %v", name, err))
		}
		entries[name] = promptEntry{spec: spec, tmpl: tmpl}
	}
	return entries
}

// buildRequest renders the named prompt with data into a GenerateRequest.
func buildRequest(name string, data interface{}) (GenerateRequest, error) {
	entry, ok := prompts[name]
	if !ok {
		return GenerateRequest{}, fmt.Errorf("unknown prompt %q", name)
	}

	var buf bytes.Buffer
	if err := entry.tmpl.Execute(&buf, data); err != nil {
		return GenerateRequest{}, fmt.Errorf("render prompt %q: %w", name, err)
	}

	return GenerateRequest{
		System:      entry.spec.System,
		Prompt:      buf.String(),
		Temperature: entry.spec.Temperature,
		MaxTokens:   entry.spec.MaxTokens,
	}, nil
}
