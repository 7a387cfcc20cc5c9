package ai

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed prompts/*.txt
var promptFS embed.FS

// PromptManager loads prompt templates compiled into the binary
type PromptManager struct {
	fsys fs.FS
}

// NewPromptManager creates a prompt manager over the embedded templates
func NewPromptManager() *PromptManager {
	sub, err := fs.Sub(promptFS, "prompts")
	if err != nil {
		// prompts/ is embedded at build time
		panic(err)
	}
	return &PromptManager{fsys: sub}
}

// LoadPrompt loads a prompt template by name
func (pm *PromptManager) LoadPrompt(name string) (string, error) {
	content, err := fs.ReadFile(pm.fsys, name+".txt")
	if err != nil {
		return "", fmt.Errorf("prompt template not found: %s: %w", name, err)
	}
	return string(content), nil
}

// RenderPrompt replaces {PLACEHOLDER} with values in one pass, so a value
// that happens to contain a placeholder is left as is.
func (pm *PromptManager) RenderPrompt(name string, replacements map[string]string) (string, error) {
	template, err := pm.LoadPrompt(name)
	if err != nil {
		return "", err
	}

	pairs := make([]string, 0, len(replacements)*2)
	for placeholder, value := range replacements {
		pairs = append(pairs, "{"+placeholder+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}
