package llm

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

// ModelProvider selects a provider-specific prompt variant, e.g. "ollama".
type ModelProvider string

// PromptKey names one of the review prompts.
type PromptKey string

const (
	DefaultProvider   ModelProvider = "default"
	RoastSystemPrompt PromptKey     = "roast_system"
	RoastUserPrompt   PromptKey     = "roast_user"

	promptExt = ".prompt"
)

// requiredPrompts must each have a default variant.
var requiredPrompts = []PromptKey{RoastSystemPrompt, RoastUserPrompt}

// PromptManager holds the review prompt templates. A file named
// roast_system_ollama.prompt overrides roast_system_default.prompt for the
// ollama provider; every other provider gets the default.
type PromptManager struct {
	variants map[PromptKey]map[ModelProvider]*template.Template
}

// NewPromptManager loads the prompts compiled into the binary.
func NewPromptManager() (*PromptManager, error) {
	sub, err := fs.Sub(promptFiles, "prompts")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded prompts: %w", err)
	}
	return loadPrompts(sub)
}

// loadPrompts parses every *.prompt file at the root of fsys.
func loadPrompts(fsys fs.FS) (*PromptManager, error) {
	names, err := fs.Glob(fsys, "*"+promptExt)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}

	pm := &PromptManager{variants: make(map[PromptKey]map[ModelProvider]*template.Template)}
	for _, name := range names {
		key, provider, err := splitPromptName(name)
		if err != nil {
			return nil, err
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt %s: %w", name, err)
		}
		// Unset fields must fail loudly instead of rendering "<no value>" into the prompt.
		tmpl, err := template.New(strings.TrimSuffix(name, promptExt)).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt %s: %w", name, err)
		}
		if pm.variants[key] == nil {
			pm.variants[key] = make(map[ModelProvider]*template.Template)
		}
		pm.variants[key][provider] = tmpl
	}

	var missing []string
	for _, key := range requiredPrompts {
		if _, ok := pm.variants[key][DefaultProvider]; !ok {
			missing = append(missing, string(key)+"_"+string(DefaultProvider)+promptExt)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing default prompts: %s", strings.Join(missing, ", "))
	}
	return pm, nil
}

// splitPromptName turns "roast_user_ollama.prompt" into ("roast_user", "ollama").
func splitPromptName(name string) (PromptKey, ModelProvider, error) {
	base := strings.TrimSuffix(path.Base(name), promptExt)
	i := strings.LastIndex(base, "_")
	if i <= 0 || i == len(base)-1 {
		return "", "", fmt.Errorf("invalid prompt file name %q, want <key>_<provider>%s", name, promptExt)
	}
	return PromptKey(base[:i]), ModelProvider(base[i+1:]), nil
}

// Get returns the provider's variant of key, or the default variant.
func (pm *PromptManager) Get(key PromptKey, provider ModelProvider) (*template.Template, error) {
	variants, ok := pm.variants[key]
	if !ok {
		return nil, fmt.Errorf("unknown prompt %q", key)
	}
	if tmpl, ok := variants[provider]; ok {
		return tmpl, nil
	}
	if tmpl, ok := variants[DefaultProvider]; ok {
		return tmpl, nil
	}
	return nil, fmt.Errorf("prompt %q has no variant for provider %q", key, provider)
}

func (pm *PromptManager) Render(key PromptKey, provider ModelProvider, data any) (string, error) {
	tmpl, err := pm.Get(key, provider)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
