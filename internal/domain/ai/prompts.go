package ai

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/deikotec/socialflow/internal/domain/company"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.New("prompts").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(promptFS, "prompts/*.tmpl"))

// Template names.
const (
	PromptIdeas      = "ideas.tmpl"
	PromptStrategy   = "strategy.tmpl"
	PromptSingleIdea = "single_idea.tmpl"
	PromptMonthly    = "monthly.tmpl"
)

const defaultNetworks = "Instagram, TikTok y LinkedIn"

// CompanyContext is the company profile as rendered into prompts.
type CompanyContext struct {
	Name             string
	Sector           string
	Description      string
	TargetAudience   string
	USP              string
	Tone             string
	Website          string
	Instagram        string
	Products         string
	TargetNetworks   string
	ContentResources string
	ContentPlan      string
	Manychat         string
}

// NewCompanyContext renders a company profile, filling blanks with placeholders.
// website overrides the stored website, e.g. with scraped page text.
func NewCompanyContext(c *company.Company, website string) CompanyContext {
	if website == "" {
		website = c.Settings.Website
	}
	networks := defaultNetworks
	if len(c.Settings.TargetNetworks) > 0 {
		networks = strings.Join(c.Settings.TargetNetworks, ", ")
	}
	products := "No especificados"
	if len(c.Products) > 0 {
		lines := make([]string, 0, len(c.Products))
		for _, p := range c.Products {
			lines = append(lines, fmt.Sprintf("- %s (%s): %s", p.Name, p.Type, p.Description))
		}
		products = strings.Join(lines, "\n")
	}

	return CompanyContext{
		Name:             c.Name,
		Sector:           orDefault(c.Sector, "No especificado"),
		Description:      orDefault(c.Description, "No especificada"),
		TargetAudience:   orDefault(c.TargetAudience, "No especificado"),
		USP:              orDefault(c.USP, "No especificada"),
		Tone:             orDefault(c.Tone, "Profesional y cercano"),
		Website:          orDefault(website, "No especificado"),
		Instagram:        orDefault(c.Settings.Instagram, "No especificada"),
		Products:         products,
		TargetNetworks:   networks,
		ContentResources: orDefault(c.Settings.ContentResources, "No especificado"),
		ContentPlan:      c.Settings.ContentPlan,
		Manychat:         c.Settings.ManychatAutomations,
	}
}

// Render executes a prompt template.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
