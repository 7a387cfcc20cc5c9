package ai

import (
	"holdingscompare/internal/report"
	"holdingscompare/ports"
)

// SystemPrompt frames the model for every comparison request.
const SystemPrompt = "You are a helpful financial data analyst."

const comparisonTemplate = "comparison"

// AnalysisRequest is the conversation sent for one comparison.
type AnalysisRequest struct {
	System string
	Prompt string
}

// Messages returns the request as a system + user conversation.
func (r AnalysisRequest) Messages() []ports.Message {
	return []ports.Message{
		{Role: ports.RoleSystem, Content: r.System},
		{Role: ports.RoleUser, Content: r.Prompt},
	}
}

// ComparisonPrompter builds the fixed comparison prompt around two reports.
type ComparisonPrompter struct {
	prompts *PromptManager
}

// NewComparisonPrompter creates a prompter backed by the embedded template.
func NewComparisonPrompter() *ComparisonPrompter {
	return &ComparisonPrompter{prompts: NewPromptManager()}
}

// Build embeds first and second verbatim, first above second.
func (p *ComparisonPrompter) Build(first, second report.RenderedReport) (AnalysisRequest, error) {
	prompt, err := p.prompts.RenderPrompt(comparisonTemplate, map[string]string{
		"FIRST_REPORT":  first.Text,
		"SECOND_REPORT": second.Text,
	})
	if err != nil {
		return AnalysisRequest{}, err
	}
	return AnalysisRequest{System: SystemPrompt, Prompt: prompt}, nil
}
