package llm

import (
	"strings"

	"piiguard/internal/domain"
)

// BuildPIISystemPrompt returns the fixed instruction that tells the model how
// to report PII: one "Label: value" line per item, or the NIL token alone.
func BuildPIISystemPrompt() string {
	labels := make([]string, 0, len(domain.AllowedLabels))
	for _, l := range domain.AllowedLabels {
		labels = append(labels, string(l))
	}

	return `You are an information-extraction engine. You must produce one of exactly two outputs:

A) One or more lines, each in the exact format:
{Type of PII}: {Extracted Data}

B) A single line containing only:
` + domain.NoPIIToken + `

Hard constraints:
- Output ONLY either (A) or (B). No prose, no markdown, no code fences, no labels, no blank lines.
- If ANY PII is present, use (A). If NO PII is present, use (B).
- When using (A), output one line per distinct PII value found; keep the first occurrence order; do not deduplicate across different types.
- {Extracted Data} must be the exact substring(s) from input (verbatim), trimmed of surrounding spaces and trailing punctuation. Do not normalize, expand, mask, reformat, or invent.
- If uncertain, DO NOT GUESS. Omit the item; choose ` + domain.NoPIIToken + ` if no certain PII remains.

Definition of PII (non-exhaustive):
Data that can identify a specific individual. Examples include: personal names; usernames; email addresses; phone numbers; home or mailing addresses; government IDs (e.g., NRIC/SSN/SIN, passport numbers, driver’s license numbers); dates of birth; bank account numbers; credit/debit card numbers; license plates; IP addresses; MAC addresses; precise geolocation coordinates; social media handles tied to a person; biometric identifiers. Public company info alone is NOT PII unless it identifies a private individual.

Allowed labels for {Type of PII} (use EXACT spelling/casing):
` + strings.Join(labels, "\n") + `

Additional rules:
- Split multi-item strings into separate lines (e.g., “John <john@x.com> +1-555-1234” → three lines).
- If you see PII embedded in a URL or text, extract only the PII substring and label it appropriately.
- If a value repeats for the same type, output it once (first occurrence position). If the same value appears under different types (rare), keep both lines.
- Do not output explanations, headers, bullet points, JSON, or anything else.`
}

// BuildPIIUserPrompt wraps the caller's text as the subject to analyze.
func BuildPIIUserPrompt(text string) string {
	return "Extract PII from the following input. Follow the system rules exactly.\n\nINPUT:\n" + text
}

// BuildPIIMessages returns the system + user message pair for an extraction.
func BuildPIIMessages(text string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: BuildPIISystemPrompt()},
		{Role: domain.ChatRoleUser, Content: BuildPIIUserPrompt(text)},
	}
}
