package ai

import "fmt"

const promptTemplate = `You are an expert email writing assistant. Analyze the following user request and generate a professional email subject and body.

**User Request:**
"%s"

%s**Your Task:**
1. **Analyze & Synthesize**: From the user's request and provided context (if any), deduce the tone, recipient, sender, and primary goal of the email.
2. **Drafting**: Write a compelling, natural-sounding, and ready-to-send subject and email body.
3. **Formatting**:
   - The body MUST be formatted in clean HTML.
   - Use <p> for paragraphs.
   - Format the signature block with Name, Phone, Email, and Links on separate lines using <br>.
4. **Output**: Return your response as a single, minified JSON object with two keys: "subject" and "body".
5. Do not include any text, markdown, or code block formatting before or after the JSON object itself. Just the raw JSON.

**Example JSON Output:**
{"subject": "Inquiry Regarding Internship Opportunities", "body": "<p>Dear Hiring Manager,</p><p>I hope you're doing well...</p><p>Sincerely,<br>John Doe<br>555-0123<br>john@example.com</p>"}`

const contextTemplate = `**Additional Context (e.g., User's Resume/Info):**
"%s"

Use this context to personalize the email. Select only the details that align with the specific goal of the email.

`

// buildPrompt assembles the drafting prompt from the user request and
// optional supporting document text.
func buildPrompt(userPrompt, contextText string) string {
	contextSection := ""
	if contextText != "" {
		contextSection = fmt.Sprintf(contextTemplate, contextText)
	}
	return fmt.Sprintf(promptTemplate, userPrompt, contextSection)
}
