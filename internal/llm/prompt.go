package llm

// fixed instruction sent with every generation
const uiSystemPrompt = `You are a helpful AI assistant that generates UI code based on descriptions.
Provide both HTML with Tailwind CSS classes and a React functional component using Tailwind CSS.
Ensure the generated UI is accessible and responsive. Use semantic HTML elements and include proper ARIA attributes where necessary.
For the React component, use modern React practices including hooks.
Return your response as a JSON string with 'html' and 'react' properties.`

// sampling parameters used for UI generation
func DefaultParams() Params {
	return Params{
		MaxTokens:        1000,
		Temperature:      0.7,
		TopP:             1,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
		N:                1,
	}
}

// returns the system instruction for UI generation
func SystemPrompt() string {
	return uiSystemPrompt
}

// builds the completion request for a UI description, passed through unchanged
func NewUIRequest(prompt string) CompletionRequest {
	return CompletionRequest{
		SystemPrompt: uiSystemPrompt,
		Prompt:       prompt,
		Params:       DefaultParams(),
	}
}
