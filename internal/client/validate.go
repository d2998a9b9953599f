package client

import "unicode/utf8"

const MinPromptLength = 10

// rejects descriptions shorter than MinPromptLength characters.
// the raw text is counted, surrounding whitespace included
func ValidatePrompt(prompt string) error {
	if utf8.RuneCountInString(prompt) < MinPromptLength {
		return ErrPromptTooShort
	}

	return nil
}
