package client

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedUI(t *testing.T) {
	ui, err := ParseGeneratedUI(`{"html":"<div>Hi</div>","react":"export default function Hi() { return <div>Hi</div> }"}`)
	require.NoError(t, err)
	assert.Equal(t, "<div>Hi</div>", ui.HTML)
	assert.Contains(t, ui.React, "export default function Hi()")
}

func TestParseGeneratedUI_Tolerates(t *testing.T) {
	inputs := []string{
		"  \n{\"html\":\"<p>x</p>\",\"react\":\"\"}\n",
		"```json\n{\"html\":\"<p>x</p>\",\"react\":\"\"}\n```",
		"```\n{\"html\":\"<p>x</p>\"}\n```\n",
	}

	for _, in := range inputs {
		ui, err := ParseGeneratedUI(in)
		require.NoError(t, err, in)
		assert.Equal(t, "<p>x</p>", ui.HTML)
	}
}

func TestParseGeneratedUI_Failures(t *testing.T) {
	inputs := []string{
		"Sure! Here is your navbar:",
		`{"html":"<div>`,
		`{"title":"nothing useful"}`,
		`{"html":42}`,
		`["html","react"]`,
		"",
	}

	for _, in := range inputs {
		_, err := ParseGeneratedUI(in)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, in)
		assert.Equal(t, in, parseErr.Raw)
	}

	_, err := ParseGeneratedUI(`{"title":"nothing useful"}`)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestConsumer_ChunksArriveInOrder(t *testing.T) {
	body := `{"html":"<div>Hi</div>","react":""}`
	var chunks []string

	ui, err := NewConsumer().Consume(iotest.OneByteReader(strings.NewReader(body)), func(s string) {
		chunks = append(chunks, s)
	})
	require.NoError(t, err)

	assert.Equal(t, "<div>Hi</div>", ui.HTML)
	assert.Equal(t, body, strings.Join(chunks, ""))
	assert.Len(t, chunks, len(body))
}

func TestConsumer_HoldsSplitRunes(t *testing.T) {
	body := `{"html":"<p>héllo ✓</p>","react":""}`
	var chunks []string

	ui, err := NewConsumer().Consume(iotest.OneByteReader(strings.NewReader(body)), func(s string) {
		chunks = append(chunks, s)
	})
	require.NoError(t, err)

	assert.Equal(t, "<p>héllo ✓</p>", ui.HTML)
	for _, chunk := range chunks {
		assert.NotContains(t, chunk, "�")
	}
	assert.Contains(t, chunks, "é")
	assert.Contains(t, chunks, "✓")
}

func TestConsumer_ReadErrorIsStreamError(t *testing.T) {
	broken := io.MultiReader(strings.NewReader(`{"html":"<di`), iotest.ErrReader(errors.New("unexpected EOF")))

	_, err := NewConsumer().Consume(broken, nil)

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
	assert.Equal(t, `{"html":"<di`, streamErr.Partial)
}

func TestCompleteRunes(t *testing.T) {
	check := []byte("✓") // 3 bytes

	assert.Equal(t, 0, completeRunes(check[:1]))
	assert.Equal(t, 0, completeRunes(check[:2]))
	assert.Equal(t, 3, completeRunes(check))
	assert.Equal(t, 2, completeRunes(append([]byte("ab"), check[:2]...)))
	assert.Equal(t, 0, completeRunes(nil))
}

func TestValidatePrompt(t *testing.T) {
	assert.ErrorIs(t, ValidatePrompt("short"), ErrPromptTooShort)
	assert.ErrorIs(t, ValidatePrompt("123456789"), ErrPromptTooShort)
	assert.NoError(t, ValidatePrompt("1234567890"))
	assert.NoError(t, ValidatePrompt("   navbar    "), "surrounding whitespace counts toward the minimum")
	assert.NoError(t, ValidatePrompt("a responsive navbar"))
	assert.NoError(t, ValidatePrompt("日本語のナビゲーションバー"))
	assert.Equal(t, "Description must be at least 10 characters.", ErrPromptTooShort.Error())
}

func TestRandomSuggestion(t *testing.T) {
	assert.Contains(t, Suggestions, RandomSuggestion())
}
