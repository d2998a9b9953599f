package preview

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// user-generated-content policy that keeps Tailwind classes and ARIA markup
func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()

		p.AllowAttrs("class").Globally()
		p.AllowAttrs("role").Matching(regexp.MustCompile(`^[a-z]+( [a-z]+)*$`)).Globally()
		p.AllowAttrs("aria-label", "aria-labelledby", "aria-describedby", "aria-hidden",
			"aria-expanded", "aria-controls", "aria-current", "aria-live", "aria-haspopup",
			"aria-pressed", "aria-selected", "aria-required", "aria-invalid", "aria-disabled").Globally()
		p.AllowAttrs("type", "placeholder", "name", "value", "for", "disabled", "checked", "required").Globally()
		p.AllowElements("form", "input", "button", "label", "select", "option", "textarea",
			"nav", "header", "footer", "main", "section", "article", "aside", "figure", "figcaption")
		p.AllowImages()

		policy = p
	})

	return policy
}

// strips scripts, event handlers and javascript: URLs from model-generated markup
func Sanitize(html string) string {
	return sanitizer().Sanitize(html)
}
