package posts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/JaimeStill/scribe/workflow"
)

// Preview renders a finished post as publish-preview HTML. The post is
// assembled into markdown (title, hook, body, call to action, hashtag
// line) and converted with goldmark.
func Preview(post workflow.Post) (string, error) {
	var md strings.Builder

	fmt.Fprintf(&md, "# %s\n\n", post.Title)
	fmt.Fprintf(&md, "**%s**\n\n", post.Hook)
	md.WriteString(post.Content)
	md.WriteString("\n\n")
	fmt.Fprintf(&md, "*%s*\n\n", post.CallToAction)

	if len(post.Hashtags) > 0 {
		md.WriteString(strings.Join(post.Hashtags, " "))
		md.WriteString("\n")
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &html); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}

	return html.String(), nil
}
