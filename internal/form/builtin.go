package form

import (
	"embed"
	"fmt"
	"strings"
)

// Form contexts rendered by the host.
const (
	ArticleContext    = "articles.article"
	TransitionContext = "workflow.transition"
)

//go:embed forms/*.xml
var builtinFS embed.FS

var builtinFiles = map[string]string{
	ArticleContext:    "forms/article.xml",
	TransitionContext: "forms/transition.xml",
}

// Builtin returns a fresh copy of the host's base form for context.
func Builtin(context string) (*Form, error) {
	path, ok := builtinFiles[strings.TrimSpace(context)]
	if !ok {
		return nil, fmt.Errorf("no builtin form for %q", context)
	}
	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read builtin form %s: %w", path, err)
	}
	return Parse(context, data)
}
