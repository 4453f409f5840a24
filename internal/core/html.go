package core

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

type ShellPage struct {
	Title           string
	BackgroundColor string
	BodyHTML        string
	Virtual         any
	ScriptSrc       string
	CSSHref         string
}

// RenderHTMLShell wraps server-rendered markup in a page. The virtual tree is
// embedded as JSON so a client script can take over the screen.
func RenderHTMLShell(page ShellPage) (string, error) {
	title := page.Title
	if title == "" {
		title = "Screen"
	}

	virtualJSON, err := json.Marshal(page.Virtual)
	if err != nil {
		return "", fmt.Errorf("failed to encode virtual tree: %w", err)
	}
	escapedVirtual := strings.ReplaceAll(string(virtualJSON), "</", "<\\/")

	head := `<meta charset="UTF-8" /><meta name="viewport" content="width=device-width, initial-scale=1.0" />`
	head += fmt.Sprintf("<title>%s</title>", html.EscapeString(title))
	if page.CSSHref != "" {
		head += fmt.Sprintf(`<link rel="stylesheet" href="%s" />`, html.EscapeString(page.CSSHref))
	}

	bodyStyle := ""
	if page.BackgroundColor != "" {
		bodyStyle = fmt.Sprintf(` style="background-color:%s"`, html.EscapeString(page.BackgroundColor))
	}

	script := ""
	if page.ScriptSrc != "" {
		script = fmt.Sprintf(`    <script src="%s" type="module" defer></script>`+"\n", html.EscapeString(page.ScriptSrc))
	}

	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    %s
  </head>
  <body%s>
    <div id="app">%s</div>
    <script id="__SDUI_VDOM__" type="application/json">%s</script>
%s  </body>
</html>
`, head, bodyStyle, page.BodyHTML, escapedVirtual, script), nil
}
