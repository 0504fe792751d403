package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/questgen/internal/config"
)

// render writes v in the configured structured format, or calls text for
// the terminal format.
func render(w io.Writer, format string, v any, text func() string) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputText, "":
		_, err := io.WriteString(w, text())
		return err
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// queryArg joins positional words into one quest description.
func queryArg(args []string) (string, error) {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		return "", fmt.Errorf("describe the task, e.g. questgen rank \"소파에 쌓인 빨래\"")
	}
	return q, nil
}
