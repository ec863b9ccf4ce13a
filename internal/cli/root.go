package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/prompt"
)

type rootOptions struct {
	catalogFile string
	output      string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "presetctl",
		Short: "Inspect and materialize sermon art style presets",
		Long: `presetctl works with the style preset catalog used by the sermon art backend.

It lists presets and their category groups, expands a preset's prompt template
for a sermon, and checks a catalog file before it is shipped.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.catalogFile, "file", "f", "", "Catalog file (.json, .yaml or .yml); defaults to the built-in catalog")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, json or yaml")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newGroupsCmd(opts))
	cmd.AddCommand(newMaterializeCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))

	return cmd
}

func (o *rootOptions) catalog() (*presets.Catalog, error) {
	if o.catalogFile == "" {
		return presets.Default(), nil
	}
	return LoadCatalog(o.catalogFile)
}

// LoadCatalog reads a preset list from a JSON or YAML file.
func LoadCatalog(path string) (*presets.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var list []presets.StylePreset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		err = json.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}
	return presets.NewCatalog(list)
}

// write renders v as json or yaml. It returns false for the table format so
// the caller can print its own layout.
func (o *rootOptions) write(w io.Writer, v any) (bool, error) {
	switch o.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	case "table", "":
		return false, nil
	}
	return true, fmt.Errorf("unknown output format %q", o.output)
}

// templateNode converts a parsed template into a YAML node so mappings keep
// the template's member order.
func templateNode(v any) *yaml.Node {
	switch t := v.(type) {
	case *prompt.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range t.Members {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				templateNode(m.Value))
		}
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			n.Content = append(n.Content, templateNode(item))
		}
		return n
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}
	case json.Number:
		tag := "!!int"
		if _, err := t.Int64(); err != nil {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
