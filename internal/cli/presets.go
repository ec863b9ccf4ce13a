package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/prompt"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Example: `  # All presets
  presetctl list

  # Presets tagged "advent", as YAML
  presetctl list --category advent -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			list := presets.Filter(catalog.List(), category)

			if done, err := opts.write(cmd.OutOrStdout(), list); done {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORIES")
			for _, p := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Title, strings.Join(p.Categories, ", "))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only presets with this category tag")

	return cmd
}

func newGroupsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List presets grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			groups := presets.GroupByCategory(catalog.List())

			if done, err := opts.write(cmd.OutOrStdout(), groups); done {
				return err
			}

			out := cmd.OutOrStdout()
			for _, g := range groups {
				fmt.Fprintf(out, "%s\n", g.Name)
				for _, p := range g.Presets {
					fmt.Fprintf(out, "  %s\t%s\n", p.ID, p.Title)
				}
			}
			return nil
		},
	}
}

func newMaterializeCmd(opts *rootOptions) *cobra.Command {
	var sermon prompt.Sermon

	cmd := &cobra.Command{
		Use:   "materialize <preset-id>",
		Short: "Expand a preset's prompt template for a sermon",
		Example: `  presetctl materialize scripture-typographic --title "Walking in Faith" --topic trust --reference "Hebrews 11:1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			p, err := catalog.Get(args[0])
			if err != nil {
				return err
			}

			out, err := prompt.MaterializePreset(p, sermon)
			if err != nil {
				return err
			}

			if opts.output == "table" || opts.output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			tree, err := prompt.Parse([]byte(out))
			if err != nil {
				return err
			}
			if opts.output == "yaml" {
				_, err = opts.write(cmd.OutOrStdout(), templateNode(tree))
				return err
			}
			_, err = opts.write(cmd.OutOrStdout(), tree)
			return err
		},
	}

	cmd.Flags().StringVar(&sermon.Title, "title", "", "Sermon title (required)")
	cmd.Flags().StringVar(&sermon.Topic, "topic", "", "Sermon topic")
	cmd.Flags().StringVar(&sermon.Reference, "reference", "", "Scripture reference")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every preset template is well-formed JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			var errs []error
			list := catalog.List()
			for _, p := range list {
				if _, err := prompt.MaterializePreset(p, prompt.Sermon{Title: "Title"}); err != nil {
					errs = append(errs, err)
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %s: %v\n", p.ID, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok    %s\n", p.ID)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d presets are invalid: %w", len(errs), len(list), errors.Join(errs...))
			}
			return nil
		},
	}
}
