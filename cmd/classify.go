package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/holdbot/internal/domain/catalog"
	"github.com/example/holdbot/internal/infrastructure/htmlpage"
)

func newClassifyCmd() *cobra.Command {
	var htmlPath string

	c := &cobra.Command{
		Use:   "classify --html FILE",
		Short: "Classify a saved catalog page without a browser",
		Long: `classify runs the availability rules against a saved catalog page and
prints the detected state and title. Use it to check the selectors after the
catalog front end changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if htmlPath == "" {
				return errors.New("--html is required")
			}
			doc, err := htmlpage.Open(htmlPath)
			if err != nil {
				return err
			}

			res := catalog.ClassifyPage(cmd.Context(), doc, catalog.TitleLocator, catalog.DefaultRules)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "title: %s\n", res.Title)
			fmt.Fprintf(out, "state: %s\n", res.State)
			if action, ok := res.State.Action(); ok {
				fmt.Fprintf(out, "action: %s\n", action)
			}
			if res.Err != nil {
				return res.Err
			}
			return nil
		},
	}
	c.Flags().StringVar(&htmlPath, "html", "", "path to a saved catalog page")
	return c
}
