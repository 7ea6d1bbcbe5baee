package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bar-website/services"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load menu items from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			forms, err := services.ReadMenuSeed(f)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.admin.SeedMenu(ctx, forms)
			opts.log.Info("menu seeded", zap.Int("created", n), zap.String("file", file))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d menu items created\n", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "menu.yaml", "seed file")
	return cmd
}
