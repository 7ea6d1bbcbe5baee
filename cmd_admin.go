package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bar-website/services"
)

func newAdminCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard accounts",
	}
	var email, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin or reset its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer a.close()

			generated := password == ""
			if generated {
				if password, err = services.GenerateAdminPassword(); err != nil {
					return fmt.Errorf("generate password: %w", err)
				}
			}
			if err := a.auth.CreateAdmin(ctx, email, password); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "admin %s saved\n", email)
			if generated {
				fmt.Fprintf(out, "password: %s\n", password)
			}
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "admin e-mail address")
	create.Flags().StringVar(&password, "password", "", "password (generated when empty)")
	_ = create.MarkFlagRequired("email")
	cmd.AddCommand(create)
	return cmd
}
