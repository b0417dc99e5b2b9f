package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/agenda"
)

func (a *App) proCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pro",
		Short: "Manage professionals",
	}

	cmd.AddCommand(a.proAddCmd())
	cmd.AddCommand(a.proListCmd())
	cmd.AddCommand(a.proUseCmd())
	return cmd
}

func (a *App) proAddCmd() *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Register a professional",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			p, err := agenda.NewProfessional(args[0])
			if err != nil {
				return err
			}
			if err := a.repo.CreateProfessional(cmd.Context(), p); err != nil {
				return fmt.Errorf("creating professional: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created professional %s (%s)\n", p.Name, p.ID)
			if use {
				return a.useProfessional(cmd, p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&use, "use", false, "Make this the active professional")
	return cmd
}

func (a *App) proListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List professionals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			pros, err := a.repo.ListProfessionals(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing professionals: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(pros) == 0 {
				fmt.Fprintln(out, "No professionals yet. Add one with 'agenda pro add NAME'.")
				return nil
			}

			active := a.config.ProfessionalID()
			for _, p := range pros {
				marker := " "
				if p.ID == active {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s  %s\n", marker, p.ID, p.Name)
			}
			return nil
		},
	}
}

func (a *App) proUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [id]",
		Short: "Set the active professional in the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := agenda.ParseProfessionalID(args[0])
			if err != nil {
				return err
			}
			p, err := a.repo.GetProfessional(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.useProfessional(cmd, p)
		},
	}
}

func (a *App) useProfessional(cmd *cobra.Command, p *agenda.Professional) error {
	a.config.Professional.ID = p.ID.String()
	if err := a.config.SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Active professional: %s\n", p.Name)
	return nil
}
