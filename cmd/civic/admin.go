package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jyambere.org/internal/roles"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Department and staff management (super-admin)",
	}
	cmd.AddCommand(newAdminSeedCmd(), newAdminAddDepartmentCmd(), newAdminAddStaffCmd(), newAdminListCmd())
	return cmd
}

func requireSuperAdmin(cmd *cobra.Command, a *app) error {
	_, snap, err := requireSession(cmd.Context(), a)
	if err != nil {
		return err
	}
	if snap.Role != roles.RoleSuperAdmin {
		return fmt.Errorf("requires the super admin account")
	}
	return nil
}

func newAdminSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default departments if none exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.registry.EnsureDefaultDepartments(cmd.Context()); err != nil {
				return err
			}
			list, err := a.registry.Departments(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("departments: %d\n", len(list))
			return nil
		},
	}
}

func newAdminAddDepartmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-department <name>",
		Short: "Register a new department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := requireSuperAdmin(cmd, a); err != nil {
				return err
			}
			dep, err := a.registry.AddDepartment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("added department %s (id=%s)\n", dep.Name, dep.ID)
			return nil
		},
	}
}

func newAdminAddStaffCmd() *cobra.Command {
	var name, email, password, department string
	cmd := &cobra.Command{
		Use:   "add-staff",
		Short: "Create a staff account bound to a department",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := requireSuperAdmin(cmd, a); err != nil {
				return err
			}
			acct, rec, err := a.registry.AddStaff(cmd.Context(), name, email, password, department)
			if err != nil {
				return err
			}
			cmd.Printf("staff %s <%s> id=%s department=%s\n", acct.Name, acct.Email, rec.ID, rec.Department)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "staff member's display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&department, "department", "", "department name")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("department")
	return cmd
}

func newAdminListCmd() *cobra.Command {
	var staff bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print departments, or staff with --staff",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if staff {
				list, err := a.registry.Staff(cmd.Context())
				if err != nil {
					return err
				}
				for _, s := range list {
					cmd.Printf("%s  %-20s %-28s %s\n", s.ID, s.Name, s.Email, s.Department)
				}
				return nil
			}
			list, err := a.registry.Departments(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range list {
				cmd.Printf("%s  %s\n", d.ID, d.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&staff, "staff", false, "list staff instead of departments")
	return cmd
}
