package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jyambere.org/internal/report"
	"jyambere.org/internal/roles"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Create and progress complaint reports",
	}
	cmd.AddCommand(
		newReportCreateCmd(),
		newReportStatusCmd(),
		newReportAssignCmd(),
		newReportListCmd(),
		newReportStatsCmd(),
	)
	return cmd
}

func newReportCreateCmd() *cobra.Command {
	var (
		category, priority, location, description string
		lat, lng                                  float64
		imageURI                                  string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new report as the logged-in citizen",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, snap, err := requireSession(cmd.Context(), a)
			if err != nil {
				return err
			}

			draft := report.Draft{
				Category:    report.Category(category),
				Priority:    report.Priority(priority),
				Location:    location,
				Description: description,
			}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				draft.Coordinates = &report.Coordinates{Latitude: lat, Longitude: lng}
			}
			if imageURI != "" {
				draft.Image = &report.Image{URI: imageURI, Type: "image", FileName: "report.jpg"}
			}

			rec, err := a.reports.Create(ctx, snap, draft)
			if err != nil {
				return err
			}
			cmd.Printf("created %s (%s/%s) status=%s\n", rec.ID, rec.Category, rec.Priority, rec.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "report category (Sanitation, Police, Electricity, Roads, Water, Other)")
	cmd.Flags().StringVar(&priority, "priority", "Medium", "priority (High, Medium, Low)")
	cmd.Flags().StringVar(&location, "location", "", "free-text address")
	cmd.Flags().StringVar(&description, "description", "", "what happened")
	cmd.Flags().Float64Var(&lat, "lat", 0, "GPS latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "GPS longitude")
	cmd.Flags().StringVar(&imageURI, "image", "", "photo reference URI")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newReportStatusCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "status <report-id>",
		Short: "Update a report's status in every collection that holds it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, snap, err := requireSession(cmd.Context(), a)
			if err != nil {
				return err
			}
			return a.reports.UpdateStatus(ctx, args[0], report.Status(status), &snap)
		},
	}
	cmd.Flags().StringVar(&status, "to", "", "new status (Assigned, In Progress, Resolved)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newReportAssignCmd() *cobra.Command {
	var staffID string
	cmd := &cobra.Command{
		Use:   "assign <report-id>",
		Short: "Assign a report to a staff member (super-admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, snap, err := requireSession(cmd.Context(), a)
			if err != nil {
				return err
			}
			if snap.Role != roles.RoleSuperAdmin {
				return fmt.Errorf("only the super admin can assign reports")
			}
			rec, err := a.reports.Assign(ctx, args[0], staffID)
			if err != nil {
				return err
			}
			cmd.Printf("assigned %s to %s at %s\n", rec.ID, rec.AssignedTo, rec.AssignedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
	cmd.Flags().StringVar(&staffID, "staff", "", "staff account id")
	_ = cmd.MarkFlagRequired("staff")
	return cmd
}

func newReportListCmd() *cobra.Command {
	var mine, assigned bool
	var department string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports from the view matching the flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, snap, err := requireSession(cmd.Context(), a)
			if err != nil {
				return err
			}

			var list []report.Report
			switch {
			case mine:
				list, err = a.reports.ByUser(ctx, snap.ID)
			case assigned:
				list, err = a.reports.AssignedTo(ctx, snap.ID)
			case department != "":
				list, err = a.reports.ByDepartment(ctx, department)
			default:
				list, err = a.reports.All(ctx)
			}
			if err != nil {
				return err
			}
			for _, rec := range list {
				extras := ""
				if rec.Image != nil {
					extras += " photo"
				}
				if rec.Coordinates != nil {
					extras += " gps"
				}
				cmd.Printf("%s  %-11s %-6s %-12s %s%s\n", rec.ID, rec.Category, rec.Priority, rec.Status, rec.Location, extras)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&mine, "mine", false, "own reports (citizen view)")
	cmd.Flags().BoolVar(&assigned, "assigned", false, "reports assigned to me (staff view)")
	cmd.Flags().StringVar(&department, "department", "", "reports in a department's category")
	return cmd
}

func newReportStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Aggregate counts over the global collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			list, err := a.reports.All(cmd.Context())
			if err != nil {
				return err
			}
			s := report.ComputeStats(list)
			cmd.Printf("total=%d pending=%d inProgress=%d resolved=%d withPhoto=%d withGPS=%d\n",
				s.Total, s.Pending, s.InProgress, s.Resolved, s.WithPhoto, s.WithGPS)
			return nil
		},
	}
}
