package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"peopleops.org/internal/access"
	"peopleops.org/internal/api"
	"peopleops.org/internal/hr"
)

var (
	attEmployee string
	attDate     string
	attInTime   string
	attOutTime  string
	attStatus   string
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Mark and review attendance",
}

var attendanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show attendance history, optionally for one employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if !access.CanView(access.RouteAttendance, rt.session()) {
			return fmt.Errorf("your role may not view attendance")
		}
		records, err := hr.AttendanceFor(cmd.Context(), rt.client, attEmployee)
		if err != nil {
			return fmt.Errorf("%s", api.Message(err))
		}
		printRecords(records, []string{"id", "employee_id", "attendance_date", "in_time", "out_time", "status"})
		return nil
	},
}

var attendanceMarkCmd = &cobra.Command{
	Use:   "mark",
	Short: "Mark attendance for an employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if !access.CanAuthor(access.ActionMarkAttendance, rt.session()) {
			return fmt.Errorf("sign in to mark attendance")
		}
		if attEmployee == "" {
			return fmt.Errorf("--employee is required")
		}
		list := hr.AttendanceList(rt.client)
		form := hr.AttendanceForm(rt.client, list)
		form.BeginCreate()
		form.SetField("employee_id", attEmployee)
		form.SetField("attendance_date", attDate)
		form.SetField("in_time", attInTime)
		form.SetField("out_time", attOutTime)
		form.SetField("status", attStatus)
		if err := form.Submit(cmd.Context()); err != nil {
			return fmt.Errorf("%s", form.Message())
		}
		fmt.Printf("attendance marked for %s (%s)\n", attEmployee, attStatus)
		return nil
	},
}

var attendanceLeaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Mark a leave day for an employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if !access.CanAuthor(access.ActionMarkAttendance, rt.session()) {
			return fmt.Errorf("sign in to mark leave")
		}
		if attEmployee == "" {
			return fmt.Errorf("--employee is required")
		}
		if err := hr.MarkLeave(cmd.Context(), rt.client, attEmployee, attDate); err != nil {
			return fmt.Errorf("%s", api.Message(err))
		}
		fmt.Printf("leave marked for %s on %s\n", attEmployee, attDate)
		return nil
	},
}

func init() {
	today := time.Now().Format("2006-01-02")

	attendanceCmd.PersistentFlags().StringVar(&attEmployee, "employee", "", "employee id")
	attendanceCmd.PersistentFlags().StringVar(&attDate, "date", today, "attendance date (YYYY-MM-DD)")

	attendanceMarkCmd.Flags().StringVar(&attInTime, "in", "", "in time (HH:MM)")
	attendanceMarkCmd.Flags().StringVar(&attOutTime, "out", "", "out time (HH:MM)")
	attendanceMarkCmd.Flags().StringVar(&attStatus, "status", hr.AttendancePresent, "Present, Remote, or On Leave")

	attendanceCmd.AddCommand(attendanceListCmd)
	attendanceCmd.AddCommand(attendanceMarkCmd)
	attendanceCmd.AddCommand(attendanceLeaveCmd)
}
