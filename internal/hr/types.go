// Package hr defines the business entities managed by the remote API and the
// flows (sign-in, sign-up, attendance) that sit beside plain CRUD. The client
// only ever holds transient, non-authoritative copies of these records.
package hr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record status values as the remote API reports them.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"

	ProjectPlanned    = "Planned"
	ProjectInProgress = "In Progress"
	ProjectOnHold     = "On Hold"
	ProjectCompleted  = "Completed"

	AttendancePresent = "Present"
	AttendanceRemote  = "Remote"
	AttendanceOnLeave = "On Leave"
)

type Employee struct {
	ID            string `json:"id"`
	EmployeeCode  string `json:"employee_code"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	DateOfJoining string `json:"date_of_joining,omitempty"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	Status        string `json:"status"`
}

func (e Employee) RecordID() string { return e.ID }

type Customer struct {
	ID           string `json:"id"`
	CustomerCode string `json:"customer_code"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	Status       string `json:"status,omitempty"`
}

func (c Customer) RecordID() string { return c.ID }

type Vendor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Status  string `json:"status,omitempty"`
}

func (v Vendor) RecordID() string { return v.ID }

type Project struct {
	ID          string `json:"id"`
	ProjectCode string `json:"project_code"`
	ProjectName string `json:"project_name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Status      string `json:"status"`
}

func (p Project) RecordID() string { return p.ID }

type Invoice struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	VendorID    string `json:"vendor_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (i Invoice) RecordID() string { return i.ID }

type Timesheet struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	ProjectID       string `json:"project_id"`
	Date            string `json:"date"`
	HoursWorked     Hours  `json:"hours_worked"`
	TaskDescription string `json:"task_description"`
}

func (t Timesheet) RecordID() string { return t.ID }

// Hours is a worked-hours count. The web client submits it as a JSON number
// while other writers send strings, so both shapes decode; it always
// marshals back as a number.
type Hours float64

func (h *Hours) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*h = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*h = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("hours_worked: %w", err)
		}
		*h = Hours(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*h = Hours(v)
	return nil
}

type Attendance struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	AttendanceDate string `json:"attendance_date"`
	InTime         string `json:"in_time,omitempty"`
	OutTime        string `json:"out_time,omitempty"`
	Status         string `json:"status"`
}

func (a Attendance) RecordID() string { return a.ID }
