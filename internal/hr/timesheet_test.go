package hr

import (
	"context"
	"testing"

	"peopleops.org/internal/api"
)

func TestTimesheetDecodesNumericHours(t *testing.T) {
	raw := []byte(`{"timesheets":[{"_id":"t1","employee_id":"e1","project_id":"p1","date":"2026-08-31","hours_worked":8,"task_description":"rollout"}]}`)
	items, err := api.DecodeList[Timesheet](raw, Timesheets.EnvelopeKey)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(items) != 1 || items[0].HoursWorked != 8 {
		t.Fatalf("numeric hours lost: %+v", items)
	}

	raw = []byte(`{"timesheets":[{"_id":"t2","employee_id":"e1","hours_worked":"7.5"}]}`)
	items, err = api.DecodeList[Timesheet](raw, Timesheets.EnvelopeKey)
	if err != nil {
		t.Fatalf("DecodeList string hours: %v", err)
	}
	if items[0].HoursWorked != 7.5 {
		t.Fatalf("string hours lost: %+v", items)
	}

	raw = []byte(`{"timesheets":[{"_id":"t3","employee_id":"e1","hours_worked":""}]}`)
	items, err = api.DecodeList[Timesheet](raw, Timesheets.EnvelopeKey)
	if err != nil {
		t.Fatalf("DecodeList empty hours: %v", err)
	}
	if items[0].HoursWorked != 0 {
		t.Fatalf("empty hours should read zero: %+v", items)
	}

	raw = []byte(`{"timesheets":[{"_id":"t4","hours_worked":"eight"}]}`)
	if _, err := api.DecodeList[Timesheet](raw, Timesheets.EnvelopeKey); err == nil {
		t.Fatalf("non-numeric hours should fail decoding")
	}
}

func TestTimesheetCreateWithNumericHours(t *testing.T) {
	f := newFixture(t)
	if _, err := SignIn(context.Background(), f.client, f.store, Credentials{
		UsernameOrEmail: "bob",
		Password:        "hunter2",
	}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	list := TimesheetList(f.client)
	form := TimesheetForm(f.client, list)
	form.BeginCreate()
	form.SetField("employee_id", "e1")
	form.SetField("project_id", "p1")
	form.SetField("date", "2026-08-31")
	form.SetField("hours_worked", 8)
	form.SetField("task_description", "rollout prep")
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	items := list.Items()
	if len(items) != 1 || items[0].HoursWorked != 8 {
		t.Fatalf("unexpected timesheets: %+v", items)
	}
}
