package Models

import (
	"testing"
	"time"
)

func TestAppointmentCanTransition(t *testing.T) {
	t.Run("PendingMayMoveToAnyTerminalStatus", func(t *testing.T) {
		for _, target := range []string{AppointmentConfirmed, AppointmentRejected, AppointmentCancelled} {
			a := Appointment{Status: AppointmentPending}
			if !a.CanTransition(target) {
				t.Errorf("expected Pending -> %s to be allowed", target)
			}
		}
	})

	t.Run("TerminalStatusesNeverTransition", func(t *testing.T) {
		for _, status := range []string{AppointmentConfirmed, AppointmentRejected, AppointmentCancelled} {
			a := Appointment{Status: status}
			for _, target := range []string{AppointmentConfirmed, AppointmentRejected, AppointmentCancelled, AppointmentPending} {
				if a.CanTransition(target) {
					t.Errorf("expected %s -> %s to be rejected", status, target)
				}
			}
		}
	})

	t.Run("UnknownTargetRejected", func(t *testing.T) {
		a := Appointment{Status: AppointmentPending}
		if a.CanTransition("Done") {
			t.Error("expected unknown target to be rejected")
		}
	})
}

func TestVideoCallCanTransition(t *testing.T) {
	call := VideoCall{Status: CallPending}
	if !call.CanTransition(CallApproved) || !call.CanTransition(CallRejected) {
		t.Error("expected pending call to allow approval and rejection")
	}

	approved := VideoCall{Status: CallApproved}
	if approved.CanTransition(CallRejected) {
		t.Error("expected approved call to reject further transitions")
	}
}

func TestVideoCallIsParty(t *testing.T) {
	call := VideoCall{UserID: 7, DoctorID: 3}

	cases := []struct {
		actor Actor
		want  bool
	}{
		{Actor{Role: RoleUser, ID: 7}, true},
		{Actor{Role: RoleDoctor, ID: 3}, true},
		{Actor{Role: RoleUser, ID: 3}, false},
		{Actor{Role: RoleDoctor, ID: 7}, false},
		{Actor{Role: RoleAdmin, ID: 7}, false},
	}
	for _, tc := range cases {
		if got := call.IsParty(tc.actor); got != tc.want {
			t.Errorf("IsParty(%s) = %v, want %v", tc.actor, got, tc.want)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	parsed, err := ParseDateTime("2026-09-10", "14:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 9, 10, 14, 30, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("got %v, want %v", parsed, want)
	}

	if _, err := ParseDateTime("10-09-2026", "14:30"); err == nil {
		t.Error("expected error for wrong date layout")
	}
	if _, err := ParseDateTime("2026-09-10", "2:30 PM"); err == nil {
		t.Error("expected error for wrong time layout")
	}
}
