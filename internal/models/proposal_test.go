package models

import (
	"testing"
)

func TestProposalStatus(t *testing.T) {
	if StatusPending.IsTerminal() {
		t.Error("pending must not be terminal")
	}
	if !StatusAccepted.IsTerminal() || !StatusRejected.IsTerminal() {
		t.Error("accepted and rejected must be terminal")
	}

	for _, s := range []ProposalStatus{StatusPending, StatusAccepted, StatusRejected} {
		if !s.IsValid() {
			t.Errorf("status %q must be valid", s)
		}
	}
	for _, s := range []ProposalStatus{"", "canceled", "PENDING"} {
		if s.IsValid() {
			t.Errorf("status %q must be invalid", s)
		}
	}
}
