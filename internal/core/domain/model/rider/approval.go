package rider

import (
	"fmt"

	"riderdispatch/internal/pkg/errs"
)

// Approval is the onboarding state of a rider.
type Approval int

const (
	ApprovalUnknown Approval = iota
	ApprovalPending
	ApprovalApproved
	ApprovalRejected
)

func getApprovalStrings() map[Approval]string {
	return map[Approval]string{
		ApprovalUnknown:  "unknown",
		ApprovalPending:  "pending",
		ApprovalApproved: "approved",
		ApprovalRejected: "rejected",
	}
}

func ParseApproval(s string) (Approval, error) {
	for a, str := range getApprovalStrings() {
		if str == s && a != ApprovalUnknown {
			return a, nil
		}
	}
	return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause("approval", fmt.Errorf("%q is not a valid approval", s))
}

func (a Approval) Validate() error {
	if a <= ApprovalUnknown || a > ApprovalRejected {
		return errs.NewValueIsInvalidErrorWithCause("approval", fmt.Errorf("%d is not a valid approval", a))
	}
	return nil
}

func (a Approval) String() string {
	if str, ok := getApprovalStrings()[a]; ok {
		return str
	}
	return "unknown"
}
