package constants

// Activity submission lifecycle. pending → approved is the only transition;
// there is no rejected state (rejection = leave pending or delete by admin).
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
)
