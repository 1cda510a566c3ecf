package domain

// CandidateKind tags the outcome of one settlement attempt against a bid.
type CandidateKind int

const (
	CandidateSuccess CandidateKind = iota
	CandidateInsufficientBalance
	CandidateInstrumentFailure
	CandidateTransferFailure
	// CandidateIndeterminate means the ledger outcome could not be
	// reconciled; the pass must stop without committing anything.
	CandidateIndeterminate
	// CandidateCustodyLost means the claim is held by neither the auction's
	// custodian nor the bidder. No bid is at fault; the pass stops with an
	// error and leaves every bid untouched.
	CandidateCustodyLost
)

func (k CandidateKind) String() string {
	switch k {
	case CandidateSuccess:
		return "success"
	case CandidateInsufficientBalance:
		return ReasonInsufficientBalance
	case CandidateInstrumentFailure:
		return ReasonInstrumentFailure
	case CandidateTransferFailure:
		return ReasonTransferFailure
	case CandidateIndeterminate:
		return "indeterminate"
	case CandidateCustodyLost:
		return "custody_lost"
	default:
		return "unknown"
	}
}

type CandidateResult struct {
	Kind   CandidateKind
	Reason string
}

// RejectReason is the reason stored on a bid that lost its settlement attempt.
func (r CandidateResult) RejectReason() string {
	if r.Reason == "" {
		return r.Kind.String()
	}
	return r.Kind.String() + ": " + r.Reason
}
