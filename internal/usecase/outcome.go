package usecase

// Reason names why a mutation was rejected. Rejections are not errors: the
// original front end expects precondition failures to leave state untouched
// and the request to succeed, so the engine reports them as data.
type Reason string

const (
	ReasonTeamNotFound      Reason = "teamNotFound"
	ReasonChallengeNotFound Reason = "challengeNotFound"
	ReasonPlayerNotFound    Reason = "playerNotFound"
	ReasonChallengeDisabled Reason = "challengeDisabled"
	ReasonExclusiveConflict Reason = "exclusiveAlreadyWon"
	ReasonNonPositiveAmount Reason = "nonPositiveAmount"
	ReasonSelfSwap          Reason = "selfSwap"
)

// Outcome tells the caller whether a mutation was applied. Reason is empty
// when Applied is true.
type Outcome struct {
	Applied bool
	Reason  Reason
}

func applied() Outcome {
	return Outcome{Applied: true}
}

func rejected(reason Reason) Outcome {
	return Outcome{Reason: reason}
}
