package engine

import "errors"

// The set of errors SubmitProof can return. All are recoverable and
// surfaced to the caller; none are fatal to the process.
var (
	// ErrBlockWindowClosed is returned when the proof arrives after the
	// block window has expired.
	ErrBlockWindowClosed = errors.New("block window has closed")

	// ErrDuplicateSubmission is returned when the wallet already submitted
	// a proof for the current block.
	ErrDuplicateSubmission = errors.New("already submitted proof for this block")

	// ErrBlockFull is returned when the block has reached its maximum
	// number of miners.
	ErrBlockFull = errors.New("block has reached maximum miners")

	// ErrInvalidMultiplier is returned when the multiplier is out of bounds
	// or doesn't agree with the declared tier.
	ErrInvalidMultiplier = errors.New("invalid multiplier value")

	// ErrTierMismatch is returned when the declared tier doesn't match the
	// canonical mapping for the declared age.
	ErrTierMismatch = errors.New("tier does not match hardware age")

	// ErrSuspiciousAge is returned when the declared hardware age is not
	// plausible.
	ErrSuspiciousAge = errors.New("hardware age is suspicious")

	// ErrHardwareAlreadyRegistered is returned when the hardware fingerprint
	// is already bound to a different wallet.
	ErrHardwareAlreadyRegistered = errors.New("hardware already registered")

	// ErrInvalidSignature is a pass-through error kind for proofs whose
	// signature failed authentication upstream.
	ErrInvalidSignature = errors.New("invalid signature")
)
