package invoice

// ValidateTransition checks an invoice status change. Archiving is allowed
// from any state other than Archived itself.
func ValidateTransition(from, to Status) error {
	if from == to {
		return ErrInvalidTransition
	}
	switch to {
	case StatusArchived:
		return nil
	case StatusSent:
		if from == StatusDraft {
			return nil
		}
	case StatusOverdue:
		if from == StatusSent {
			return nil
		}
	case StatusPaid:
		if from == StatusDraft || from == StatusSent || from == StatusOverdue {
			return nil
		}
	}
	return ErrInvalidTransition
}
