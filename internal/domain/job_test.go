package domain

import "testing"

func TestNextStatusSuccess(t *testing.T) {
	got := NextStatus(Outcome{Success: true}, 1, 3)
	if got != JobStatusCompleted {
		t.Fatalf("NextStatus success = %q, want %q", got, JobStatusCompleted)
	}
}

func TestNextStatusRetryableWithAttemptsLeft(t *testing.T) {
	for _, kind := range []ErrorKind{ErrorKindTimeout, ErrorKindRateLimited, ErrorKindUnavailable, ErrorKindUnknown} {
		got := NextStatus(Outcome{Failure: kind}, 1, 3)
		if got != JobStatusPending {
			t.Fatalf("NextStatus(%s, attempts=1, max=3) = %q, want %q", kind, got, JobStatusPending)
		}
	}
}

func TestNextStatusRetryableExhausted(t *testing.T) {
	got := NextStatus(Outcome{Failure: ErrorKindTimeout}, 3, 3)
	if got != JobStatusFailed {
		t.Fatalf("NextStatus(timeout, attempts=3, max=3) = %q, want %q", got, JobStatusFailed)
	}
}

func TestNextStatusPermanentIgnoresRemainingAttempts(t *testing.T) {
	for _, kind := range []ErrorKind{ErrorKindValidation, ErrorKindInvalidInput, ErrorKindQuota} {
		got := NextStatus(Outcome{Failure: kind}, 1, 3)
		if got != JobStatusFailed {
			t.Fatalf("NextStatus(%s, attempts=1, max=3) = %q, want %q", kind, got, JobStatusFailed)
		}
	}
}

func TestRetryable(t *testing.T) {
	cases := map[ErrorKind]bool{
		ErrorKindTimeout:      true,
		ErrorKindRateLimited:  true,
		ErrorKindUnavailable:  true,
		ErrorKindUnknown:      true,
		ErrorKindQuota:        false,
		ErrorKindInvalidInput: false,
		ErrorKindValidation:   false,
	}
	for kind, want := range cases {
		if got := kind.Retryable(); got != want {
			t.Fatalf("%s.Retryable() = %v, want %v", kind, got, want)
		}
	}
}

func TestTerminal(t *testing.T) {
	if JobStatusPending.Terminal() || JobStatusProcessing.Terminal() {
		t.Fatal("PENDING/PROCESSING must not be terminal")
	}
	if !JobStatusCompleted.Terminal() || !JobStatusFailed.Terminal() {
		t.Fatal("COMPLETED/FAILED must be terminal")
	}
}
