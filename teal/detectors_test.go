package teal

import "testing"

func TestMissingFeeCheckDetector(t *testing.T) {
	// Signature-mode program (via "arg") that never inspects txn Fee.
	p := mustParse(t, "#pragma version 6\narg 0\npop\nint 1\nreturn\n")

	result := RunDetector("missing-fee-check", p)
	if !result.Success {
		t.Fatalf("detector failed: %s", result.Error)
	}
	if len(result.Result) != 1 {
		t.Fatalf("findings = %v, want exactly one", result.Result)
	}
}

func TestMissingFeeCheckDetectorClean(t *testing.T) {
	p := mustParse(t, "#pragma version 6\narg 0\npop\ntxn Fee\nint 1000\n<=\nreturn\n")

	result := RunDetector("missing-fee-check", p)
	if !result.Success {
		t.Fatalf("detector failed: %s", result.Error)
	}
	if len(result.Result) != 0 {
		t.Fatalf("findings = %v, want none: program checks txn Fee", result.Result)
	}
}

func TestRekeyToDetector(t *testing.T) {
	p := mustParse(t, "#pragma version 6\narg 0\npop\nint 1\nreturn\n")

	result := RunDetector("rekey-to", p)
	if !result.Success {
		t.Fatalf("detector failed: %s", result.Error)
	}
	if len(result.Result) != 1 {
		t.Fatalf("findings = %v, want exactly one", result.Result)
	}
}

func TestUnknownDetectorName(t *testing.T) {
	p := mustParse(t, "#pragma version 6\nint 1\nreturn\n")
	result := RunDetector("does-not-exist", p)
	if result.Success {
		t.Fatalf("expected failure for an unregistered detector name")
	}
}
