package mcpserver

import (
	"errors"
	"testing"
)

func TestSanitizeError_StripsAbsolutePaths(t *testing.T) {
	err := errors.New("open /home/dev/project/Button.tsx: no such file or directory")
	got := sanitizeError(err)
	if got != "open <path>: no such file or directory" {
		t.Errorf("sanitizeError() = %q", got)
	}
}

func TestSanitizeError_Nil(t *testing.T) {
	if got := sanitizeError(nil); got != "" {
		t.Errorf("sanitizeError(nil) = %q, want empty", got)
	}
}

func TestErrResult_IsError(t *testing.T) {
	res := errResult(errors.New("boom"))
	if !res.IsError {
		t.Error("errResult().IsError = false, want true")
	}
	if len(res.Content) != 1 {
		t.Fatalf("len(Content) = %d, want 1", len(res.Content))
	}
}
