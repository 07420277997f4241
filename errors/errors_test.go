package errors_test

import (
	"testing"

	ipcerr "github.com/sabouaram/linxipc/errors"
)

func TestNewAndIs(t *testing.T) {
	err := ipcerr.New(ipcerr.CodeTransportSetup, "bind %s: %s", ":0", "address in use")

	if !ipcerr.Is(err, ipcerr.CodeTransportSetup) {
		t.Fatalf("Is() = false, want true for matching code")
	}
	if ipcerr.Is(err, ipcerr.CodeInvalidConfig) {
		t.Fatalf("Is() = true, want false for mismatched code")
	}

	want := "transport setup failure: bind :0: address in use"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsNil(t *testing.T) {
	if ipcerr.Is(nil, ipcerr.CodeSystem) {
		t.Error("Is(nil, ...) = true, want false")
	}
}
