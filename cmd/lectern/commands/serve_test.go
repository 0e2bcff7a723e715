// ABOUTME: Tests for serve command structure
// ABOUTME: Verifies serve command flags and configuration

package commands

import (
	"testing"
)

func TestNewServeCmd(t *testing.T) {
	cmd := NewServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
}

func TestServeCmd_Flags(t *testing.T) {
	cmd := NewServeCmd()

	ingestFlag := cmd.Flags().Lookup("ingest")
	if ingestFlag == nil {
		t.Fatal("--ingest flag not found")
	}
	if ingestFlag.DefValue != "false" {
		t.Errorf("--ingest default = %q, want %q", ingestFlag.DefValue, "false")
	}

	addrFlag := cmd.Flags().Lookup("addr")
	if addrFlag == nil {
		t.Fatal("--addr flag not found")
	}
	if addrFlag.DefValue != "" {
		t.Errorf("--addr default = %q, want empty", addrFlag.DefValue)
	}
}
