package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pgschema/pgddl/internal/version"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs([]string{"version"})
	defer RootCmd.SetArgs(nil)

	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	output := buf.String()
	if !strings.HasPrefix(output, "pgddl v"+version.App()+"@") {
		t.Errorf("expected version banner, got: %s", output)
	}
	if !strings.Contains(output, version.Platform()) {
		t.Errorf("expected platform %s in output, got: %s", version.Platform(), output)
	}
}
