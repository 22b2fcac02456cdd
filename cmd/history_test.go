package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestFilterSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		disabled []string
		wantErr  bool
	}{
		{name: "defaults", args: nil},
		{name: "one step", args: []string{"--disable-filter", "skill"}, disabled: []string{"skill"}},
		{name: "comma separated", args: []string{"--disable-filter", "expertise, min_experience"}, disabled: []string{"expertise", "min_experience"}},
		{name: "unknown step", args: []string{"--disable-filter", "salary"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{Use: "list"}
			addFilterFlags(cmd)
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			steps, err := filterSteps(cmd)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			disabled := map[string]bool{}
			for _, name := range tt.disabled {
				disabled[name] = true
			}
			for _, step := range steps {
				if step.IsEnabled() == disabled[step.Name()] {
					t.Fatalf("step %s: enabled=%v, expected disabled=%v", step.Name(), step.IsEnabled(), disabled[step.Name()])
				}
			}
		})
	}
}
