package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/sgrep/config"
	"github.com/oxhq/sgrep/plan"
	"github.com/oxhq/sgrep/stage"
	"github.com/oxhq/sgrep/write"
)

// newApplyStagedCmd is SPEC_FULL.md §9.2's second half of the staged-
// apply workflow: `sgrep --apply --stage` records edits without
// touching disk; `sgrep apply <stage-id>` reads a previously recorded
// stage back and commits it.
func newApplyStagedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <stage-id>",
		Short: "commit a previously staged edit set to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commitStage(args[0])
		},
	}
}

func commitStage(stageID string) error {
	cfg := config.Load()
	db, err := stage.Connect(cfg.DefaultDB, cfg.LibSQLAuthToken, false)
	if err != nil {
		return &exitError{exitInternal, fmt.Errorf("sgrep: connecting staging db: %w", err)}
	}

	store := stage.NewStore(db, 0)
	st, edits, err := store.Get(stageID)
	if err != nil {
		return &exitError{exitUserError, fmt.Errorf("sgrep: %w", err)}
	}
	if st.Status != "pending" {
		return &exitError{exitUserError, fmt.Errorf("sgrep: stage %s is already %s", stageID, st.Status)}
	}
	if len(edits) == 0 {
		return &exitError{exitUserError, fmt.Errorf("sgrep: stage %s has no recorded edits", stageID)}
	}
	file := edits[0].File

	source, err := os.ReadFile(file)
	if err != nil {
		return &exitError{exitInternal, fmt.Errorf("sgrep: reading %s: %w", file, err)}
	}

	modified := plan.Apply(string(source), edits)
	writer := write.New(write.DefaultConfig())
	if err := writer.WriteFile(file, modified); err != nil {
		return &exitError{exitInternal, fmt.Errorf("sgrep: writing %s: %w", file, err)}
	}

	if _, err := store.Commit(stageID, 1); err != nil {
		return &exitError{exitInternal, fmt.Errorf("sgrep: marking stage %s applied: %w", stageID, err)}
	}

	fmt.Printf("applied stage %s to %s\n", stageID, file)
	return nil
}
