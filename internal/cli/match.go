package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpswager/rpswager/internal/model"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchCommitCmd())
	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchShowCmd())
	cmd.AddCommand(newMatchJoinCmd())
	cmd.AddCommand(newMatchRevealCmd())
	cmd.AddCommand(newMatchRetryCmd())

	return cmd
}

func newMatchCommitCmd() *cobra.Command {
	var moveStr string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a salted commitment for a move locally",
		Long: `Generates a random salt and computes the commitment digest for the
given move entirely on this machine. Only the commitment is meant to be
sent to the server; the salt must stay secret until the reveal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			move, err := model.ParseMove(moveStr)
			if err != nil {
				return err
			}

			saltBytes := make([]byte, 16)
			if _, err := rand.Read(saltBytes); err != nil {
				return fmt.Errorf("failed to generate salt: %w", err)
			}
			salt := hex.EncodeToString(saltBytes)

			result := CommitResult{
				Move:       move.String(),
				Salt:       salt,
				Commitment: model.ComputeCommitment(move, salt).String(),
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&moveStr, "move", "", "Move: rock, paper, or scissors (required)")
	_ = cmd.MarkFlagRequired("move")

	return cmd
}

func newMatchCreateCmd() *cobra.Command {
	var commitment string
	var wager uint64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new match",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"commitment": commitment,
				"wager":      wager,
			}
			var result MatchState

			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&commitment, "commitment", "", "Hex commitment digest (required, see 'match commit')")
	cmd.Flags().Uint64Var(&wager, "wager", 0, "Wager amount in ledger units")
	_ = cmd.MarkFlagRequired("commitment")

	return cmd
}

func newMatchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchList

			if err := client.Get("/api/v1/matches", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <match-id>",
		Short: "Show a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchState

			if err := client.Get("/api/v1/matches/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchJoinCmd() *cobra.Command {
	var commitment string

	cmd := &cobra.Command{
		Use:   "join <match-id>",
		Short: "Join an open match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"commitment": commitment}
			var result MatchState

			if err := client.Post("/api/v1/matches/"+args[0]+"/join", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&commitment, "commitment", "", "Hex commitment digest (required, see 'match commit')")
	_ = cmd.MarkFlagRequired("commitment")

	return cmd
}

func newMatchRevealCmd() *cobra.Command {
	var moveStr, salt string

	cmd := &cobra.Command{
		Use:   "reveal <match-id>",
		Short: "Reveal your committed move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"move": moveStr,
				"salt": salt,
			}
			var result MatchState

			if err := client.Post("/api/v1/matches/"+args[0]+"/reveal", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&moveStr, "move", "", "Move you committed to (required)")
	cmd.Flags().StringVar(&salt, "salt", "", "Salt used for the commitment (required)")
	_ = cmd.MarkFlagRequired("move")
	_ = cmd.MarkFlagRequired("salt")

	return cmd
}

func newMatchRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <match-id>",
		Short: "Retry pending fund movements for an ended match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchState

			if err := client.Post("/api/v1/matches/"+args[0]+"/settlement/retry", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
