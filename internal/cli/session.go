package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/blockgame-go/internal/api/request"
	"github.com/mcoot/blockgame-go/internal/api/response"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Game session commands",
		Long:  "Create, inspect and play block puzzle sessions.",
	}

	cmd.AddCommand(newSessionNewCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionDeleteCmd())
	cmd.AddCommand(newSessionFitCmd())
	cmd.AddCommand(newSessionGameOverCmd())
	cmd.AddCommand(newSessionPlaceCmd())
	cmd.AddCommand(newSessionTryPlaceCmd())
	cmd.AddCommand(newSessionResolveCmd())
	cmd.AddCommand(newSessionRefillCmd())
	cmd.AddCommand(newSessionResetCmd())
	cmd.AddCommand(newSessionBoosterCmd())
	cmd.AddCommand(newSessionAutoplayCmd())

	return cmd
}

func sessionPath(id string, suffix string) string {
	return "/api/v1/sessions/" + url.PathEscape(id) + suffix
}

func newSessionNewCmd() *cobra.Command {
	var (
		variant   string
		catalog   string
		gridSize  int
		batchSize int
		obstacles int
		smart     bool
		combo     bool
		booster   bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new session",
		Long: `Create a new session from a variant preset.

Flags override individual preset values; unset flags keep the preset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateSessionRequest{Variant: variant}

			flags := cmd.Flags()
			if flags.Changed("catalog") {
				req.Catalog = &catalog
			}
			if flags.Changed("grid-size") {
				req.GridSize = &gridSize
			}
			if flags.Changed("batch-size") {
				req.BatchSize = &batchSize
			}
			if flags.Changed("obstacles") {
				req.ObstacleCount = &obstacles
			}
			if flags.Changed("smart") {
				req.SmartGeneration = &smart
			}
			if flags.Changed("combo") {
				req.Combo = &request.ComboOverrides{Enabled: &combo}
			}
			if flags.Changed("booster") {
				req.Booster = &request.BoosterOverrides{Enabled: &booster}
			}

			var result response.Session
			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "Variant preset (see 'blockctl variants')")
	cmd.Flags().StringVar(&catalog, "catalog", "", "Shape catalog override")
	cmd.Flags().IntVar(&gridSize, "grid-size", 0, "Grid side length override")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Pieces per batch override")
	cmd.Flags().IntVar(&obstacles, "obstacles", 0, "Obstacle count override")
	cmd.Flags().BoolVar(&smart, "smart", false, "Enable smart generation")
	cmd.Flags().BoolVar(&combo, "combo", false, "Enable combo scoring")
	cmd.Flags().BoolVar(&booster, "booster", false, "Enable the score booster")

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Get(sessionPath(args[0], ""), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List session IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.SessionList
			if err := client.Get("/api/v1/sessions", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(sessionPath(args[0], "")); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Session deleted")
			return nil
		},
	}
}

// parsePlacement reads "<session-id> <piece-id> <x> <y>" arguments
func parsePlacement(args []string) (string, request.PlaceRequest, error) {
	x, err := strconv.Atoi(args[2])
	if err != nil {
		return "", request.PlaceRequest{}, fmt.Errorf("invalid x %q: %w", args[2], err)
	}
	y, err := strconv.Atoi(args[3])
	if err != nil {
		return "", request.PlaceRequest{}, fmt.Errorf("invalid y %q: %w", args[3], err)
	}
	return args[0], request.PlaceRequest{PieceID: args[1], X: x, Y: y}, nil
}

func newSessionFitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fit <session-id> <piece-id> <x> <y>",
		Short: "Check whether a piece fits at an origin",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, req, err := parsePlacement(args)
			if err != nil {
				return err
			}

			var result response.Fit
			if err := client.Post(sessionPath(id, "/fit"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionGameOverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gameover <session-id>",
		Short: "Check whether any batch piece still fits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameOver
			if err := client.Get(sessionPath(args[0], "/gameover"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <session-id> <piece-id> <x> <y>",
		Short: "Place a piece and resolve clears",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, req, err := parsePlacement(args)
			if err != nil {
				return err
			}

			var result response.Move
			if err := client.Post(sessionPath(id, "/place"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionTryPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "try-place <session-id> <piece-id> <x> <y>",
		Short: "Place a piece without resolving clears",
		Long: `Place a piece and leave the clear pass pending.

Run 'blockctl session resolve' to apply the clears.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, req, err := parsePlacement(args)
			if err != nil {
				return err
			}

			var result response.Placement
			if err := client.Post(sessionPath(id, "/try-place"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <session-id>",
		Short: "Resolve pending clears",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Clear
			if err := client.Post(sessionPath(args[0], "/resolve"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionRefillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refill <session-id>",
		Short: "Deal a new batch once the current one is used up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Batch
			if err := client.Post(sessionPath(args[0], "/refill"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session-id>",
		Short: "Start the session over, keeping the best score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Post(sessionPath(args[0], "/reset"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionBoosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "booster <session-id>",
		Short: "Spend coins to activate the score booster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Post(sessionPath(args[0], "/booster"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionAutoplayCmd() *cobra.Command {
	var (
		strategy string
		maxMoves int
	)

	cmd := &cobra.Command{
		Use:   "autoplay <session-id>",
		Short: "Let a bot play the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.AutoplayRequest{Strategy: strategy, MaxMoves: maxMoves}

			var result response.Autoplay
			if err := client.Post(sessionPath(args[0], "/autoplay"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "greedy", "Bot strategy: greedy, random")
	cmd.Flags().IntVar(&maxMoves, "max-moves", 0, "Stop after this many moves (0 plays until the game ends)")

	return cmd
}
