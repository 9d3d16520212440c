package main

import (
	"fmt"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/scheduler"
	"github.com/vovakirdan/neon-snake/internal/session"
	"github.com/vovakirdan/neon-snake/internal/snake"
)

var (
	flagMoves     string
	flagExtraTick int
	flagQuiet     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted game without a terminal",
	Long: `Play a game from a move script on a simulated clock and print what happened.

Each character of --moves is one tick: u, d, l, r steer before the tick,
'.' lets the snake keep going. Runs stop early on game over. With the same
--seed the outcome is always the same.

Examples:
  snake simulate --moves rrrrr --seed 1
  snake simulate --moves "rrrrrddddd....." --seed 7 --difficulty hard
  snake simulate --moves r --ticks 50          # Drive into the wall`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagMoves, "moves", "", "Move script: u, d, l, r or '.' per tick")
	simulateCmd.Flags().IntVar(&flagExtraTick, "ticks", 0, "Extra ticks to run after the script")
	simulateCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print the final state")
}

// parseMoves turns a script into one vector per tick; Idle means no input.
func parseMoves(script string) ([]snake.Vector, error) {
	moves := make([]snake.Vector, 0, len(script))
	for i, r := range script {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		v, err := snake.ParseVector(string(r))
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, v)
	}
	return moves, nil
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger, cleanup := newLogger(false)
	defer cleanup()

	moves, err := parseMoves(flagMoves)
	exitOnError("parsing --moves", err)
	for range flagExtraTick {
		moves = append(moves, snake.Idle)
	}

	cfg := loadConfig()
	clock := scheduler.NewManualClock()
	sess, err := session.New(session.Options{
		Engine:   cfg.Engine(),
		Effects:  cfg.EffectsTuning(),
		CellSize: cfg.Grid.CellSize,
		Seed:     flagSeed,
		Clock:    clock,
		Logger:   logger,
		Mode:     string(cfg.Difficulty),
	})
	exitOnError("creating session", err)
	defer sess.Close()

	if !flagQuiet {
		sess.Subscribe(func(ev snake.Event) {
			fmt.Printf("t=%-8s %s\n", clock.Now(), describeEvent(ev))
		})
	}

	exitOnError("starting session", sess.Start())

	for _, v := range moves {
		if sess.Frame().State != snake.StateRunning {
			break
		}
		if !v.IsZero() {
			sess.ProposeDirection(v)
		}
		clock.Advance(sess.Frame().Interval)
	}

	snap := sess.Snapshot()
	fmt.Println()
	fmt.Printf("state     %s\n", snap.State)
	fmt.Printf("steps     %d\n", snap.Steps)
	fmt.Printf("score     %d (%d food)\n", snap.Score, snap.FoodEaten)
	fmt.Printf("length    %d\n", snap.Length)
	fmt.Printf("head      %s heading %s\n", snap.Head, snap.Direction)
	fmt.Printf("food      %s\n", snap.Food)
	fmt.Printf("interval  %s\n", snap.Interval)
}

func describeEvent(ev snake.Event) string {
	switch e := ev.(type) {
	case snake.FoodConsumed:
		return fmt.Sprintf("food at %s, score %d, length %d", e.At, e.Score, e.Length)
	case snake.SpeedChanged:
		return fmt.Sprintf("speed %s", e.Interval)
	case snake.StateChanged:
		return fmt.Sprintf("state %s -> %s", e.From, e.To)
	case snake.GameOver:
		return fmt.Sprintf("game over (%s): score %d after %d steps", e.Cause, e.FinalScore, e.Steps)
	default:
		return fmt.Sprintf("%T", ev)
	}
}
