// Command pingbot connects one or more random-playing bots to a ping game
// server. It is meant for smoke and load testing: every bot joins the
// matchmaking queue, plays random actions when on turn and reports how its
// game ended.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "pingbot",
		Usage: "play random games against a ping server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Value:   "ws://localhost:8080/ws",
				Usage:   "WebSocket endpoint of the server",
				Sources: cli.EnvVars("PINGBOT_URL"),
			},
			&cli.StringFlag{
				Name:  "name",
				Value: "bot",
				Usage: "name prefix; bots are numbered name-1, name-2, ...",
			},
			&cli.IntFlag{
				Name:  "bots",
				Value: 2,
				Usage: "number of concurrent bots",
			},
			&cli.IntFlag{
				Name:  "max-actions",
				Value: 200,
				Usage: "leave the game after this many actions (0 = never)",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Value: 100 * time.Millisecond,
				Usage: "pause before every action",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "random seed (default: current time)",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	count := cmd.Int("bots")
	if count < 1 {
		return fmt.Errorf("bots must be at least 1, got %d", count)
	}
	seed := int64(cmd.Int("seed"))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bots := make([]*Bot, count)
	for i := range bots {
		bot := NewBot(fmt.Sprintf("%s-%d", cmd.String("name"), i+1), cmd.String("url"), seed+int64(i))
		bot.Delay = cmd.Duration("delay")
		bot.MaxActions = cmd.Int("max-actions")
		bots[i] = bot
	}

	outcomes := playAll(ctx, bots)

	failed := 0
	for i, o := range outcomes {
		if o.err != nil {
			failed++
			log.Printf("%s: error: %v", bots[i].Name, o.err)
			continue
		}
		log.Printf("%s: %s (%s) after %d actions, turn %d", bots[i].Name, o.Result, o.Reason, o.Actions, o.Turns)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d bots failed", failed, count)
	}
	return nil
}

type botOutcome struct {
	Outcome
	err error
}

// playAll runs every bot concurrently and waits for all of them.
func playAll(ctx context.Context, bots []*Bot) []botOutcome {
	outcomes := make([]botOutcome, len(bots))
	var wg sync.WaitGroup
	for i, bot := range bots {
		wg.Add(1)
		go func(i int, bot *Bot) {
			defer wg.Done()
			o, err := bot.Play(ctx)
			outcomes[i] = botOutcome{Outcome: o, err: err}
		}(i, bot)
	}
	wg.Wait()
	return outcomes
}
