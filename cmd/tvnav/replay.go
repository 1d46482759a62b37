package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tvnav/internal/domain"
	"tvnav/internal/input"
	"tvnav/internal/logic"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		keys     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "replay PAGE",
		Short: "Drive a page headlessly with a scripted key sequence",
		Long: `Replay feeds a key sequence to a page without a terminal UI and prints
where focus ends up after every key press.

Presses are separated by commas. Keys joined with "+" arrive in the same
press, the way a TV delivers one remote button both as a keydown and as a
hardware-key event:

  tvnav replay home.html --keys "ArrowDown,ArrowRight,Enter,Escape+tizenhwkey:back"

A token is a DOM key name (ArrowUp, Enter, Shift+Tab), a numeric key code
(10009) or a hardware key (tizenhwkey:back).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			turns, err := parseKeys(keys)
			if err != nil {
				return err
			}
			return replay(cmd.OutOrStdout(), a, args[0], turns, interval)
		},
	}
	cmd.Flags().StringVarP(&keys, "keys", "k", "", "Comma separated key presses")
	cmd.Flags().DurationVar(&interval, "key-interval", 200*time.Millisecond, "Simulated time between presses")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

// press is one remote button press, possibly reported by several sources
type press struct {
	token   string
	signals []domain.Signal
}

func parseKeys(keys string) ([]press, error) {
	var presses []press
	for _, group := range strings.Split(keys, ",") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		p := press{token: group}
		for _, tok := range splitPress(group) {
			op, src := input.ParseToken(tok)
			if op == domain.OpNone {
				return nil, fmt.Errorf("unknown key %q", tok)
			}
			p.signals = append(p.signals, domain.Signal{Op: op, Source: src})
		}
		presses = append(presses, p)
	}
	if len(presses) == 0 {
		return nil, errors.New("no keys to replay")
	}
	return presses, nil
}

// splitPress splits on "+" but keeps "Shift+" attached to its key
func splitPress(group string) []string {
	var out []string
	parts := strings.Split(group, "+")
	for i := 0; i < len(parts); i++ {
		tok := strings.TrimSpace(parts[i])
		if tok == "Shift" && i+1 < len(parts) {
			i++
			tok += "+" + strings.TrimSpace(parts[i])
		}
		out = append(out, tok)
	}
	return out
}

func replay(w io.Writer, a *app, page string, presses []press, interval time.Duration) error {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	session := logic.NewSession(logic.Options{
		Config: a.cfg,
		Logger: a.logger,
		Now:    func() time.Time { return clock },
	})
	defer session.Close()

	if err := session.Open(page); err != nil {
		return fmt.Errorf("failed to open %s: %w", page, err)
	}

	fmt.Fprintf(w, "%-32s %s\n", "start", position(session))

	for i, p := range presses {
		clock = clock.Add(interval)
		turn := uint64(i + 1)
		for _, sig := range p.signals {
			sig.Turn = turn
			if err := session.Dispatch(sig); err != nil {
				if errors.Is(err, logic.ErrExited) {
					break
				}
				return err
			}
		}
		a.logger.Debug("replayed", zap.String("press", p.token), zap.Uint64("turn", turn))
		if session.Exited() {
			fmt.Fprintf(w, "%-32s %s\n", p.token, "exit")
			return nil
		}
		fmt.Fprintf(w, "%-32s %s\n", p.token, position(session))
	}
	return nil
}

func position(session *logic.Session) string {
	page := filepath.Base(session.Page())
	cur, ok := session.Engine().Current()
	if !ok {
		return page + " (no focus)"
	}
	return page + " " + cur.ID
}
