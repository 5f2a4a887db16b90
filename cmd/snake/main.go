package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/ar90n/textual-snake-game/internal/game"
	"github.com/ar90n/textual-snake-game/internal/loop"
	"golang.org/x/term"
)

func main() {
	width := flag.Int("width", game.DefaultBoardWidth, "width of the game board")
	height := flag.Int("height", game.DefaultBoardHeight, "height of the game board")
	speedName := flag.String("speed", game.SpeedNormal.String(), "initial game speed (slow, normal or fast)")
	flag.Parse()

	speed, err := game.ParseSpeed(*speedName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --speed: %v\n", err)
		os.Exit(1)
	}

	engine, err := game.New(game.Config{
		Width:  *width,
		Height: *height,
		Speed:  speed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid board size: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	l := loop.New(engine, reader, os.Stdout, loop.Options{})
	if err := l.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
