// voicereplay feeds recorded segments (one JSON object per line) through the
// reducer and prints the board after every change.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/park285/voicechess/internal/domain"
	"github.com/park285/voicechess/internal/game"
	"github.com/park285/voicechess/internal/msgcat"
	"github.com/park285/voicechess/internal/obslog"
	"github.com/park285/voicechess/internal/render"
)

func main() {
	partial := flag.Bool("partial", false, "apply non-final segments")
	messagesDir := flag.String("messages", "", "message catalog override directory")
	quiet := flag.Bool("q", false, "print only the final board")
	flag.Parse()

	in := io.Reader(os.Stdin)
	if path := flag.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		defer f.Close()
		in = f
	}

	if err := obslog.Init(obslog.Options{Level: "warn", Format: "console", Console: true}); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	cat, err := msgcat.New(*messagesDir)
	if err != nil {
		log.Fatalf("messages: %v", err)
	}

	var diagnostics []string
	sink := game.NewLogSink(obslog.L(), cat)
	reducer := game.NewReducer(game.Options{ApplyOnPartial: *partial}, game.SinkFunc(func(d game.Diagnostic) {
		sink.Report(d)
		diagnostics = append(diagnostics, sink.Message(d))
	}))

	state, applied, err := replay(in, reducer, func(n int, st game.GameState) {
		if *quiet {
			return
		}
		printState(os.Stdout, n, st)
	})
	if err != nil {
		log.Fatalf("replay: %v", err)
	}
	if *quiet {
		printState(os.Stdout, applied, state)
	}
	for _, msg := range diagnostics {
		fmt.Fprintln(os.Stderr, msg)
	}
}

// replay reduces every segment in r; onChange runs after each board change.
func replay(r io.Reader, reducer *game.Reducer, onChange func(n int, st game.GameState)) (game.GameState, int, error) {
	state := game.Initial()
	applied := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		var seg domain.Segment
		if err := json.Unmarshal([]byte(raw), &seg); err != nil {
			return state, applied, fmt.Errorf("line %d: %w", line, err)
		}
		next := reducer.Reduce(state, seg)
		if !game.SameBoard(state, next) {
			applied++
			if onChange != nil {
				onChange(applied, next)
			}
		}
		state = next
	}
	return state, applied, sc.Err()
}

func printState(w io.Writer, n int, st game.GameState) {
	fmt.Fprintf(w, "#%d %s to move\n", n, st.ActiveColor)
	fmt.Fprintln(w, render.Text(st.Board.Chess()))
}
