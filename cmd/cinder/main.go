package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/cinderchess/cinder/board"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	stepRun = flag.Bool("step", false, "run step mode")

	playRun      = flag.Bool("play", false, "run self-play mode")
	playSims     = flag.Uint("play.sims", 0, "simulations per move in self-play mode")
	playModel    = flag.String("play.model", "", "evaluation model file in self-play mode")
	playMoveTime = flag.Int("play.movetime", 0, "time budget per move in seconds in self-play mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 5, "perft depth")
	perftParallel = flag.Bool("perft.parallel", true, "run perft in parallel")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	err := realMain(flag.Args())
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	if *movegenRun {
		return movegen(fen, *movegenDraw)
	}
	if *stepRun {
		return step(fen)
	}
	if *playRun {
		return play(fen, uint32(*playSims), *playModel, *playMoveTime)
	}
	if *perftRun {
		return perft(*perftDepth, fen, *perftParallel)
	}

	flag.Usage()
	return errors.New("no mode selected")
}
