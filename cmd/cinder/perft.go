package main

import (
	"log"
	"sync"

	"github.com/cinderchess/cinder/bench"
)

func perft(depth int, fen string, parallel bool) error {
	log.Printf("============ perft(%d)\n", depth)

	out := make(chan string)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for line := range out {
			log.Println(line)
		}
	}()

	err := bench.Perft(depth, fen, parallel, true, out)
	close(out)
	wg.Wait()
	return err
}
