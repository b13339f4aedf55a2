package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/kraytos17/segfit/heap"
	"github.com/kraytos17/segfit/region"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	heap.SetLogger(log)

	h, err := heap.New(region.NewSim(640_000), heap.DefaultConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("heap init failed")
	}

	ptr, err := h.Allocate(123)
	if err != nil {
		log.Fatal().Err(err).Msg("allocate failed")
	}
	log.Info().Uint32("ptr", ptr).Msg("allocated")

	grown, err := h.Reallocate(ptr, 512)
	if err != nil {
		log.Fatal().Err(err).Msg("reallocate failed")
	}
	log.Info().Uint32("ptr", grown).Msg("reallocated")

	if err := h.Free(grown); err != nil {
		log.Fatal().Err(err).Msg("free failed")
	}
	log.Info().Bool("consistent", h.Check()).Interface("stats", h.Stats()).Msg("freed")
}
