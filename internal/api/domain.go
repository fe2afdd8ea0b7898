package api

import (
	"github.com/JaimeStill/promptchain/internal/artists"
	"github.com/JaimeStill/promptchain/internal/chains"
	"github.com/JaimeStill/promptchain/internal/generation"
	"github.com/JaimeStill/promptchain/internal/inspirations"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Chains       chains.System
	Artists      artists.System
	Inspirations inspirations.System
	Generation   generation.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	return &Domain{
		Chains:       chains.New(db, runtime.Storage, runtime.Logger),
		Artists:      artists.New(db, runtime.Logger),
		Inspirations: inspirations.New(db, runtime.Logger),
		Generation:   generation.New(runtime.Generation, runtime.Logger),
	}
}
