package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for journaled entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical raw model output always maps to the same journal entry.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RepairRecord is one journaled JSON recovery.
// The same raw text journaled twice updates a single record.
type RepairRecord struct {
	Id         ID        // IDFromContent(Raw)
	Source     string    // Where the text came from (file name, model name)
	Stage      string    // Name of the repair stage whose output was accepted
	Degraded   bool      // Content may have been dropped to produce Repaired
	ParseError string    // Message of the parse failure that triggered the repair
	Raw        string    // Text exactly as the model produced it
	Repaired   string    // Valid JSON returned by the engine
	Attempts   int       // Number of times this raw text was journaled
	InsertedAt time.Time // When the record was first journaled
	UpdatedAt  time.Time // When the record was last journaled
}

// StageCount is the number of journaled repairs produced by one stage.
type StageCount struct {
	Stage string
	Count int
}
