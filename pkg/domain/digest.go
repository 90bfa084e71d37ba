package domain

import (
	"errors"
	"time"
)

// ErrSourceUnavailable is returned by adapters on network or HTTP failures
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrMalformedRecord marks a single source record which can't be converted to an item
var ErrMalformedRecord = errors.New("malformed record")

// ErrDateUnparseable marks a date which can't be parsed, callers fall back to sentinel values
var ErrDateUnparseable = errors.New("date unparseable")

// Digest is the ranked result of a single run, handed to the report assembler
type Digest struct {
	RunID       string                `json:"run_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	NewsOrder   []string              `json:"news_order"`
	News        map[string][]NewsItem `json:"news"`
	PaperOrder  []string              `json:"paper_order"`
	Papers      map[string][]Paper    `json:"papers"`
}
