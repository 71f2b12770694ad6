package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

const (
	trackingPrefix   = "ORD"
	trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingSuffix   = 6
	// MaxTrackingAttempts caps the retry loop.
	MaxTrackingAttempts = 10
)

// TrackingNumberChecker reports whether an order already holds a tracking number.
type TrackingNumberChecker interface {
	ExistsTrackingNumber(ctx context.Context, trackingNumber string) (bool, error)
}

type SuffixSource func(n int) (string, error)

// TrackingNumbers issues "ORD" + YYMMDD + six random [A-Z0-9] characters.
type TrackingNumbers struct {
	suffix SuffixSource
}

func NewTrackingNumbers() TrackingNumbers {
	return TrackingNumbers{suffix: randomSuffix}
}

// NewTrackingNumbersWithSource is used by tests to force collisions.
func NewTrackingNumbersWithSource(src SuffixSource) TrackingNumbers {
	return TrackingNumbers{suffix: src}
}

// Next returns the first candidate no order holds, or
// order.ErrTrackingNumberExhausted after MaxTrackingAttempts collisions.
func (t TrackingNumbers) Next(ctx context.Context, now time.Time, checker TrackingNumberChecker) (string, error) {
	prefix := trackingPrefix + now.UTC().Format("060102")
	for range MaxTrackingAttempts {
		suffix, err := t.suffix(trackingSuffix)
		if err != nil {
			return "", err
		}
		candidate := prefix + suffix
		exists, err := checker.ExistsTrackingNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", order.ErrTrackingNumberExhausted
}

func randomSuffix(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	limit := big.NewInt(int64(len(trackingAlphabet)))
	for range n {
		i, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(trackingAlphabet[i.Int64()])
	}
	return b.String(), nil
}
