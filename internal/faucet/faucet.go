// Package faucet simulates claiming test tokens.
package faucet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// ErrMinting is returned while a claim is in flight.
var ErrMinting = errors.New("claim already in progress")

// CooldownError is returned when the last claim is too recent.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("next claim available in %s", FormatCooldown(e.Remaining))
}

// Claim is a completed faucet payout.
type Claim struct {
	Amount float64   `json:"amount"`
	Token  string    `json:"token"`
	At     time.Time `json:"at"`
}

// Options configure a Faucet.
type Options struct {
	Amount    float64
	Token     string
	MintDelay time.Duration
	Cooldown  time.Duration
	Now       func() time.Time
}

// Faucet tracks the claim state of one wallet.
type Faucet struct {
	opts Options

	mu        sync.Mutex
	minting   bool
	lastClaim time.Time
	balance   float64
}

func New(opts Options) *Faucet {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Token == "" {
		opts.Token = "USDT"
	}
	return &Faucet{opts: opts}
}

// MintDelay is how long the simulated mint takes.
func (f *Faucet) MintDelay() time.Duration { return f.opts.MintDelay }

// Begin starts a claim. The caller finishes it with Complete once the mint
// delay has passed.
func (f *Faucet) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.minting {
		return ErrMinting
	}
	if rem := f.remainingLocked(); rem > 0 {
		return &CooldownError{Remaining: rem}
	}
	f.minting = true
	return nil
}

// Complete finishes the claim started by Begin.
func (f *Faucet) Complete() Claim {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.opts.Now()
	f.minting = false
	f.lastClaim = now
	f.balance += f.opts.Amount
	return Claim{Amount: f.opts.Amount, Token: f.opts.Token, At: now}
}

// Abort cancels a claim started by Begin.
func (f *Faucet) Abort() {
	f.mu.Lock()
	f.minting = false
	f.mu.Unlock()
}

// Claim runs a whole claim, waiting out the mint delay.
func (f *Faucet) Claim(ctx context.Context) (Claim, error) {
	if err := f.Begin(); err != nil {
		return Claim{}, err
	}
	timer := time.NewTimer(f.opts.MintDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		f.Abort()
		return Claim{}, ctx.Err()
	case <-timer.C:
		return f.Complete(), nil
	}
}

func (f *Faucet) Minting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.minting
}

// CanClaim reports whether the claim button is enabled.
func (f *Faucet) CanClaim() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.minting && f.remainingLocked() == 0
}

// Remaining is the cooldown left before the next claim.
func (f *Faucet) Remaining() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remainingLocked()
}

func (f *Faucet) remainingLocked() time.Duration {
	if f.lastClaim.IsZero() {
		return 0
	}
	rem := f.opts.Cooldown - f.opts.Now().Sub(f.lastClaim)
	if rem < 0 {
		return 0
	}
	return rem
}

func (f *Faucet) Balance() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance
}

// FormatCooldown renders d as "23h 59m", rounding partial minutes down.
func FormatCooldown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %02dm", h, m)
}

// SuccessMessage is the toast text shown after a claim.
func SuccessMessage(c Claim, lang string) string {
	amount := strconv.FormatFloat(c.Amount, 'f', -1, 64)
	if lang == "zh" {
		return fmt.Sprintf("成功领取 %s 测试 %s！", amount, c.Token)
	}
	return fmt.Sprintf("Successfully claimed %s Test %s!", amount, c.Token)
}
