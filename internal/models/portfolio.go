// Package models defines data structures for FinSight
package models

import (
	"fmt"
	"strings"
	"sync"
)

// Portfolio is an in-memory set of holdings keyed by ticker. It is owned by
// the caller and passed into every engine operation; there is no process-wide
// instance. Individual operations are guarded by a mutex, but a sequence of
// mutations and reads still needs a single owner per session.
type Portfolio struct {
	mu      sync.RWMutex
	weights map[string]float64
	order   []string // tickers in insertion order
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		weights: make(map[string]float64),
	}
}

// NormalizeTicker uppercases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// AddStock adds a holding with the given weight. Adding a duplicate or an
// empty ticker is a no-op reported through the status string, never an error.
func (p *Portfolio) AddStock(ticker string, weight float64) string {
	ticker = NormalizeTicker(ticker)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.weights[ticker]; ticker == "" || exists {
		return fmt.Sprintf("%s already exists.", ticker)
	}

	p.weights[ticker] = weight
	p.order = append(p.order, ticker)
	return fmt.Sprintf("%s added to portfolio.", ticker)
}

// RemoveStock removes a holding by ticker.
func (p *Portfolio) RemoveStock(ticker string) string {
	ticker = NormalizeTicker(ticker)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.weights[ticker]; !exists {
		return fmt.Sprintf("%s not found in portfolio.", ticker)
	}

	delete(p.weights, ticker)
	for i, t := range p.order {
		if t == ticker {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return fmt.Sprintf("%s removed from portfolio.", ticker)
}

// Tickers returns the tickers in insertion order.
func (p *Portfolio) Tickers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Weights returns a copy of the raw (unnormalized) ticker weights.
func (p *Portfolio) Weights() map[string]float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]float64, len(p.weights))
	for t, w := range p.weights {
		out[t] = w
	}
	return out
}

// Weight returns the raw weight for a ticker and whether it is held.
func (p *Portfolio) Weight(ticker string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	w, ok := p.weights[NormalizeTicker(ticker)]
	return w, ok
}

// Len returns the number of holdings.
func (p *Portfolio) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// IsEmpty reports whether the portfolio has no holdings.
func (p *Portfolio) IsEmpty() bool {
	return p.Len() == 0
}
