package antivirus

import (
	"context"
	"errors"
)

// ErrNoScanner is reported when every configured scanner is unreachable.
var ErrNoScanner = errors.New("antivirus: no scanner available")

// ScanResult is the verdict for one upload. Any Err counts as infected.
type ScanResult struct {
	Infected    bool
	ThreatName  string
	ScannerName string
	Err         error
}

// Clean reports whether the upload may be stored.
func (r ScanResult) Clean() bool {
	return !r.Infected && r.Err == nil
}

// Scanner inspects uploaded bytes before they reach object storage.
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) ScanResult
	Name() string
	Available(ctx context.Context) bool
}

// NoOpScanner accepts everything. Used when CLAMAV_ADDRESS is unset.
type NoOpScanner struct{}

var _ Scanner = NoOpScanner{}

func (NoOpScanner) Scan(context.Context, string, []byte) ScanResult {
	return ScanResult{ScannerName: "noop"}
}

func (NoOpScanner) Name() string                   { return "noop" }
func (NoOpScanner) Available(context.Context) bool { return true }

// ChainScanner uses the first available scanner.
type ChainScanner struct {
	scanners []Scanner
}

var _ Scanner = (*ChainScanner)(nil)

func NewChainScanner(scanners ...Scanner) *ChainScanner {
	return &ChainScanner{scanners: scanners}
}

func (c *ChainScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	for _, s := range c.scanners {
		if s.Available(ctx) {
			return s.Scan(ctx, filename, data)
		}
	}
	return ScanResult{Infected: true, ScannerName: c.Name(), Err: ErrNoScanner}
}

func (c *ChainScanner) Name() string { return "chain" }

func (c *ChainScanner) Available(ctx context.Context) bool {
	for _, s := range c.scanners {
		if s.Available(ctx) {
			return true
		}
	}
	return false
}
