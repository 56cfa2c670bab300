// Package session tracks the lifecycle of a single swap attempt, from the
// user's selection through quoting and execution.
package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/registry"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/types"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/wallet"
)

// Status defines the current state of a swap session.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusQuoting       Status = "quoting"
	StatusQuoted        Status = "quoted"
	StatusQuoteFailed   Status = "quote_failed"
	StatusExecuting     Status = "executing"
	StatusExecuted      Status = "executed"
	StatusExecuteFailed Status = "execute_failed"
)

// DefaultGracePeriod is how long an executed session stays visible before
// resetting to idle.
const DefaultGracePeriod = 3 * time.Second

var (
	// ErrBusy is returned when an operation is started while another one
	// is still outstanding for the same session. The session state is
	// left unchanged.
	ErrBusy = errors.New("an operation is already in flight")

	// ErrNoQuote is returned when execute is requested without a quoted
	// route to execute.
	ErrNoQuote = errors.New("no quoted route to execute")

	// ErrClosed is returned for operations on a closed session.
	ErrClosed = errors.New("session closed")

	// ErrSuperseded is returned to an operation whose session was reset
	// or closed while it was waiting on the network. Its result has been
	// discarded.
	ErrSuperseded = errors.New("attempt superseded")
)

// RouteQuoter finds a priced route for a swap intent.
type RouteQuoter interface {
	RequestQuote(ctx context.Context, intent types.SwapIntent) (types.QuoteResult, error)
}

// RouteSubmitter records an intent-to-execute and returns the submission id.
type RouteSubmitter interface {
	Submit(ctx context.Context, walletAddress string, fromChainID, toChainID int64, fromToken, toToken, fromAmount, toAmount string) (string, error)
}

// WalletSource reports the connected wallet address, if any.
type WalletSource interface {
	Address() (string, bool)
}

// Snapshot is an immutable view of the session for display.
type Snapshot struct {
	Status       Status
	Intent       types.SwapIntent
	Quote        *types.QuoteResult
	ErrorMessage string
	SubmissionID string
}

// Session owns one swap attempt at a time. At most one quote or execution
// may be outstanding; results of superseded attempts are discarded.
type Session struct {
	quoter    RouteQuoter
	submitter RouteSubmitter
	wallet    WalletSource
	grace     time.Duration

	mu           sync.Mutex
	status       Status
	intent       types.SwapIntent
	quote        *types.QuoteResult
	errorMessage string
	submissionID string
	attempt      uint64
	inFlight     bool
	closed       bool
}

// New creates an idle session.
func New(quoter RouteQuoter, submitter RouteSubmitter, walletSrc WalletSource) *Session {
	return &Session{
		quoter:    quoter,
		submitter: submitter,
		wallet:    walletSrc,
		grace:     DefaultGracePeriod,
		status:    StatusIdle,
	}
}

// SetGracePeriod overrides how long an executed session is displayed
// before resetting to idle.
func (s *Session) SetGracePeriod(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grace = d
}

// SetIntent records the user's current selection. Rejected while an
// operation is outstanding.
func (s *Session) SetIntent(intent types.SwapIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.inFlight {
		return ErrBusy
	}
	s.intent = intent
	return nil
}

// FindRoute quotes the current intent. The session transitions to Quoting,
// then to Quoted or QuoteFailed when the round trip settles. A second
// FindRoute while one is outstanding is rejected with ErrBusy and leaves
// the session untouched.
func (s *Session) FindRoute(ctx context.Context) (types.QuoteResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return types.QuoteResult{}, ErrClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return types.QuoteResult{}, ErrBusy
	}

	s.status = StatusQuoting
	s.quote = nil
	s.errorMessage = ""
	s.submissionID = ""
	s.attempt++
	token := s.attempt
	s.inFlight = true
	intent := s.intent
	s.mu.Unlock()

	result, err := s.quoter.RequestQuote(ctx, intent)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.attempt != token {
		// The session was reset or torn down while the request was in
		// flight; the late response must not be applied.
		return types.QuoteResult{}, ErrSuperseded
	}
	s.inFlight = false

	if err != nil {
		s.status = StatusQuoteFailed
		s.errorMessage = err.Error()
		return types.QuoteResult{}, err
	}

	s.status = StatusQuoted
	s.quote = &result
	return result, nil
}

// Execute submits the quoted route for execution. It requires a connected
// wallet; without one the session state is left unchanged. On failure the
// quote is preserved so execution can be retried without re-quoting.
func (s *Session) Execute(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return "", ErrBusy
	}
	address, connected := s.wallet.Address()
	if !connected {
		// Precondition failure: surface it without starting work. The
		// wallet check comes first so an idle session without a wallet
		// reports the missing wallet, not the missing quote.
		s.mu.Unlock()
		return "", wallet.ErrNotConnected
	}
	if s.quote == nil || (s.status != StatusQuoted && s.status != StatusExecuteFailed) {
		s.mu.Unlock()
		return "", ErrNoQuote
	}

	intent := s.intent
	quote := *s.quote
	s.status = StatusExecuting
	s.errorMessage = ""
	s.attempt++
	token := s.attempt
	s.inFlight = true
	s.mu.Unlock()

	fromChain, err := registry.ResolveChain(intent.FromChain)
	if err == nil {
		var toChain types.ChainDescriptor
		toChain, err = registry.ResolveChain(intent.ToChain)
		if err == nil {
			var id string
			toAmount := strconv.FormatFloat(quote.OutputUSD, 'f', -1, 64)
			id, err = s.submitter.Submit(ctx, address, fromChain.ChainID, toChain.ChainID,
				intent.FromToken, intent.ToToken, intent.HumanAmount, toAmount)
			if err == nil {
				return s.settleExecute(token, id, nil)
			}
		}
	}

	return s.settleExecute(token, "", err)
}

func (s *Session) settleExecute(token uint64, id string, err error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.attempt != token {
		return "", ErrSuperseded
	}
	s.inFlight = false

	if err != nil {
		s.status = StatusExecuteFailed
		s.errorMessage = err.Error()
		return "", err
	}

	s.status = StatusExecuted
	s.submissionID = id

	// Show the result briefly, then make way for a fresh attempt.
	time.AfterFunc(s.grace, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || s.attempt != token || s.status != StatusExecuted {
			return
		}
		s.resetLocked()
	})

	return id, nil
}

// Snapshot returns the session's current state for display.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Status:       s.status,
		Intent:       s.intent,
		ErrorMessage: s.errorMessage,
		SubmissionID: s.submissionID,
	}
	if s.quote != nil {
		q := *s.quote
		snap.Quote = &q
	}
	return snap
}

// Reset supersedes any outstanding operation and returns the session to
// idle. The intent is kept; quote, error and submission id are cleared.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.attempt++
	s.resetLocked()
}

// Close tears the session down. Responses still in flight are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.attempt++
	s.resetLocked()
}

// resetLocked is called with the mutex held.
func (s *Session) resetLocked() {
	s.status = StatusIdle
	s.quote = nil
	s.errorMessage = ""
	s.submissionID = ""
	s.inFlight = false
}
