// Package terminal implements the lock challenge as a passphrase prompt.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/example/launchgate/internal/ports/secondary"
)

var (
	// ErrNotEnrolled is reported when no passphrase has been enrolled.
	ErrNotEnrolled = errors.New("no passphrase enrolled")
	// ErrTooManyAttempts is reported after the last wrong passphrase.
	ErrTooManyAttempts = errors.New("too many failed attempts")
)

// ChallengePresenter implements secondary.ChallengePresenter by prompting
// for the enrolled passphrase. Input is hidden when in is a terminal.
type ChallengePresenter struct {
	store    secondary.PreferenceStore
	out      io.Writer
	attempts int

	mu       sync.Mutex
	readLine func() (string, error)
}

// NewChallengePresenter creates a presenter reading from in and prompting on out.
// attempts bounds the wrong answers per challenge.
func NewChallengePresenter(store secondary.PreferenceStore, in io.Reader, out io.Writer, attempts int) *ChallengePresenter {
	if attempts < 1 {
		attempts = 1
	}
	p := &ChallengePresenter{
		store:    store,
		out:      out,
		attempts: attempts,
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.readLine = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			return string(b), err
		}
	} else {
		reader := bufio.NewReader(in)
		p.readLine = func() (string, error) {
			line, err := reader.ReadString('\n')
			if err == io.EOF && line != "" {
				err = nil
			}
			return strings.TrimRight(line, "\r\n"), err
		}
	}
	return p
}

// PresentChallenge prompts on a separate goroutine and returns immediately.
// Cancelling ctx answers OnUserCancel; a read already in flight is abandoned.
func (p *ChallengePresenter) PresentChallenge(ctx context.Context, cb secondary.ChallengeCallbacks) {
	go func() {
		result := make(chan func(), 1)
		go func() {
			result <- p.run(ctx, cb)
		}()

		select {
		case answer := <-result:
			// Both may be ready at once; cancellation wins.
			if ctx.Err() != nil {
				cb.OnUserCancel()
				return
			}
			answer()
		case <-ctx.Done():
			cb.OnUserCancel()
		}
	}()
}

// CanAuthenticate reports whether a passphrase is enrolled.
func (p *ChallengePresenter) CanAuthenticate(ctx context.Context) bool {
	snap, err := p.store.Read(ctx)
	if err != nil || snap == nil {
		return false
	}
	return snap.PassphraseHash != ""
}

// run performs the prompt and returns the callback to deliver.
func (p *ChallengePresenter) run(ctx context.Context, cb secondary.ChallengeCallbacks) func() {
	snap, err := p.store.Read(ctx)
	if err != nil {
		return func() { cb.OnError(fmt.Errorf("failed to read enrolled passphrase: %w", err)) }
	}
	if snap == nil || snap.PassphraseHash == "" {
		return func() { cb.OnError(ErrNotEnrolled) }
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for attempt := 1; attempt <= p.attempts; attempt++ {
		fmt.Fprint(p.out, "Passphrase: ")
		line, err := p.readLine()
		if errors.Is(err, io.EOF) || (err == nil && line == "") {
			return cb.OnUserCancel
		}
		if err != nil {
			return func() { cb.OnError(fmt.Errorf("failed to read passphrase: %w", err)) }
		}

		if bcrypt.CompareHashAndPassword([]byte(snap.PassphraseHash), []byte(line)) == nil {
			return cb.OnSuccess
		}
		if attempt < p.attempts {
			fmt.Fprintf(p.out, "Incorrect passphrase (%d of %d)\n", attempt, p.attempts)
		}
	}

	return func() { cb.OnError(ErrTooManyAttempts) }
}

// Ensure ChallengePresenter implements the interface
var _ secondary.ChallengePresenter = (*ChallengePresenter)(nil)
