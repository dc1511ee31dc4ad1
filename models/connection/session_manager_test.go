package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
)

func newSessionGame(t *testing.T) *mb.Game {
	t.Helper()

	game, err := mb.NewBattleshipGameManager().CreateGame(mb.DefaultGameConfig(), mb.NewRandomSource(1))
	if err != nil {
		t.Fatal(err)
	}
	return game
}

func TestGenerateAndFindSession(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	session := bsm.GenerateNewSession(nil)

	if bsm.CountSessions() != 1 {
		t.Fatalf("expected sessions: %d\tgot: %d", 1, bsm.CountSessions())
	}

	found, err := bsm.FindSession(session.Id())
	if err != nil {
		t.Fatal(err)
	}
	if found != session {
		t.Fatal("expected the generated session to be found")
	}

	bsm.TerminateSession(session.Id())
	if _, err := bsm.FindSession(session.Id()); !errors.Is(err, cerr.ErrSessionNotFound) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrSessionNotFound, err)
	}
}

func TestReconnectUnknownSession(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	if err := bsm.ReconnectSession("nope", nil); !errors.Is(err, cerr.ErrSessionNotFound) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrSessionNotFound, err)
	}
}

func TestCleanupRemovesStaleSessions(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithCleanupInterval(time.Minute))
	stale := bsm.GenerateNewSession(nil)
	fresh := bsm.GenerateNewSession(nil)
	stale.createdAt = time.Now().Add(-time.Hour)

	if removed := bsm.cleanup(time.Now()); removed != 1 {
		t.Fatalf("expected removed: %d\tgot: %d", 1, removed)
	}
	if _, err := bsm.FindSession(stale.Id()); err == nil {
		t.Fatal("expected stale session to be removed")
	}
	if _, err := bsm.FindSession(fresh.Id()); err != nil {
		t.Fatal(err)
	}
}

func TestCleanupPeriodicallyStopsOnCancel(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithCleanupInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		bsm.CleanupPeriodically(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop after cancel")
	}
}

func TestAbnormalClosureWithoutGame(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithGracePeriod(time.Hour))
	session := bsm.GenerateNewSession(nil)

	err := bsm.HandleAbnormalClosureSession(session)
	var connErr ConnErr
	if !errors.As(err, &connErr) || connErr.Code() != ConnLoopBreak {
		t.Fatalf("expected conn error code: %d\tgot: %v", ConnLoopBreak, err)
	}
}

func TestAbnormalClosureGracePeriodExpires(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithGracePeriod(10 * time.Millisecond))
	session := bsm.GenerateNewSession(nil)
	session.SetGame(newSessionGame(t), nil)

	if err := bsm.HandleAbnormalClosureSession(session); err == nil {
		t.Fatal("expected error after grace period")
	}
}

func TestAbnormalClosureReconnect(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithGracePeriod(time.Minute))
	session := bsm.GenerateNewSession(nil)
	session.SetGame(newSessionGame(t), nil)

	result := make(chan error, 1)
	go func() {
		result <- bsm.HandleAbnormalClosureSession(session)
	}()

	// The handler may not be waiting yet, so keep reconnecting until it
	// observes one.
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(time.Second)

	for {
		select {
		case err := <-result:
			if err != nil {
				t.Fatalf("expected reconnect to resume session, got: %v", err)
			}
			return
		case <-ticker.C:
			if err := bsm.ReconnectSession(session.Id(), nil); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("abnormal closure handler did not observe reconnect")
		}
	}
}

func TestConnErr(t *testing.T) {
	err := NewConnErr(ConnLoopRetry).AddDesc("timeout")
	if err.Code() != ConnLoopRetry {
		t.Fatalf("expected code: %d\tgot: %d", ConnLoopRetry, err.Code())
	}
	if err.Error() == "" {
		t.Fatal("expected non-empty error text")
	}
}
