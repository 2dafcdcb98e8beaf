package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pixil98/go-quest/internal/display"
	"github.com/pixil98/go-quest/internal/game"
)

// ErrTakenOver ends a session whose player connected again elsewhere.
var ErrTakenOver = errors.New("session taken over by a new connection")

const pushBuffer = 32

// Session is one connected player in one story.
type Session struct {
	id      string
	userId  string
	storyId string

	r    *bufio.Reader
	w    io.Writer
	cmds *commandSet

	msgs     chan string
	done     chan struct{}
	doneOnce sync.Once
}

func newSession(id, userId, storyId string, r *bufio.Reader, w io.Writer, cmds commandRunner) *Session {
	s := &Session{
		id:      id,
		userId:  userId,
		storyId: storyId,
		r:       r,
		w:       w,
		msgs:    make(chan string, pushBuffer),
		done:    make(chan struct{}),
	}
	s.cmds = newCommandSet(s, cmds)
	return s
}

// push queues an asynchronous notification. It never blocks; when the
// player is not keeping up the notification is dropped.
func (s *Session) push(msg string) {
	select {
	case s.msgs <- msg:
	default:
		slog.Debug("dropping notification", "session", s.id)
	}
}

func (s *Session) takeOver() {
	s.doneOnce.Do(func() { close(s.done) })
}

func (s *Session) Play(ctx context.Context) error {
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		for {
			line, err := s.r.ReadString('\n')
			if line != "" {
				select {
				case inputChan <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					inputErrChan <- err
				}
				return
			}
		}
	}()

	// Entering the story shows the room and registers the mailbox.
	for _, verb := range []string{"look", "peek"} {
		if _, err := s.exec(ctx, verb, nil); err != nil {
			return err
		}
	}
	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.done:
			_ = s.writeLine("\nAnother connection has taken over your session.")
			return ErrTakenOver

		case msg := <-s.msgs:
			if err := s.writeLine("\n" + display.Wrap(msg)); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				if err := s.prompt(); err != nil {
					return err
				}
				continue
			}

			quit, err := s.exec(ctx, strings.ToLower(parts[0]), parts[1:])
			if err != nil {
				return err
			}
			if quit {
				_ = s.writeLine("Goodbye!")
				return nil
			}
			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

// exec runs one command. Only write failures are returned; action errors
// are reported to the player.
func (s *Session) exec(ctx context.Context, verb string, args []string) (bool, error) {
	out, quit, err := s.cmds.run(ctx, verb, args)
	if err != nil {
		out = s.describeError(ctx, err)
	}
	if out == "" {
		return quit, nil
	}
	return quit, s.writeLine(out)
}

func (s *Session) describeError(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, game.ErrInternal):
		slog.ErrorContext(ctx, "session command failed", "session", s.id, "user", s.userId, "error", err)
		return "Something went wrong."
	case errors.Is(err, game.ErrPlayerNotFound):
		return "That player is not in this story."
	case errors.Is(err, game.ErrChallengeNotFound):
		return "There is no such challenge."
	case errors.Is(err, game.ErrNotFound), errors.Is(err, game.ErrValidation):
		return display.Capitalize(err.Error())
	}
	slog.ErrorContext(ctx, "unexpected session error", "session", s.id, "error", err)
	return "Something went wrong."
}

func (s *Session) prompt() error {
	_, err := fmt.Fprintf(s.w, "[%s] > ", s.storyId)
	return err
}

func (s *Session) writeLine(msg string) error {
	_, err := io.WriteString(s.w, msg+"\n\n")
	return err
}
