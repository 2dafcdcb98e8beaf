package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-quest/internal/commands"
	"github.com/pixil98/go-quest/internal/display"
	"github.com/pixil98/go-quest/internal/mailbox"
)

// commandRunner is the part of commands.Handler a session drives.
type commandRunner interface {
	Move(context.Context, commands.MoveRequest) (*commands.MoveResult, error)
	Take(context.Context, commands.TakeRequest) (*commands.TakeResult, error)
	Kill(context.Context, commands.KillRequest) (*commands.KillResult, error)
	Loot(context.Context, commands.LootRequest) (*commands.LootResult, error)
	Help(context.Context, commands.HelpRequest) (*commands.HelpResult, error)
	SolveChallenge(context.Context, commands.SolveRequest) (*commands.SolveResult, error)
	SendMessage(context.Context, commands.SendRequest) (*commands.MailboxResult, error)
	Poll(context.Context, commands.MailboxRequest) (*commands.MailboxResult, error)
	Peek(context.Context, commands.MailboxRequest) (*commands.MailboxResult, error)
	Look(context.Context, commands.LookRequest) (*commands.LookResult, error)
	Status(context.Context, commands.LookRequest) (*commands.StatusResult, error)
	RecentEvents(context.Context, commands.EventsRequest) (*commands.EventsResult, error)
}

var _ commandRunner = (*commands.Handler)(nil)

type commandFunc func(ctx context.Context, args []string) (string, error)

type command struct {
	usage   string
	minArgs int
	run     commandFunc
	quit    bool
}

type commandSet struct {
	s       *Session
	h       commandRunner
	byVerb  map[string]*command
	ordered []string
}

func newCommandSet(s *Session, h commandRunner) *commandSet {
	cs := &commandSet{s: s, h: h, byVerb: map[string]*command{}}

	cs.add([]string{"look", "l"}, &command{usage: "look", run: cs.look})
	cs.add([]string{"go", "move"}, &command{usage: "go <location>", minArgs: 1, run: cs.move})
	cs.add([]string{"take", "get"}, &command{usage: "take <item>", minArgs: 1, run: cs.take})
	cs.add([]string{"kill", "attack"}, &command{usage: "kill <player>", minArgs: 1, run: cs.kill})
	cs.add([]string{"loot"}, &command{usage: "loot <player> <item...>", minArgs: 2, run: cs.loot})
	cs.add([]string{"help"}, &command{usage: "help [player]", run: cs.help})
	cs.add([]string{"solve"}, &command{usage: "solve <challenge> <answer...>", minArgs: 2, run: cs.solve})
	cs.add([]string{"say"}, &command{usage: "say <message...>", minArgs: 1, run: cs.say})
	cs.add([]string{"mail"}, &command{usage: "mail", run: cs.mail})
	cs.add([]string{"peek"}, &command{usage: "peek", run: cs.peek})
	cs.add([]string{"events"}, &command{usage: "events", run: cs.events})
	cs.add([]string{"status", "score"}, &command{usage: "status", run: cs.status})
	cs.add([]string{"quit"}, &command{usage: "quit", quit: true, run: func(context.Context, []string) (string, error) { return "", nil }})

	return cs
}

func (cs *commandSet) add(verbs []string, c *command) {
	for _, v := range verbs {
		cs.byVerb[v] = c
	}
	cs.ordered = append(cs.ordered, c.usage)
}

// run executes verb and returns the text to show the player.
func (cs *commandSet) run(ctx context.Context, verb string, args []string) (string, bool, error) {
	c, ok := cs.byVerb[verb]
	if !ok {
		return fmt.Sprintf("Unknown command: %s. Type 'help' for a list.", verb), false, nil
	}
	if len(args) < c.minArgs {
		return "Usage: " + c.usage, false, nil
	}

	out, err := c.run(ctx, args)
	return out, c.quit, err
}

func (cs *commandSet) ids() (string, string) {
	return cs.s.userId, cs.s.storyId
}

// withMail appends rendered mailbox entries to out.
func withMail(out string, entries []mailbox.Entry) (string, error) {
	if len(entries) == 0 {
		return out, nil
	}
	mail, err := display.Render("messages", entries)
	if err != nil {
		return "", err
	}
	return out + "\n\n" + mail, nil
}

func withHint(msg, hint string) string {
	if hint == "" {
		return display.Wrap(msg)
	}
	return display.Wrap(msg + " " + hint)
}

func (cs *commandSet) look(ctx context.Context, _ []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.Look(ctx, commands.LookRequest{UserId: user, StoryId: story})
	if err != nil {
		return "", err
	}
	out, err := display.Render("look", res)
	if err != nil {
		return "", err
	}
	return withMail(out, res.Messages)
}

func (cs *commandSet) move(ctx context.Context, args []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.Move(ctx, commands.MoveRequest{UserId: user, StoryId: story, Target: args[0]})
	if err != nil {
		return "", err
	}
	if !res.Success {
		return withMail(withHint(res.Message, res.Hint), res.Messages)
	}

	out, err := cs.look(ctx, nil)
	if err != nil {
		return "", err
	}
	if res.Win {
		out = display.Wrap(res.Message) + "\n\n" + out
	}
	return withMail(out, res.Messages)
}

func (cs *commandSet) take(ctx context.Context, args []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.Take(ctx, commands.TakeRequest{UserId: user, StoryId: story, Target: args[0]})
	if err != nil {
		return "", err
	}
	return withMail(display.Wrap(res.Message), res.Messages)
}

func (cs *commandSet) kill(ctx context.Context, args []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.Kill(ctx, commands.KillRequest{PlayerId: user, TargetId: strings.ToLower(args[0]), StoryId: story})
	if err != nil {
		return "", err
	}
	out := res.Message
	if len(res.LootableItems) > 0 {
		out += fmt.Sprintf(" Lootable: %s.", strings.Join(res.LootableItems, ", "))
	}
	return display.Wrap(out), nil
}

func (cs *commandSet) loot(ctx context.Context, args []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.Loot(ctx, commands.LootRequest{PlayerId: user, TargetId: strings.ToLower(args[0]), StoryId: story, Items: args[1:]})
	if err != nil {
		return "", err
	}
	return display.Wrap(res.Message), nil
}

// help revives a player, or lists commands when no player is named.
func (cs *commandSet) help(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "Commands:\n  " + strings.Join(cs.ordered, "\n  "), nil
	}

	user, story := cs.ids()
	res, err := cs.h.Help(ctx, commands.HelpRequest{PlayerId: user, TargetId: strings.ToLower(args[0]), StoryId: story})
	if err != nil {
		return "", err
	}
	return display.Wrap(res.Message), nil
}

func (cs *commandSet) solve(ctx context.Context, args []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.SolveChallenge(ctx, commands.SolveRequest{
		UserId:      user,
		StoryId:     story,
		ChallengeId: args[0],
		Solution:    strings.Join(args[1:], " "),
	})
	if err != nil {
		return "", err
	}

	out := display.Wrap(res.Message)
	if !res.Success && res.Challenge != nil && len(res.Challenge.Hints) > 0 {
		hints, err := display.Render("challenge", res.Challenge)
		if err != nil {
			return "", err
		}
		out += "\n" + hints
	}
	return withMail(out, res.Messages)
}

func (cs *commandSet) say(ctx context.Context, args []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.SendMessage(ctx, commands.SendRequest{UserId: user, StoryId: story, Message: strings.Join(args, " ")})
	if err != nil {
		return "", err
	}
	if res.Delivered == 0 {
		return "Nobody is listening.", nil
	}
	return fmt.Sprintf("Your message reached %d %s.", res.Delivered, plural(res.Delivered, "player", "players")), nil
}

func (cs *commandSet) mail(ctx context.Context, _ []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.Poll(ctx, commands.MailboxRequest{UserId: user, StoryId: story})
	if err != nil {
		return "", err
	}
	if len(res.Messages) == 0 {
		return "You have no messages.", nil
	}
	return display.Render("messages", res.Messages)
}

func (cs *commandSet) peek(ctx context.Context, _ []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.Peek(ctx, commands.MailboxRequest{UserId: user, StoryId: story})
	if err != nil {
		return "", err
	}
	if len(res.Messages) == 0 {
		return "", nil
	}
	return fmt.Sprintf("You have %d unread %s.", len(res.Messages), plural(len(res.Messages), "message", "messages")), nil
}

func (cs *commandSet) events(ctx context.Context, _ []string) (string, error) {
	_, story := cs.ids()
	res, err := cs.h.RecentEvents(ctx, commands.EventsRequest{StoryId: story})
	if err != nil {
		return "", err
	}
	return display.Render("events", res)
}

func (cs *commandSet) status(ctx context.Context, _ []string) (string, error) {
	user, story := cs.ids()
	res, err := cs.h.Status(ctx, commands.LookRequest{UserId: user, StoryId: story})
	if err != nil {
		return "", err
	}
	return display.Render("status", res)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
