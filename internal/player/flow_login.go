package player

import (
	"bufio"
	"io"
	"strings"

	"github.com/pixil98/go-quest/internal"
	"github.com/pixil98/go-quest/internal/game"
)

const maxNameTries = 5

// loginFlow asks who the player is and which story they want to join.
type loginFlow struct {
	stories storySelector
}

type storySelector interface {
	Prompt(r *bufio.Reader, w io.Writer, prompt string) (string, error)
}

func (f *loginFlow) Run(r *bufio.Reader, w io.Writer) (userId string, storyId string, err error) {
	_, err = io.WriteString(w, "Welcome to GoQuest!\n")
	if err != nil {
		return "", "", err
	}

	name, err := internal.Prompt(r, w, "By what name do you wish to be known? ",
		internal.WithMaxTries(maxNameTries),
		internal.WithValidator(func(str string) (bool, string) {
			if !game.ValidId(str) {
				return false, "Names may only use letters, digits, '-' and '_'.\n"
			}
			return true, ""
		}),
	)
	if err != nil {
		return "", "", err
	}
	userId = strings.ToLower(name)

	storyId, err = f.stories.Prompt(r, w, "Which story will you join?")
	if err != nil {
		return "", "", err
	}

	return userId, storyId, nil
}
