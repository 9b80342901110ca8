package session

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/mudstone/typequest/internal/auth"
)

const maxPasswordTries = 3

// loginFlow walks a new connection through login or registration and returns
// the authenticated username.
type loginFlow struct {
	users *auth.UserRegistry
}

func (f *loginFlow) Run(rw io.ReadWriter, br *bufio.Reader) (string, error) {
	rw.Write([]byte("Welcome to TypeQuest!\n"))

	for {
		username, err := prompt(rw, br, "By what name do you wish to be known? ", withValidator(validName))
		if err != nil {
			return "", err
		}

		if f.users.Exists(username) {
			_, err = prompt(rw, br, "Password: ", withMaxTries(maxPasswordTries), withValidator(
				func(str string) (bool, string) {
					if !f.users.Login(username, str) {
						return false, "Invalid credentials.\n"
					}
					return true, ""
				},
			))
			if err != nil {
				return "", err
			}
			return username, nil
		}

		ok, err := f.register(rw, br, username)
		if err != nil {
			return "", err
		}
		if ok {
			return username, nil
		}
	}
}

func (f *loginFlow) register(rw io.ReadWriter, br *bufio.Reader, username string) (bool, error) {
	ok, err := promptYN(rw, br, "I don't know that name. Create a new adventurer (Y/N)? ")
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	for {
		passOne, err := prompt(rw, br, "Give me a password: ", withValidator(
			func(str string) (bool, string) {
				if len(str) == 0 || strings.EqualFold(str, username) {
					return false, "Illegal password.\n"
				}
				return true, ""
			},
		))
		if err != nil {
			return false, err
		}

		passTwo, err := prompt(rw, br, "Please retype password: ")
		if err != nil {
			return false, err
		}

		if passOne != passTwo {
			rw.Write([]byte("Passwords don't match... start over.\n"))
			continue
		}

		if !f.users.Register(username, passOne) {
			rw.Write([]byte("That name was just taken, please try another.\n"))
			return false, nil
		}
		return true, nil
	}
}

func validName(str string) (bool, string) {
	if len(str) == 0 {
		return false, "Invalid name, please try another.\n"
	}
	for _, r := range str {
		if !unicode.IsLetter(r) {
			return false, "Invalid name, please try another.\n"
		}
	}
	return true, ""
}
