package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func withValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func withMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

func prompt(rw io.ReadWriter, br *bufio.Reader, text string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		if _, err := rw.Write([]byte(text)); err != nil {
			return "", err
		}

		line, err := br.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)

		if config.validator != nil {
			ok, msg := config.validator(line)
			if !ok {
				if msg != "" {
					rw.Write([]byte(msg))
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					rw.Write([]byte("Too many tries.\n"))
					return "", fmt.Errorf("too many tries")
				}
				continue
			}
		}

		return line, nil
	}
}

func promptYN(rw io.ReadWriter, br *bufio.Reader, text string) (bool, error) {
	str, err := prompt(rw, br, text, withValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "Enter 'yes' or 'no'.\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
