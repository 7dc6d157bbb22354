package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NewSubscriber representa los datos ya validados de un alta.
type NewSubscriber struct {
	Email SubscriberEmail
	Name  SubscriberName
}

type SubscriberName string

type SubscriberEmail string

const maxFieldLength = 256

var forbiddenNameChars = []rune{'/', '(', ')', '"', '<', '>', '\\', '{', '}'}

// ParseSubscriberName valida el nombre de un suscriptor.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("subscriber name is empty")
	}
	if utf8.RuneCountInString(raw) > maxFieldLength {
		return "", fmt.Errorf("subscriber name is too long")
	}
	for _, r := range raw {
		for _, forbidden := range forbiddenNameChars {
			if r == forbidden {
				return "", fmt.Errorf("subscriber name contains forbidden character %q", r)
			}
		}
	}
	return SubscriberName(raw), nil
}

// ParseSubscriberEmail valida la direccion de correo de un suscriptor.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("subscriber email is empty")
	}
	if utf8.RuneCountInString(raw) > maxFieldLength {
		return "", fmt.Errorf("subscriber email is too long")
	}
	for _, r := range raw {
		if unicode.IsSpace(r) {
			return "", fmt.Errorf("subscriber email contains whitespace")
		}
	}
	at := strings.Index(raw, "@")
	if at <= 0 || at == len(raw)-1 {
		return "", fmt.Errorf("subscriber email is malformed")
	}
	return SubscriberEmail(raw), nil
}

func (n SubscriberName) String() string  { return string(n) }
func (e SubscriberEmail) String() string { return string(e) }
