package service

import (
	"strings"
)

const greetingReply = "Hi 👋 I'm your AI Stock Screener. Try \"top 5 expensive stocks\" or \"infy over the last 4 quarters\"."

var greetings = map[string]struct{}{
	"hi":    {},
	"hello": {},
	"hey":   {},
	"hii":   {},
	"hlo":   {},
}

// SmallTalkService answers greetings before the query reaches the screener.
type SmallTalkService interface {
	// Reply returns the canned answer for query, if it is small talk.
	Reply(query string) (string, bool)
	// Greeting is the answer used when query understanding flags a query as small talk.
	Greeting() string
}

type smallTalkService struct{}

// NewSmallTalkService creates a new small talk service.
func NewSmallTalkService() SmallTalkService {
	return smallTalkService{}
}

func (smallTalkService) Reply(query string) (string, bool) {
	if _, ok := greetings[strings.ToLower(strings.TrimSpace(query))]; ok {
		return greetingReply, true
	}
	return "", false
}

func (smallTalkService) Greeting() string {
	return greetingReply
}
