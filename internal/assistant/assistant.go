// Package assistant answers chat messages. The built-in responder matches
// keywords; Delayed adds the latency of a remote assistant so that a real
// backend can later be plugged in behind the same interface.
package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/ecovate/internal/simulate"
)

// Greeting opens every chat session.
const Greeting = "Hello! I'm your ECOVATE AI assistant. How can I help you today?"

// Responder produces a reply to a single user message.
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
}

const (
	replyCO2     = "I can help you with CO₂ monitoring! Our sensors track carbon dioxide levels in real-time. You can view current readings on the dashboard or check historical data in the analytics section."
	replySensor  = "Our sensor network monitors various environmental parameters. You can manage sensors from the Sensors page, view their status, and configure alerts for when they go offline."
	replyAPI     = "You can find your API key in the Settings page under API Configuration. Use it to authenticate requests to our API endpoints for programmatic access to your data."
	replyHelp    = "I'm here to help! You can ask me about CO₂ monitoring, sensor management, API usage, or any other ECOVATE features. What would you like to know?"
	replyDefault = "Thanks for your message! I can help you with CO₂ monitoring, sensor management, API configuration, and general ECOVATE questions. What would you like to know more about?"
)

type rule struct {
	keywords []string
	reply    string
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{keywords: []string{"co2", "carbon"}, reply: replyCO2},
	{keywords: []string{"sensor"}, reply: replySensor},
	{keywords: []string{"api"}, reply: replyAPI},
	{keywords: []string{"help", "support"}, reply: replyHelp},
}

// KeywordResponder replies with canned answers chosen by substring match.
type KeywordResponder struct{}

func (KeywordResponder) Respond(_ context.Context, message string) (string, error) {
	in := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(in, kw) {
				return r.reply, nil
			}
		}
	}
	return replyDefault, nil
}

// Delayed answers through next after a fixed delay. Only one request may be
// pending; an overlapping call fails with common.ErrBusy.
type Delayed struct {
	next  Responder
	delay time.Duration
	gate  simulate.Gate
}

func NewDelayed(next Responder, delay time.Duration) *Delayed {
	return &Delayed{next: next, delay: delay}
}

func (d *Delayed) Respond(ctx context.Context, message string) (string, error) {
	var reply string
	err := d.gate.Run(ctx, d.delay, func() error {
		var err error
		reply, err = d.next.Respond(ctx, message)
		return err
	})
	return reply, err
}
