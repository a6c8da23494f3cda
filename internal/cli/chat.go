package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ecovate/internal/assistant"
)

// Chat talks to the assistant until an empty line or "exit".
func (a *App) Chat(ctx context.Context) error {
	fmt.Fprintln(a.out, "Assistant:", assistant.Greeting)
	for {
		msg, err := getSimpleText(a.reader, "You ('exit' to leave)", a.out)
		if err != nil {
			return err
		}
		if msg == "" || strings.EqualFold(msg, "exit") {
			return nil
		}
		reply, err := a.assistant.Respond(ctx, msg)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Assistant:", reply)
	}
}
