package messages

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/models"
)

const timeFormat = "Jan 2 15:04"

// MessagesCmd shows the stored conversations. Sending is not supported.
type MessagesCmd struct {
	All bool `help:"Show every conversation instead of only the first." short:"a"`
}

func (c *MessagesCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	convs, err := ctx.Store.GetAllConversations()
	if err != nil {
		return fmt.Errorf("failed to load conversations: %w", err)
	}

	if len(convs) == 0 {
		fmt.Println("No messages yet. Your inbox is empty.")
		return nil
	}
	if !c.All {
		convs = convs[:1]
	}

	for i, conv := range convs {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(FormatConversation(conv, loc))
	}
	return nil
}

// FormatConversation renders a thread with the participant as a header and
// one line per message. The user's own messages are indented.
func FormatConversation(conv models.Conversation, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💬 %s\n", conv.ParticipantName)
	if len(conv.Messages) == 0 {
		b.WriteString("  (no messages)\n")
		return b.String()
	}
	for _, m := range conv.Messages {
		indent := "  "
		if m.FromYou() {
			indent = "      "
		}
		fmt.Fprintf(&b, "%s[%s] %s: %s\n", indent, m.SentAt.In(loc).Format(timeFormat), m.Sender, m.Text)
	}
	return b.String()
}
