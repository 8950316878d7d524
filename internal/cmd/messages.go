package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/ux"
	"github.com/staffdesk/staffdesk/internal/views"
)

// Messages printed by the message commands.
const (
	MessageSentMessage    = "Message sent successfully!"
	MessageReadMessage    = "Message marked as read."
	MessageDeletedMessage = "Message deleted."
)

func newMessagesCommand(app *App) *cobra.Command {
	msgCmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"msg"},
		Short:   "Send and read messages (customer)",
	}

	var filter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your messages, newest first",
		Long: `List sent and received messages.

Filters:
  all     every message
  unread  received messages not yet read
  sent    messages you sent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := forms.ParseMessageFilter(filter)
			if err != nil {
				return err
			}
			who := app.Session.Snapshot()
			msgs, err := views.LoadMessages(app.ctx(cmd), app.Client, who, f)
			if err != nil {
				return err
			}
			return app.render(cmd, views.Messages(msgs, who.UserID))
		},
	}
	listCmd.Flags().StringVar(&filter, "filter", "all", "all, unread or sent")
	withView(listCmd, router.ViewMessages)

	readCmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "message id")
			if err != nil {
				return err
			}
			if err := app.Client.MarkMessageRead(app.ctx(cmd), id); err != nil {
				return err
			}
			app.say(cmd, MessageReadMessage)
			return nil
		},
	}
	withView(readCmd, router.ViewMessages)

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "message id")
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				if !ux.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete message %d?", id), false) {
					app.say(cmd, "Cancelled.")
					return nil
				}
			}
			if err := app.Client.DeleteMessage(app.ctx(cmd), id); err != nil {
				return err
			}
			app.say(cmd, MessageDeletedMessage)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	withView(deleteCmd, router.ViewMessages)

	msgCmd.AddCommand(listCmd, newMessagesSendCommand(app), readCmd, deleteCmd)
	return msgCmd
}

func newMessagesSendCommand(app *App) *cobra.Command {
	var (
		f  forms.MessageDraft
		to int64
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message to an employee",
		Long: `Send a message. In a terminal the recipient is picked from the employee
list when --to is omitted.

Examples:
  staffdesk messages send --to 2 --subject "Rescheduling" --content "Can we move Friday?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := pickEmployee(app, cmd, session.UserID(to), "send the message to")
			if err != nil {
				return err
			}
			f.RecipientID = id
			if err := f.Validate(); err != nil {
				return err
			}
			msg, err := app.Client.SendMessage(app.ctx(cmd), f.Payload(), app.Session.UserID(), f.RecipientID)
			if err != nil {
				return err
			}
			app.say(cmd, MessageSentMessage)
			return app.render(cmd, views.Messages(oneOrNone(msg), app.Session.UserID()))
		},
	}
	flags := cmd.Flags()
	flags.Int64Var(&to, "to", 0, "recipient user id")
	flags.StringVar(&f.Subject, "subject", "", "subject")
	flags.StringVar(&f.Content, "content", "", "message text")
	return withView(cmd, router.ViewMessageSend)
}
