package cmd

import (
	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
)

// FeedbackSubmittedMessage is printed after feedback is accepted.
const FeedbackSubmittedMessage = "Thank you for your feedback!"

func newFeedbackCommand(app *App) *cobra.Command {
	feedbackCmd := &cobra.Command{
		Use:   "feedback",
		Short: "Rate the service (customer)",
	}

	var f forms.Feedback
	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a rating and comments",
		Long: `Submit feedback with a rating from 1 to 5.

Examples:
  staffdesk feedback submit --rating 5 --comments "Great service"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Validate(); err != nil {
				return err
			}
			if _, err := app.Client.SubmitFeedback(app.ctx(cmd), f.Payload(), app.Session.UserID()); err != nil {
				return err
			}
			app.say(cmd, FeedbackSubmittedMessage)
			return nil
		},
	}
	submitCmd.Flags().IntVar(&f.Rating, "rating", 0, "rating from 1 to 5")
	submitCmd.Flags().StringVar(&f.Comments, "comments", "", "comments")
	withView(submitCmd, router.ViewFeedback)

	feedbackCmd.AddCommand(submitCmd)
	return feedbackCmd
}
