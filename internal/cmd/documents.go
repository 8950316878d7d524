package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/views"
)

// Messages printed by the document commands.
const (
	DocumentCreatedMessage  = "Document created successfully!"
	DocumentUploadedMessage = "Document uploaded successfully!"
	DocumentUpdatedMessage  = "Document updated successfully!"
)

func newDocumentsCommand(app *App) *cobra.Command {
	docsCmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Employee documents (employee, admin)",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := app.Client.ListDocuments(app.ctx(cmd))
			if err != nil {
				return err
			}
			return app.render(cmd, views.Documents(docs))
		},
	}
	withView(listCmd, router.ViewEmployeeDocuments)

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "document id")
			if err != nil {
				return err
			}
			doc, err := app.Client.GetDocument(app.ctx(cmd), id)
			if err != nil {
				return err
			}
			return app.render(cmd, views.Document(doc))
		},
	}
	withView(showCmd, router.ViewEmployeeDocuments)

	docsCmd.AddCommand(listCmd, showCmd, newDocumentsCreateCommand(app), newDocumentsUpdateCommand(app), newDocumentsUploadCommand(app))
	return docsCmd
}

func newDocumentsCreateCommand(app *App) *cobra.Command {
	var (
		f        forms.Document
		assignee int64
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a document",
		Long: `Create a text document, optionally assigned to an employee.

Examples:
  staffdesk documents create --title "Q1 report" --type REPORT --content "..." --assignee 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.AssigneeID = session.UserID(assignee)
			if err := f.Validate(); err != nil {
				return err
			}
			doc, err := app.Client.CreateDocument(app.ctx(cmd), f.Payload(), app.Session.UserID(), f.AssigneeID)
			if err != nil {
				return err
			}
			app.say(cmd, DocumentCreatedMessage)
			return app.render(cmd, views.Document(doc))
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.Title, "title", "", "document title")
	flags.StringVar(&f.Content, "content", "", "document text")
	flags.StringVar(&f.DocumentType, "type", "", "document type, e.g. REPORT")
	flags.Int64Var(&assignee, "assignee", 0, "employee user id (optional)")
	return withView(cmd, router.ViewEmployeeDocuments)
}

func newDocumentsUploadCommand(app *App) *cobra.Command {
	var docType string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file as a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if docType == "" {
				return errors.NewRequiredFieldError("--type", forms.MsgDocumentType)
			}
			path := args[0]
			file, err := os.Open(path)
			if err != nil {
				if os.IsNotExist(err) {
					return errors.NewFileNotFoundError(path)
				}
				return errors.Wrap(errors.ErrCodeFileReadFailed, "failed to open "+path, err)
			}
			defer file.Close()

			result, err := app.Client.UploadDocument(app.ctx(cmd), file, filepath.Base(path), docType)
			if err != nil {
				return err
			}
			msg := DocumentUploadedMessage
			if result.Message != "" {
				msg = result.Message
			}
			app.say(cmd, msg)
			if result.Document != nil {
				return app.render(cmd, views.Document(result.Document))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&docType, "type", "", "document type, e.g. CONTRACT")
	return withView(cmd, router.ViewEmployeeDocuments)
}

func newDocumentsUpdateCommand(app *App) *cobra.Command {
	var title, content, docType string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a document",
		Long: `Edit the title, content or type of a document. Fields that are not given
keep their values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "document id")
			if err != nil {
				return err
			}
			if title == "" && content == "" && docType == "" {
				return errors.NewRequiredFieldError("--title, --content or --type", "Nothing to update.")
			}
			ctx := app.ctx(cmd)
			doc, err := app.Client.GetDocument(ctx, id)
			if err != nil {
				return err
			}
			if title != "" {
				doc.Title = title
			}
			if content != "" {
				doc.Content = content
			}
			if docType != "" {
				doc.DocumentType = docType
			}
			updated, err := app.Client.UpdateDocument(ctx, *doc)
			if err != nil {
				return err
			}
			app.say(cmd, DocumentUpdatedMessage)
			return app.render(cmd, views.Document(updated))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new text")
	cmd.Flags().StringVar(&docType, "type", "", "new document type")
	return withView(cmd, router.ViewEmployeeDocuments)
}
