package cli

import (
	"github.com/dmitrijs2005/technotes/internal/client/client"
	"github.com/spf13/cobra"
)

func (a *App) notesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage notes",
	}
	cmd.AddCommand(a.notesListCmd(), a.notesGetCmd(), a.notesCreateCmd(), a.notesUpdateCmd(), a.notesDeleteCmd())
	return cmd
}

func (a *App) notesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes with their owner's username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			notes, err := a.client.ListNotes(ctx)
			if err != nil {
				return err
			}
			return a.printJSON(notes)
		},
	}
}

func (a *App) notesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			n, err := a.client.GetNote(ctx, args[0])
			if err != nil {
				return err
			}
			return a.printJSON(n)
		},
	}
}

// noteText returns text, or prompts for a multi-line body when it is empty.
func (a *App) noteText(text string) (string, error) {
	if text != "" {
		return text, nil
	}
	return GetMultiline(a.reader, "Enter note text", a.out)
}

func (a *App) notesCreateCmd() *cobra.Command {
	var owner, title, text string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Long: `Create a note owned by an existing account. Without --text the body is
read from stdin until an empty line.

Example:
  technotes notes create --user 0b6c... --title "Rotate keys" --text "before friday"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.noteText(text)
			if err != nil {
				return err
			}

			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			msg, err := a.client.CreateNote(ctx, owner, title, body)
			if err != nil {
				return err
			}
			return a.printMessage(msg)
		},
	}

	cmd.Flags().StringVar(&owner, "user", "", "owner account id (required)")
	cmd.Flags().StringVar(&title, "title", "", "note title (required)")
	cmd.Flags().StringVar(&text, "text", "", "note text")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *App) notesUpdateCmd() *cobra.Command {
	var u client.NoteUpdate

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u.ID = args[0]
			body, err := a.noteText(u.Text)
			if err != nil {
				return err
			}
			u.Text = body

			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			msg, err := a.client.UpdateNote(ctx, u)
			if err != nil {
				return err
			}
			return a.printMessage(msg)
		},
	}

	cmd.Flags().StringVar(&u.Owner, "user", "", "owner account id (required)")
	cmd.Flags().StringVar(&u.Title, "title", "", "note title (required)")
	cmd.Flags().StringVar(&u.Text, "text", "", "note text")
	cmd.Flags().BoolVar(&u.Completed, "completed", false, "completion flag (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("completed")
	return cmd
}

func (a *App) notesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			msg, err := a.client.DeleteNote(ctx, args[0])
			if err != nil {
				return err
			}
			return a.printMessage(msg)
		},
	}
}
