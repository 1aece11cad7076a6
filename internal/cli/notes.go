package cli

import (
	"fmt"
	"text/tabwriter"

	"notestack-be/pkg/client"

	"github.com/spf13/cobra"
)

func newNotesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List and edit notes",
	}
	cmd.AddCommand(
		newNotesListCommand(a),
		newNotesAddCommand(a),
		newNotesEditCommand(a),
		newNotesRemoveCommand(a),
	)
	return cmd
}

func newNotesListCommand(a *app) *cobra.Command {
	var filter client.NoteFilter
	var sortBy string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}

			switch sortBy {
			case "date":
				filter.Sort = client.SortByDate
			case "title":
				filter.Sort = client.SortByTitle
			default:
				return fmt.Errorf("unknown sort %q, use date or title", sortBy)
			}

			state := client.NewNotesState(c)
			if err := state.Fetch(cmd.Context(), ""); err != nil {
				return err
			}
			state.SetFilter(filter)

			notes := state.Filtered()
			if len(notes) == 0 {
				a.warn("No notes found")
				return nil
			}
			printNotes(a, notes)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Search, "search", "", "match title, content or tag")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "only notes with this tag")
	cmd.Flags().StringVar(&filter.NotebookId, "notebook", "", "only notes in this notebook")
	cmd.Flags().StringVar(&sortBy, "sort", "date", "date or title")
	return cmd
}

func printNotes(a *app, notes []client.Note) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTAG\tNOTEBOOK\tDATE")
	for _, n := range notes {
		notebook := ""
		if n.Notebook != nil {
			notebook = n.Notebook.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", n.Id, n.Title, n.Tag, notebook, n.Date.Local().Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
}

func newNotesAddCommand(a *app) *cobra.Command {
	var in client.NoteInput
	var content string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}
			in.Title = args[0]
			if cmd.Flags().Changed("content") {
				in.Content = &content
			}
			note, err := c.CreateNote(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.success("Created %s in %s", note.Id, notebookName(note))
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "note body")
	cmd.Flags().StringVar(&in.Tag, "tag", "", "tag (default General)")
	cmd.Flags().StringVar(&in.NotebookId, "notebook", "", "notebook id (default notebook when empty)")
	return cmd
}

func newNotesEditCommand(a *app) *cobra.Command {
	var in client.NoteInput
	var content string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note; only the given fields are updated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("content") {
				in.Content = &content
			}
			note, err := c.UpdateNote(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			a.success("Updated %q", note.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new body, may be empty")
	cmd.Flags().StringVar(&in.Tag, "tag", "", "new tag")
	cmd.Flags().StringVar(&in.NotebookId, "notebook", "", "move to this notebook")
	return cmd
}

func newNotesRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.requireLogin()
			if err != nil {
				return err
			}
			if err := c.DeleteNote(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.success("Note has been deleted successfully")
			return nil
		},
	}
}

func notebookName(n *client.Note) string {
	if n.Notebook == nil {
		return "your default notebook"
	}
	return n.Notebook.Name
}
