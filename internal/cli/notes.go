package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Notes lists the user's notes.
func (a *App) Notes(ctx context.Context) error {
	notes, err := a.svc.Notes.List(ctx, a.session)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		a.println("No notes yet. Use 'note add' to write one.")
		return nil
	}

	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			strconv.FormatInt(n.ID, 10), n.Title, n.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	renderTable(a.out, []string{"ID", "Title", "Updated"}, rows, nil)
	return nil
}

// Note handles "note add", "note show <id>", "note edit <id>" and
// "note rm <id>".
func (a *App) Note(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: note add | show <id> | edit <id> | rm <id>")
		return nil
	}
	sub := strings.ToLower(args[0])

	if sub == "add" {
		title, err := getSimpleText(a.reader, "Title", a.out)
		if err != nil {
			return err
		}
		content, err := GetMultiline(a.reader, "Content", a.out)
		if err != nil {
			return err
		}
		n, err := a.svc.Notes.Create(ctx, a.session, title, content)
		if err != nil {
			return err
		}
		a.printf("Saved note %d.\n", n.ID)
		return nil
	}

	raw, err := a.argOrPrompt(args, 1, "Note ID")
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid note id %q", raw)
	}

	switch sub {
	case "show":
		n, err := a.svc.Notes.Get(ctx, a.session, id)
		if err != nil {
			return err
		}
		a.printf("# %s\n%s\n", n.Title, n.Content)

	case "edit":
		n, err := a.svc.Notes.Get(ctx, a.session, id)
		if err != nil {
			return err
		}
		title, err := getSimpleText(a.reader, fmt.Sprintf("Title (empty keeps %q)", n.Title), a.out)
		if err != nil {
			return err
		}
		if title == "" {
			title = n.Title
		}
		content, err := GetMultiline(a.reader, "Content (empty keeps the current text)", a.out)
		if err != nil {
			return err
		}
		if content == "" {
			content = n.Content
		}
		if _, err := a.svc.Notes.Update(ctx, a.session, id, title, content); err != nil {
			return err
		}
		a.printf("Updated note %d.\n", id)

	case "rm", "delete":
		if err := a.svc.Notes.Delete(ctx, a.session, id); err != nil {
			return err
		}
		a.printf("Deleted note %d.\n", id)

	default:
		a.println("Usage: note add | show <id> | edit <id> | rm <id>")
	}
	return nil
}
