package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/dmitrijs2005/blogclient/internal/client/services"
	"github.com/olekukonko/tablewriter"
)

var errUsage = errors.New("usage")

const excerptLen = 60

// Home lists posts. The first argument is taken as a sort key when it is
// one; everything else is the title search.
func (a *App) Home(ctx context.Context, args []string) error {
	key := services.SortNewest
	if len(args) > 0 {
		if k, err := services.ParseSortKey(args[0]); err == nil {
			key = k
			args = args[1:]
		}
	}
	search := strings.Join(args, " ")

	posts, err := a.posts.Home(ctx, key, search)
	if err != nil {
		return err
	}
	a.renderPosts(posts)
	return nil
}

func (a *App) renderPosts(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts.")
		return
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"ID", "Title", "Author", "Created", "Body"})
	table.SetAutoWrapText(false)
	for _, p := range posts {
		table.Append([]string{
			strconv.Itoa(p.ID),
			p.Title,
			p.Author.Username,
			formatDate(p.CreatedAt(), p.DateCreated),
			excerpt(p.Body, excerptLen),
		})
	}
	table.Render()
}

// NewPost collects a title and body and publishes the post.
func (a *App) NewPost(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Body", a.out)
	if err != nil {
		return err
	}

	_, err = a.posts.Create(ctx, models.PostForm{Title: title, Body: body})
	return err
}

// EditPost loads one of the user's posts and saves the edited version. Empty
// input keeps the current value.
func (a *App) EditPost(ctx context.Context, args []string) error {
	id, err := parseID(args, "editpost")
	if err != nil {
		return err
	}

	post, err := a.posts.LoadForEdit(ctx, id)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", post.Title), a.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Current body:\n%s\n", post.Body)
	body, err := getMultiline(a.reader, "New body (empty keeps current)", a.out)
	if err != nil {
		return err
	}

	form := models.PostForm{Title: post.Title, Body: post.Body}
	if title != "" {
		form.Title = title
	}
	if body != "" {
		form.Body = body
	}

	_, err = a.posts.Update(ctx, id, form)
	return err
}

// DeletePost asks for confirmation and deletes one of the user's posts.
func (a *App) DeletePost(ctx context.Context, args []string) error {
	id, err := parseID(args, "deletepost")
	if err != nil {
		return err
	}

	post, err := a.posts.LoadForEdit(ctx, id)
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Are you sure you want to delete %s? This action cannot be undone.", post.Title), a.out)
	if err != nil || !ok {
		return err
	}

	_, err = a.posts.Delete(ctx, id)
	return err
}

func parseID(args []string, cmd string) (int, error) {
	if len(args) != 1 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return 0, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return 0, fmt.Errorf("%w: %w", errUsage, err)
	}
	return id, nil
}

func formatDate(t time.Time, raw string) string {
	if t.IsZero() {
		return raw
	}
	return t.Local().Format("2006-01-02 15:04")
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
