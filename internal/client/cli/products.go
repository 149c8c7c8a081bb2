package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/stockkeeper/internal/client/client"
	"github.com/dmitrijs2005/stockkeeper/internal/client/flows"
	"github.com/dmitrijs2005/stockkeeper/internal/client/listing"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

// clearValue entered at a field prompt empties the field.
const clearValue = "-"

var errCancelled = errors.New("cancelled")

// afterFetch renders the list unless the result was superseded or the
// session ended meanwhile.
func (a *App) afterFetch(err error) error {
	if errors.Is(err, listing.ErrSuperseded) {
		return err
	}
	if a.isLoggedIn() {
		a.renderList()
	}
	return err
}

func (a *App) renderList() {
	renderProducts(a.out, a.list.Snapshot())
}

func (a *App) List(_ context.Context) error {
	a.renderList()
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	return a.afterFetch(a.list.Refresh(ctx))
}

func (a *App) Search(ctx context.Context, term string) error {
	return a.afterFetch(a.list.SetSearch(ctx, term))
}

func (a *App) Filter(ctx context.Context, category string) error {
	return a.afterFetch(a.list.SetFilter(ctx, category))
}

func (a *App) ClearFilters(ctx context.Context) error {
	return a.afterFetch(a.list.ClearFilters(ctx))
}

func (a *App) NextPage(ctx context.Context) error {
	err := a.list.NextPage(ctx)
	if errors.Is(err, listing.ErrPageOutOfRange) {
		fmt.Fprintln(a.out, "Already on the last page")
		return err
	}
	return a.afterFetch(err)
}

func (a *App) PrevPage(ctx context.Context) error {
	err := a.list.PrevPage(ctx)
	if errors.Is(err, listing.ErrPageOutOfRange) {
		fmt.Fprintln(a.out, "Already on the first page")
		return err
	}
	return a.afterFetch(err)
}

func (a *App) Page(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		fmt.Fprintln(a.out, "Usage: page <number>")
		return err
	}
	if err := a.list.SetPage(ctx, n); err != nil {
		if errors.Is(err, listing.ErrPageOutOfRange) {
			p := a.list.Snapshot().Pagination
			fmt.Fprintf(a.out, "No such page: %d of %d\n", n, max(p.Pages, 1))
			return err
		}
		return a.afterFetch(err)
	}
	return a.afterFetch(nil)
}

// Categories reloads the category list from the server.
func (a *App) Categories(ctx context.Context) error {
	gen := a.generation()
	cats, err := a.api.Categories(ctx)
	if err != nil {
		if client.Classify(err) != client.KindAuthorization {
			a.log.Warn(ctx, "load categories", "error", err)
			fmt.Fprintln(a.out, "Error loading categories")
		}
		return err
	}
	if !a.setCategories(gen, cats) {
		return nil
	}
	renderCategories(a.out, cats, a.list.Snapshot().Query.Category)
	return nil
}

// resolveProduct finds a product by row number on the current page, then by
// id on the current page, then asks the server.
func (a *App) resolveProduct(ctx context.Context, ref string) (models.Product, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		var err error
		if ref, err = getSimpleText(a.reader, "Enter row number or product id", a.out); err != nil {
			return models.Product{}, err
		}
		if ref == "" {
			return models.Product{}, errCancelled
		}
	}

	products := a.list.Snapshot().Products
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(products) {
		return products[n-1], nil
	}
	for _, p := range products {
		if p.ID == ref {
			return p, nil
		}
	}

	p, err := a.api.GetProduct(ctx, ref)
	if err != nil {
		switch client.Classify(err) {
		case client.KindAuthorization:
		case client.KindNetwork:
			fmt.Fprintln(a.out, flows.MsgNetwork)
		default:
			fmt.Fprintln(a.out, "Product not found:", ref)
		}
		return models.Product{}, err
	}
	return p, nil
}

// promptForm asks for every field in order. An empty answer keeps the
// current value.
func (a *App) promptForm(current flows.Form, set func(field, value string) error) error {
	for _, field := range models.Fields {
		prompt := fieldLabel(field)
		if field == models.FieldName {
			prompt += " *"
		}
		if cur := current[field]; cur != "" {
			prompt += fmt.Sprintf(" [%s]", cur)
		}

		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		switch v {
		case "":
			continue
		case clearValue:
			v = ""
		}
		if err := set(field, v); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) retry(question string) bool {
	ok, err := getConfirmation(a.reader, question, a.out)
	return err == nil && ok
}

// Add walks the user through the add form until it is saved or abandoned.
func (a *App) Add(ctx context.Context) error {
	a.add.Open()
	defer a.add.Close()

	fmt.Fprintln(a.out, "Add new product (empty keeps the value, '-' clears it)")
	for {
		if err := a.promptForm(a.add.Form(), a.add.Set); err != nil {
			return err
		}

		err := a.add.Submit(ctx)
		if err == nil {
			fmt.Fprintln(a.out, "Product added")
			a.renderList()
			return nil
		}
		if client.Classify(err) == client.KindAuthorization {
			return err
		}

		renderFormErrors(a.out, a.add.Errors())
		if !a.retry("Try again?") {
			fmt.Fprintln(a.out, "Cancelled")
			return err
		}
	}
}

// Edit edits one product in place. Nothing is sent until the user confirms.
func (a *App) Edit(ctx context.Context, ref string) error {
	p, err := a.resolveProduct(ctx, ref)
	if err != nil {
		return err
	}

	a.edit.Begin(p)
	defer a.edit.Cancel()

	fmt.Fprintf(a.out, "Editing %q (empty keeps the value, '-' clears it)\n", p.Name)
	for {
		if err := a.promptForm(a.edit.Draft(), a.edit.Set); err != nil {
			return err
		}
		if !a.retry("Save changes?") {
			fmt.Fprintln(a.out, "Edit cancelled")
			return nil
		}

		err := a.edit.Save(ctx)
		if err == nil {
			fmt.Fprintln(a.out, "Product updated")
			a.renderList()
			return nil
		}
		if client.Classify(err) == client.KindAuthorization {
			return err
		}

		renderFormErrors(a.out, a.edit.Errors())
		if !a.retry("Keep editing?") {
			fmt.Fprintln(a.out, "Edit cancelled")
			return err
		}
	}
}

// Delete asks for confirmation before removing a product.
func (a *App) Delete(ctx context.Context, ref string) error {
	p, err := a.resolveProduct(ctx, ref)
	if err != nil {
		return err
	}

	a.del.Request(p)
	question := fmt.Sprintf("Delete %q? This action cannot be undone.", p.Name)
	if !a.retry(question) {
		a.del.Cancel()
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	for {
		err := a.del.Confirm(ctx)
		if err == nil {
			break
		}
		msg := a.del.Err()
		if msg == "" {
			a.del.Cancel()
			return err
		}
		fmt.Fprintln(a.out, msg)
		if !a.retry("Try again?") {
			a.del.Cancel()
			return err
		}
	}

	fmt.Fprintln(a.out, "Product deleted")
	a.renderList()
	return nil
}

func fieldLabel(field string) string {
	if field == "" {
		return ""
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
