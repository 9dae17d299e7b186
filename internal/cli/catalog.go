package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/features/products"
)

// RunCatalog prints active products grouped under their categories.
func (c *Cli) RunCatalog(ctx context.Context, args []string) error {
	active := true
	cats, err := c.categories.List(ctx, &active)
	if err != nil {
		return err
	}
	list, err := c.products.List(ctx, products.Filters{IsActive: &active, Query: strings.Join(args, " ")})
	if err != nil {
		return err
	}

	byCategory := make(map[int64][]domain.Product)
	var uncategorized []domain.Product
	for _, p := range list {
		if p.CategoryID == nil {
			uncategorized = append(uncategorized, p)
			continue
		}
		byCategory[*p.CategoryID] = append(byCategory[*p.CategoryID], p)
	}

	for _, cat := range cats {
		items := byCategory[cat.ID]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintln(c.out, cat.Name)
		for _, p := range items {
			fmt.Fprintf(c.out, "  %-4d %-24s %8.2f\n", p.ID, p.Name, p.Price)
		}
	}
	if len(uncategorized) > 0 {
		fmt.Fprintln(c.out, "Sin categoría")
		for _, p := range uncategorized {
			fmt.Fprintf(c.out, "  %-4d %-24s %8.2f\n", p.ID, p.Name, p.Price)
		}
	}
	return nil
}

// RunProduct prints one product with the options of its modifier groups.
func (c *Cli) RunProduct(ctx context.Context, args []string) error {
	id, err := parseID(args, "product id")
	if err != nil {
		return err
	}
	p, err := c.products.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := present(p); err != nil {
		return err
	}
	state := "active"
	if !p.IsActive {
		state = "inactive"
	}
	fmt.Fprintf(c.out, "%d %s %.2f (%s)\n", p.ID, p.Name, p.Price, state)

	links, err := c.links.List(ctx, id)
	if err != nil {
		return err
	}
	for _, link := range links {
		group, err := c.modifiers.GetGroup(ctx, link.GroupID)
		if err != nil {
			return err
		}
		if err := present(group); err != nil {
			return err
		}
		rule := fmt.Sprintf("%d-%d", group.MinSelect, group.MaxSelect)
		if group.Required {
			rule += " required"
		}
		fmt.Fprintf(c.out, "  %s [%s]\n", group.Name, rule)
		for _, opt := range group.Options {
			if !opt.IsActive {
				continue
			}
			fmt.Fprintf(c.out, "    %-20s %+.2f\n", opt.Name, opt.PriceDelta)
		}
	}
	return nil
}

func (c *Cli) RunTables(ctx context.Context, args []string) error {
	var status domain.TableStatus
	if len(args) > 0 {
		status = domain.TableStatus(strings.ToUpper(args[0]))
	}
	list, err := c.tables.List(ctx, status)
	if err != nil {
		return err
	}
	for _, t := range list {
		fmt.Fprintf(c.out, "%-4d %-16s %s\n", t.ID, t.Name, t.Status)
	}
	return nil
}
