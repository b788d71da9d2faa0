package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kakeibo/internal/chores"
	"kakeibo/internal/config"
	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
	"kakeibo/internal/shopping"
	"kakeibo/internal/store"
)

const usage = `Commands:
expense <payer> <category> <amount>
chore <person> <type>
buy <item>
bought <item>
list`

// router maps incoming text commands onto repository writes. Messages that
// do not look like commands are ignored so ordinary chat stays untouched.
type router struct {
	ledger    *ledger.Repository
	chores    *chores.Repository
	shopping  *shopping.List
	household core.Household
	logger    *log.Logger
	now       func() time.Time
}

func newRouter(st store.Tabular, cfg *config.Config, logger *log.Logger) *router {
	return &router{
		ledger: ledger.NewRepository(st, ledger.Tables{
			VariableCosts: cfg.VariableCostsTable,
			FixedCosts:    cfg.FixedCostsTable,
			Summary:       cfg.SummaryTable,
		}),
		chores: chores.NewRepository(st, chores.Tables{
			Chores: cfg.ChoresTable,
			Rates:  cfg.ChoreRatesTable,
		}, cfg.Household(), cfg.RateHeaderDelimiter),
		shopping:  shopping.NewList(st, cfg.ShoppingTable),
		household: cfg.Household(),
		logger:    logger.WithComponent(log.ComponentWebhook),
		now:       time.Now,
	}
}

// Handle parses one message and returns the reply text. An empty reply
// means the message was not a command and should be left alone.
func (rt *router) Handle(ctx context.Context, text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return ""
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	var (
		reply string
		err   error
	)
	switch verb {
	case "expense":
		reply, err = rt.recordExpense(ctx, args)
	case "chore":
		reply, err = rt.recordChore(ctx, args)
	case "buy":
		reply, err = rt.addItem(ctx, args)
	case "bought":
		reply, err = rt.removeItem(ctx, args)
	case "list":
		reply, err = rt.listItems(ctx)
	case "help":
		return usage
	default:
		return ""
	}
	if err != nil {
		rt.logger.ErrorContext(ctx, "Command failed", log.FieldError, err, "command", verb)
		return fmt.Sprintf("Could not %s: %v", verb, err)
	}
	return reply
}

func (rt *router) recordExpense(ctx context.Context, args []string) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("usage: expense <payer> <category> <amount>")
	}
	payer := core.PersonID(args[0])
	if !rt.household.IsMember(payer) {
		return "", fmt.Errorf("unknown payer %q", payer)
	}
	category := core.Category(args[1])
	if !core.KnownCategory(category) {
		return "", fmt.Errorf("unknown category %q", category)
	}
	amount, err := core.ParseAmount(args[2])
	if err != nil {
		return "", err
	}
	now := rt.now()
	entry := core.CostEntry{
		Payer:    payer,
		Year:     now.Year(),
		Month:    int(now.Month()),
		Category: category,
		Amount:   amount,
	}
	if err := rt.ledger.AppendVariableCost(ctx, entry); err != nil {
		return "", err
	}
	return fmt.Sprintf("Recorded %s yen of %s paid by %s", amount, category, payer), nil
}

func (rt *router) recordChore(ctx context.Context, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("usage: chore <person> <type>")
	}
	person := core.PersonID(args[0])
	if !rt.household.IsMember(person) {
		return "", fmt.Errorf("unknown person %q", person)
	}
	now := rt.now()
	rec := core.ChoreRecord{
		Person:     person,
		ChoreType:  args[1],
		Date:       now,
		ReportedAt: now,
	}
	if err := rt.chores.AppendChore(ctx, rec); err != nil {
		return "", err
	}
	return fmt.Sprintf("Logged %s for %s", rec.ChoreType, person), nil
}

func (rt *router) addItem(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: buy <item>")
	}
	name := strings.Join(args, " ")
	if err := rt.shopping.Add(ctx, name, rt.now()); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added %s to the shopping list", name), nil
}

func (rt *router) removeItem(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: bought <item>")
	}
	name := strings.Join(args, " ")
	if err := rt.shopping.Remove(ctx, name); err != nil {
		return "", err
	}
	return fmt.Sprintf("Checked %s off the shopping list", name), nil
}

func (rt *router) listItems(ctx context.Context) (string, error) {
	items, err := rt.shopping.Items(ctx)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "The shopping list is empty", nil
	}
	var b strings.Builder
	b.WriteString("Shopping list:")
	for _, it := range items {
		b.WriteString("\n- ")
		b.WriteString(it.Name)
	}
	return b.String(), nil
}
