// Package bot turns chat commands into inventory service calls. The
// Dispatcher is transport-free; telegram.go connects it to Telegram.
package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/Ryladain/Inventory-files/internal/catalog"
	"github.com/Ryladain/Inventory-files/internal/inventory"
	"github.com/Ryladain/Inventory-files/internal/loot"
	"github.com/Ryladain/Inventory-files/internal/models"
	"github.com/Ryladain/Inventory-files/internal/roster"
	"github.com/Ryladain/Inventory-files/internal/storage"
)

// Callback payloads of the confirmation buttons.
const (
	CallbackConfirmYes = "confirm_yes"
	CallbackConfirmNo  = "confirm_no"
)

// Parse modes understood by the transport.
const (
	ModePlain = ""
	ModeHTML  = "HTML"
)

const (
	messageLimit     = 3900
	buttonLabelWidth = 32
)

// Button is an inline keyboard button.
type Button struct {
	Label string
	Data  string
}

// Reply is one outgoing chat message.
type Reply struct {
	Text      string
	ParseMode string
	Buttons   []Button
}

type pendingAdd struct {
	target     int64
	suggestion models.Suggestion
}

// Dispatcher routes chat input to the inventory service. It keeps the game
// master's selected player and the pending add confirmations in memory.
type Dispatcher struct {
	svc *inventory.Service

	mu      sync.Mutex
	targets map[int64]int64
	pending map[int64]pendingAdd
}

// NewDispatcher returns a dispatcher for svc.
func NewDispatcher(svc *inventory.Service) *Dispatcher {
	return &Dispatcher{
		svc:     svc,
		targets: make(map[int64]int64),
		pending: make(map[int64]pendingAdd),
	}
}

// HandleText answers a text message sent by userID in chatID.
func (d *Dispatcher) HandleText(ctx context.Context, chatID, userID int64, text string) []Reply {
	cmd, args := splitCommand(text)
	switch cmd {
	case "start", "help":
		return plain(d.help(userID))
	case "categories":
		return plain(inventory.FormatCategories())
	case "inventory":
		return d.inventory(ctx, userID)
	case "add":
		return d.add(ctx, chatID, userID, args)
	case "remove":
		return d.remove(ctx, userID, args)
	case "simulate":
		return d.simulate(ctx, userID, args)
	case "player":
		return d.player(userID, args)
	case "item":
		return d.item(ctx, userID, args)
	case "":
		return plain("Send a command, e.g. /inventory. /help lists them all.")
	default:
		return plain("Unknown command /" + cmd + ". Try /help.")
	}
}

// HandleCallback answers an inline button press.
func (d *Dispatcher) HandleCallback(ctx context.Context, chatID, userID int64, data string) []Reply {
	if data != CallbackConfirmYes && data != CallbackConfirmNo {
		return plain("This button has expired.")
	}

	d.mu.Lock()
	p, ok := d.pending[chatID]
	delete(d.pending, chatID)
	d.mu.Unlock()
	if !ok {
		return plain("Nothing is waiting for confirmation.")
	}

	s := p.suggestion
	entry, err := d.svc.Confirm(ctx, userID, p.target, models.ConfirmRequest{
		Category: string(s.Category),
		Name:     s.Name,
		Raw:      s.Raw,
		Accept:   data == CallbackConfirmYes,
	})
	if err != nil {
		return plain(errorText(err))
	}
	return plain(fmt.Sprintf("✅ Added to %s: %s", s.Category, entry.Name))
}

// Target returns the inventory userID's commands act on.
func (d *Dispatcher) Target(userID int64) int64 {
	if d.svc.Roster().Role(userID) != roster.Master {
		return userID
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.targets[userID]
}

func (d *Dispatcher) help(userID int64) string {
	r := d.svc.Roster()
	var b strings.Builder
	b.WriteString("🎒 Party inventory\n\n")
	b.WriteString("/categories lists the categories\n")
	b.WriteString("/inventory shows the inventory\n")
	b.WriteString("/add <category> | <name>[: description]\n")
	b.WriteString("/remove <category> <n>\n")
	b.WriteString("/item <category> <n> shows an item card\n")
	fmt.Fprintf(&b, "/simulate <days> runs 1..%d days of loss and finds\n", d.svc.MaxSimulationDays())
	switch r.Role(userID) {
	case roster.Master:
		b.WriteString("/player <name> selects whose inventory you manage\n")
	case roster.Guest:
		b.WriteString("\nYou are not on the roster: only /categories is available.")
	}
	return b.String()
}

func (d *Dispatcher) inventory(ctx context.Context, userID int64) []Reply {
	inv, err := d.svc.Get(ctx, userID, d.Target(userID))
	if err != nil {
		return plain(errorText(err))
	}
	text := inventory.FormatInventory(inv, d.svc.Catalog())
	var out []Reply
	for _, part := range inventory.Chunk(text, messageLimit) {
		out = append(out, Reply{Text: part, ParseMode: ModeHTML})
	}
	return out
}

func (d *Dispatcher) add(ctx context.Context, chatID, userID int64, args string) []Reply {
	label, raw, ok := strings.Cut(args, "|")
	if !ok || strings.TrimSpace(label) == "" || strings.TrimSpace(raw) == "" {
		return plain("Usage: /add <category> | <name>[: description]")
	}
	target := d.Target(userID)
	res, err := d.svc.Add(ctx, userID, target, strings.TrimSpace(label), raw)
	if err != nil {
		return plain(errorText(err))
	}
	if res.Added != nil {
		return plain(fmt.Sprintf("✅ Added to %s: %s", res.Category, res.Added.Name))
	}

	s := *res.Suggestion
	d.mu.Lock()
	d.pending[chatID] = pendingAdd{target: target, suggestion: s}
	d.mu.Unlock()

	text := fmt.Sprintf("🔎 Did you mean <b>%s</b>? (match %d%%)\n<i>%s</i>",
		html.EscapeString(s.Name), s.Score, html.EscapeString(s.Description))
	return []Reply{{
		Text:      text,
		ParseMode: ModeHTML,
		Buttons: []Button{
			{Label: buttonLabel("✅ Yes, " + s.Name), Data: CallbackConfirmYes},
			{Label: buttonLabel("✍️ No, keep " + strings.TrimSpace(s.Raw)), Data: CallbackConfirmNo},
		},
	}}
}

func (d *Dispatcher) remove(ctx context.Context, userID int64, args string) []Reply {
	label, n, ok := splitIndexed(args)
	if !ok {
		return plain("Usage: /remove <category> <n>")
	}
	removed, err := d.svc.Remove(ctx, userID, d.Target(userID), label, n-1)
	if err != nil {
		return plain(errorText(err))
	}
	return plain("🗑 Removed: " + removed.Name)
}

func (d *Dispatcher) item(ctx context.Context, userID int64, args string) []Reply {
	label, n, ok := splitIndexed(args)
	if !ok {
		return plain("Usage: /item <category> <n>")
	}
	it, err := d.svc.Item(ctx, userID, d.Target(userID), label, n-1)
	if err != nil {
		return plain(errorText(err))
	}
	return []Reply{{Text: catalog.RenderCard(it), ParseMode: ModeHTML}}
}

func (d *Dispatcher) simulate(ctx context.Context, userID int64, args string) []Reply {
	days, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return plain("Usage: /simulate <days>")
	}
	report, err := d.svc.Simulate(ctx, userID, d.Target(userID), days)
	if err != nil {
		return plain(errorText(err))
	}
	var out []Reply
	for _, part := range inventory.Chunk(inventory.FormatReport(report), messageLimit) {
		out = append(out, Reply{Text: part})
	}
	return append(out, Reply{Text: "🏁 Simulation complete."})
}

func (d *Dispatcher) player(userID int64, args string) []Reply {
	r := d.svc.Roster()
	if r.Role(userID) != roster.Master {
		return plain("Only the game master can switch players.")
	}
	name := strings.TrimSpace(args)
	if name == "" {
		var b strings.Builder
		b.WriteString("Players:")
		for _, m := range r.Players() {
			b.WriteString("\n• " + m.Name)
		}
		return plain(b.String())
	}
	id, err := r.PlayerID(name)
	if err != nil {
		return plain(errorText(err))
	}
	d.mu.Lock()
	d.targets[userID] = id
	d.mu.Unlock()
	return plain("🎯 Now managing " + name + "'s inventory.")
}

func plain(text string) []Reply {
	return []Reply{{Text: text}}
}

// splitCommand returns the command without its slash or @bot suffix, and
// the rest of the text.
func splitCommand(text string) (cmd, args string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	head, rest, _ := strings.Cut(text[1:], " ")
	head, _, _ = strings.Cut(head, "@")
	return strings.ToLower(head), strings.TrimSpace(rest)
}

// splitIndexed parses "<category> <n>" where the category may contain spaces.
func splitIndexed(args string) (label string, n int, ok bool) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "", 0, false
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || n < 1 {
		return "", 0, false
	}
	return strings.Join(fields[:len(fields)-1], " "), n, true
}

func buttonLabel(s string) string {
	return runewidth.Truncate(s, buttonLabelWidth, "…")
}

// errorText turns a service error into a chat answer.
func errorText(err error) string {
	switch {
	case errors.Is(err, roster.ErrNoTarget):
		return "🎯 Select a player first with /player <name>."
	case errors.Is(err, roster.ErrForbidden):
		return "⛔ You are not allowed to do that."
	case errors.Is(err, roster.ErrUnknownPlayer):
		return "❓ Unknown player."
	case errors.Is(err, inventory.ErrUnknownCategory):
		return "❓ Unknown category. See /categories."
	case errors.Is(err, inventory.ErrItemNotFound):
		return "❓ No item with that number."
	case errors.Is(err, inventory.ErrEmptyName):
		return "✍️ The item needs a name."
	case errors.Is(err, inventory.ErrInvalidDays):
		return "⏳ Enter at least one day."
	case errors.Is(err, inventory.ErrTooManyDays):
		return "⏳ That is too many days."
	case errors.Is(err, loot.ErrNothingToLose):
		return "📭 The inventory is empty, there is nothing to lose."
	case errors.Is(err, inventory.ErrNotInCatalog):
		return "❓ That item is no longer in the catalog. Add it again."
	case errors.Is(err, storage.ErrMalformedInventory):
		log.Printf("Error: chat command failed: %v", err)
		return "⚠️ This inventory cannot be read. Ask the game master to fix the data file."
	default:
		log.Printf("Error: chat command failed: %v", err)
		return "⚠️ Something went wrong, try again later."
	}
}
