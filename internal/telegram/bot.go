package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"babymenu/internal/config"
	"babymenu/internal/metrics"
	"babymenu/internal/planner"
)

// Callback data of the inline keyboards.
const (
	callbackRecalcYes = "recalc|yes"
	callbackRecalcNo  = "recalc|no"
	callbackWeekPrev  = "week|prev"
	callbackWeekNext  = "week|next"
	callbackWeekToday = "week|today"
)

const (
	pendingTTL = 10 * time.Minute
	statsDays  = 7
)

// botAPI is the part of tgbotapi.BotAPI the bot uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// Bot is the Telegram front end of a planner.Service.
type Bot struct {
	api      botAPI
	svc      *planner.Service
	cfg      *config.Config
	logger   *zap.Logger
	pending  *PendingStore
	dataPath string
}

// NewBot initializes the Telegram Bot and sets the Webhook. dataPath is
// reported by the health endpoint.
func NewBot(cfg *config.Config, svc *planner.Service, logger *zap.Logger, dataPath string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("Authorized on account", zap.String("username", api.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse webhook url: %w", err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("Webhook set", zap.String("description", resp.Description))

	return newBot(api, cfg, svc, logger, dataPath), nil
}

func newBot(api botAPI, cfg *config.Config, svc *planner.Service, logger *zap.Logger, dataPath string) *Bot {
	return &Bot{
		api:      api,
		svc:      svc,
		cfg:      cfg,
		logger:   logger,
		pending:  NewPendingStore(pendingTTL),
		dataPath: dataPath,
	}
}

// RegisterHandlers mounts the webhook and health endpoints on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", b.handleHealth)
}

// CleanupPending drops expired prompts every interval until ctx is done.
func (b *Bot) CleanupPending(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := b.pending.CleanupExpired(); n > 0 {
				b.logger.Debug("Expired pending actions dropped", zap.Int("count", n))
			}
		}
	}
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("Error parsing update", zap.Error(err))
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}
	go b.HandleUpdate(context.Background(), *update)
}

func (b *Bot) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(metrics.GetSysHealth(b.dataPath)); err != nil {
		b.logger.Warn("Failed to write health report", zap.Error(err))
	}
}

// HandleUpdate processes one update from an allowed user.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		q := update.CallbackQuery
		if !b.allowed(q.From) {
			return
		}
		b.handleCallbackQuery(ctx, q)
	case update.Message != nil && update.Message.From != nil:
		if !b.allowed(update.Message.From) {
			return
		}
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) allowed(u *tgbotapi.User) bool {
	if b.cfg.IsAllowed(u.ID) {
		return true
	}
	b.logger.Warn("Unauthorized access attempt", zap.Int64("user_id", u.ID), zap.String("username", u.UserName))
	return false
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	cmd, args := parseCommand(msg.Text)
	b.logger.Debug("Command received", zap.String("command", cmd), zap.Int64("user_id", msg.From.ID))

	switch cmd {
	case "start", "help":
		b.reply(chatID, helpText, nil)
		return
	case "addchild":
		b.handleAddChild(ctx, chatID, args)
		return
	case "children":
		b.handleChildren(ctx, chatID)
		return
	case "select":
		b.handleSelect(ctx, chatID, args)
		return
	case "":
		b.reply(chatID, "Send /help to see what I can do.", nil)
		return
	}

	child, err := b.svc.CurrentChild(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	switch cmd {
	case "today":
		res, err := b.svc.Today(ctx, child.ID)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, formatToday(child, res, b.svc.Categories()), nil)
	case "week":
		b.svc.OpenPlanner()
		b.sendWeek(ctx, chatID, 0, child, 0)
	case "foods":
		foods, err := b.svc.Foods(ctx, child.ID)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, formatFoods(child, foods, b.svc.Categories()), nil)
	case "addfood":
		b.handleAddFood(ctx, msg.From.ID, chatID, child, args)
	case "removefood":
		b.handleRemoveFood(ctx, msg.From.ID, chatID, child, args)
	case "fed":
		b.handleFed(ctx, chatID, child, args)
	case "stats":
		history, err := b.svc.History(ctx, child.ID)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		summary := metrics.Summarize(history, b.svc.CurrentDate(), statsDays)
		b.reply(chatID, formatStats(child, summary), nil)
	case "fill":
		if err := b.svc.FillWeekAutomatically(ctx, child.ID); err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, "📌 This week is now pinned to the rotation.", nil)
	case "reset":
		if err := b.svc.ResetToAutomatic(ctx, child.ID); err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, "♻️ Manual picks cleared. The rotation decides again.", nil)
	default:
		b.reply(chatID, "Unknown command. Send /help to see what I can do.", nil)
	}
}

func (b *Bot) handleAddChild(ctx context.Context, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		b.reply(chatID, "Usage: /addchild <name> <boy|girl> <YYYY-MM-DD>", nil)
		return
	}
	child, err := b.svc.AddChild(ctx, fields[0], fields[1], fields[2])
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("👶 Added *%s*. Add foods with /addfood <category> <name>.", esc(child.Name)), nil)
}

func (b *Bot) handleChildren(ctx context.Context, chatID int64) {
	children, err := b.svc.Children(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatChildren(children, b.svc.Session().ChildID, b.svc.AgeInMonths), nil)
}

func (b *Bot) handleSelect(ctx context.Context, chatID int64, args string) {
	children, err := b.svc.Children(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 || n > len(children) {
		b.reply(chatID, fmt.Sprintf("Usage: /select <number>, from 1 to %d. See /children.", len(children)), nil)
		return
	}
	child, err := b.svc.SelectChild(ctx, children[n-1].ID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ *%s* selected.", esc(child.Name)), nil)
}

func (b *Bot) handleAddFood(ctx context.Context, userID, chatID int64, child planner.Child, args string) {
	category, name, ok := strings.Cut(args, " ")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		b.reply(chatID, "Usage: /addfood <category> <name>\nCategories: "+formatCategories(b.svc.Categories()), nil)
		return
	}
	cat, err := b.svc.Categories().Parse(category)
	if err != nil {
		b.reply(chatID, "❌ Unknown category. Use one of: "+formatCategories(b.svc.Categories()), nil)
		return
	}
	b.changeCatalog(ctx, userID, chatID, PendingAction{
		Kind:     ActionAddFood,
		ChildID:  child.ID,
		Food:     name,
		Category: cat,
		ChatID:   chatID,
	})
}

func (b *Bot) handleRemoveFood(ctx context.Context, userID, chatID int64, child planner.Child, args string) {
	if args == "" {
		b.reply(chatID, "Usage: /removefood <name>", nil)
		return
	}
	b.changeCatalog(ctx, userID, chatID, PendingAction{
		Kind:    ActionRemoveFood,
		ChildID: child.ID,
		Food:    args,
		ChatID:  chatID,
	})
}

// changeCatalog applies a at once when the child has no overrides, and
// otherwise parks it until the user answers the recalculation prompt.
func (b *Bot) changeCatalog(ctx context.Context, userID, chatID int64, a PendingAction) {
	has, err := b.svc.HasOverrides(ctx, a.ChildID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if !has {
		text, err := b.apply(ctx, a, planner.NeverConfirm)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, text, nil)
		return
	}

	b.pending.Put(userID, a)
	keyboard := recalcKeyboard()
	b.reply(chatID, "📝 This week has manual picks. Recalculate the rest of the week with the new catalog?", &keyboard)
}

func (b *Bot) apply(ctx context.Context, a PendingAction, confirm planner.Confirm) (string, error) {
	var (
		recalculated bool
		err          error
		text         string
	)
	switch a.Kind {
	case ActionAddFood:
		recalculated, err = b.svc.AddFood(ctx, a.ChildID, a.Food, a.Category, confirm)
		info := b.svc.Categories().Info(a.Category)
		text = fmt.Sprintf("✅ Added %s *%s* (%s).", info.Icon, esc(a.Food), info.Name)
	case ActionRemoveFood:
		recalculated, err = b.svc.RemoveFood(ctx, a.ChildID, a.Food, confirm)
		text = fmt.Sprintf("🗑 Removed *%s*.", esc(a.Food))
	default:
		return "", fmt.Errorf("unknown pending action %q", a.Kind)
	}
	if err != nil {
		return "", err
	}
	if recalculated {
		text += "\n🔄 The rest of the week was recalculated."
	}
	return text, nil
}

func (b *Bot) handleFed(ctx context.Context, chatID int64, child planner.Child, args string) {
	food := args
	if food == "" {
		res, err := b.svc.Today(ctx, child.ID)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		if !res.HasFood() {
			b.reply(chatID, "Nothing planned today. Use /fed <food>.", nil)
			return
		}
		food = res.Food
	}
	day, err := b.svc.RecordFeeding(ctx, child.ID, food)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("🍼 Recorded *%s*. Feedings today: %d.", esc(food), day.Count), nil)
}

func (b *Bot) sendWeek(ctx context.Context, chatID int64, messageID int, child planner.Child, offset int) {
	plan, err := b.svc.Week(ctx, child.ID, offset)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	text := formatWeek(child, plan, b.svc.Categories())
	keyboard := weekKeyboard()
	if messageID == 0 {
		b.reply(chatID, text, &keyboard)
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeMarkdown
	b.send(edit)
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Answer callback to remove spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch query.Data {
	case callbackRecalcYes, callbackRecalcNo:
		a, ok := b.pending.Take(query.From.ID)
		if !ok {
			b.edit(chatID, messageID, "⌛ This request expired. Send the command again.")
			return
		}
		confirm := planner.NeverConfirm
		if query.Data == callbackRecalcYes {
			confirm = planner.AlwaysConfirm
		}
		text, err := b.apply(ctx, a, confirm)
		if err != nil {
			b.edit(chatID, messageID, b.userMessage(err))
			return
		}
		b.edit(chatID, messageID, text)

	case callbackWeekPrev, callbackWeekNext, callbackWeekToday:
		child, err := b.svc.CurrentChild(ctx)
		if err != nil {
			b.edit(chatID, messageID, b.userMessage(err))
			return
		}
		var offset int
		switch query.Data {
		case callbackWeekPrev:
			offset = b.svc.ShiftWeek(-1)
		case callbackWeekNext:
			offset = b.svc.ShiftWeek(1)
		default:
			b.svc.OpenPlanner()
		}
		b.sendWeek(ctx, chatID, messageID, child, offset)

	default:
		b.logger.Warn("Unknown callback data", zap.String("data", query.Data))
	}
}

func (b *Bot) reply(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	b.send(msg)
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	b.send(edit)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("Failed to send message", zap.Error(err))
	}
}

func (b *Bot) replyError(chatID int64, err error) {
	b.reply(chatID, b.userMessage(err), nil)
}

// userMessage turns validation errors into replies and hides everything
// else behind a generic message.
func (b *Bot) userMessage(err error) string {
	var ageErr *planner.AgeRestrictionError
	switch {
	case errors.Is(err, planner.ErrNoChildSelected):
		return noChildText
	case errors.As(err, &ageErr):
		return fmt.Sprintf("⏳ %s are recommended from %d months; this child is %d months old.",
			b.svc.Categories().Info(ageErr.Category).Name, ageErr.MinAgeMonths, ageErr.AgeMonths)
	case errors.Is(err, planner.ErrNoFoods):
		return "🥄 No foods in the catalog yet. Add one with /addfood <category> <name>."
	case isValidation(err):
		return "❌ " + esc(err.Error())
	}
	b.logger.Error("Command failed", zap.Error(err))
	return "❌ Something went wrong. Please try again."
}

func isValidation(err error) bool {
	for _, target := range []error{
		planner.ErrChildNotFound,
		planner.ErrInvalidChild,
		planner.ErrEmptyFoodName,
		planner.ErrDuplicateFood,
		planner.ErrFoodNotFound,
		planner.ErrFoodNotInCatalog,
		planner.ErrUnknownCategory,
		planner.ErrChoiceOutOfRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
