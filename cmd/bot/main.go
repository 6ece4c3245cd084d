// cmd/bot/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/calculator"
	"finance-tracker/internal/config"
	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage/postgres"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/encoding/charmap"
)

func main() {
	cfg := config.MustLoad()
	if cfg.BotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN not set")
	}

	db, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}
	defer db.Close()

	store := postgres.NewStorage(db)

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Panic(err)
	}

	log.Printf("Bot started: @%s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		chatID := update.Message.Chat.ID
		telegramID := update.Message.From.ID
		text := strings.TrimSpace(fixEncoding(update.Message.Text))

		var msgText string
		var err error

		switch {
		case text == "/start" || text == "/help":
			msgText = "Finance tracker bot\n\n" +
				"Commands:\n" +
				"/link <username> <password> — link your account\n" +
				"/add <description> <amount> [category] — record a transaction\n" +
				"/list — transactions\n" +
				"/summary — totals by category\n" +
				"/budget <amount> — compare spend against a budget\n" +
				"/clear — delete all transactions"

		case strings.HasPrefix(text, "/link "):
			msgText, err = handleLink(store, telegramID, strings.TrimSpace(text[6:]))

		case strings.HasPrefix(text, "/add "):
			msgText, err = withUser(store, telegramID, func(user *domain.User) (string, error) {
				return handleAdd(store, user.ID, strings.TrimSpace(text[5:]))
			})

		case text == "/list":
			msgText, err = withUser(store, telegramID, func(user *domain.User) (string, error) {
				return handleList(store, user.ID)
			})

		case text == "/summary":
			msgText, err = withUser(store, telegramID, func(user *domain.User) (string, error) {
				return handleSummary(store, user.ID)
			})

		case strings.HasPrefix(text, "/budget "):
			msgText, err = withUser(store, telegramID, func(user *domain.User) (string, error) {
				return handleBudget(store, user.ID, strings.TrimSpace(text[8:]))
			})

		case text == "/clear":
			msgText, err = withUser(store, telegramID, func(user *domain.User) (string, error) {
				deleted, err := store.ClearAll(context.Background(), user.ID)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted %d transactions", deleted), nil
			})

		default:
			msgText = "Unknown command. Send /help"
		}

		if err != nil {
			msgText = "Error: " + err.Error()
		}

		msg := tgbotapi.NewMessage(chatID, msgText)
		msg.ParseMode = "Markdown"
		bot.Send(msg)
	}
}

// withUser resolves the linked account for a Telegram user before running fn.
func withUser(store *postgres.Storage, telegramID int64, fn func(*domain.User) (string, error)) (string, error) {
	user, err := store.FindByTelegramID(context.Background(), telegramID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "No linked account. Send /link <username> <password> first", nil
		}
		return "", err
	}
	return fn(user)
}

func handleLink(store *postgres.Storage, telegramID int64, input string) (string, error) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return "Usage: /link <username> <password>", nil
	}

	user, err := store.FindByUsername(context.Background(), fields[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "Invalid credentials", nil
		}
		return "", err
	}
	if !auth.CheckPassword(fields[1], user.PasswordHash) {
		return "Invalid credentials", nil
	}

	if err := store.LinkTelegramID(context.Background(), user.ID, telegramID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Linked to *%s*", user.Username), nil
}

func handleAdd(store *postgres.Storage, userID int64, input string) (string, error) {
	fields := strings.Fields(input)
	if len(fields) < 2 {
		return "Usage: /add <description> <amount> [category]", nil
	}

	category := "Other"
	if domain.ValidCategory(fields[len(fields)-1]) {
		category = fields[len(fields)-1]
		fields = fields[:len(fields)-1]
	}
	if len(fields) < 2 {
		return "Usage: /add <description> <amount> [category]", nil
	}

	amount, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return fmt.Sprintf("Invalid amount: %q", fields[len(fields)-1]), nil
	}
	description := strings.Join(fields[:len(fields)-1], " ")

	id, err := store.Create(context.Background(), userID, domain.Transaction{
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Saved #%d: %s — $%.2f (%s)", id, description, amount, category), nil
}

func handleList(store *postgres.Storage, userID int64) (string, error) {
	list, err := store.List(context.Background(), userID)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "No transactions yet", nil
	}

	var lines []string
	lines = append(lines, "*Transactions*")
	for _, t := range list {
		lines = append(lines, fmt.Sprintf("#%d %s — $%.2f (%s)", t.ID, t.Description, t.Amount, t.Category))
	}
	return strings.Join(lines, "\n"), nil
}

func handleSummary(store *postgres.Storage, userID int64) (string, error) {
	summary, err := store.CategorySummary(context.Background(), userID)
	if err != nil {
		return "", err
	}
	if len(summary) == 0 {
		return "No transactions yet", nil
	}

	var lines []string
	lines = append(lines, "*Spending by category*")
	for _, cs := range summary {
		lines = append(lines, fmt.Sprintf("- %s: $%.2f", cs.Category, cs.Amount))
	}
	return strings.Join(lines, "\n"), nil
}

func handleBudget(store *postgres.Storage, userID int64, input string) (string, error) {
	budget, err := strconv.ParseFloat(input, 64)
	if err != nil || budget < 0 {
		return "Usage: /budget <amount>", nil
	}

	list, err := store.List(context.Background(), userID)
	if err != nil {
		return "", err
	}
	var totalSpent float64
	for _, t := range list {
		totalSpent += t.Amount
	}
	return calculator.CheckBudget(budget, totalSpent), nil
}

// fixEncoding repairs text some clients deliver as windows-1251.
func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoder := charmap.Windows1251.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}

	return strings.ToValidUTF8(s, "")
}
