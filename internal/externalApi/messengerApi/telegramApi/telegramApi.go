package telegramApi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/daily_results_bot/config"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi"
	"github.com/KotFed0t/daily_results_bot/utils"
	tele "gopkg.in/telebot.v4"
)

// TelegramApi mirrors the published status to a telegram chat.
type TelegramApi struct {
	bot    *tele.Bot
	chatID tele.ChatID
}

func New(cfg *config.Config) *TelegramApi {
	return NewWithURL(cfg, tele.DefaultApiURL)
}

func NewWithURL(cfg *config.Config, apiURL string) *TelegramApi {
	settings := tele.Settings{
		URL:     apiURL,
		Token:   cfg.Telegram.Token,
		Offline: true, // send-only, no getMe and no polling
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		slog.Error("error while tele.NewBot", slog.String("err", err.Error()))
		panic(err)
	}

	return &TelegramApi{bot: b, chatID: tele.ChatID(cfg.Telegram.ChatID)}
}

func (a *TelegramApi) Name() string {
	return "telegram"
}

func (a *TelegramApi) Publish(ctx context.Context, text string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TelegramApi.Publish"

	slog.Debug("Publish start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("chatID", int64(a.chatID)))

	msg, err := a.bot.Send(a.chatID, text)
	if err != nil {
		slog.Error("failed on bot.Send", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return fmt.Errorf("%w: %s", externalApi.ErrPublish, err.Error())
	}

	slog.Info("status mirrored to telegram", slog.String("rqID", rqID), slog.String("op", op), slog.Int("messageID", msg.ID))

	return nil
}
