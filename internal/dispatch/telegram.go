package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"
)

// sendTimeout bounds a single gateway call, including connection setup.
const sendTimeout = 15 * time.Second

// TelegramClient delivers reminder messages through the Telegram bot
// gateway. It performs no retries; the scheduler decides what a failed
// send means for the row.
type TelegramClient struct {
	bot     *tele.Bot
	limiter *rate.Limiter
	log     zerolog.Logger
}

func NewTelegramClient(token string, log zerolog.Logger) (*TelegramClient, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("dispatch: telegram token is empty")
	}
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Client: &http.Client{Timeout: sendTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("dispatch: create telegram bot: %w", err)
	}
	return &TelegramClient{
		bot: bot,
		// Telegram caps bots at ~30 messages/second across chats.
		limiter: rate.NewLimiter(rate.Limit(25), 25),
		log:     log.With().Str("component", "dispatch").Logger(),
	}, nil
}

// Send delivers one message to the recipient's chat. It reports false on a
// malformed chat id, a gateway failure or a timeout, and never panics for
// those expected cases.
func (c *TelegramClient) Send(ctx context.Context, recipientID, message string) bool {
	chatID, err := strconv.ParseInt(recipientID, 10, 64)
	if err != nil {
		c.log.Warn().Str("recipient_id", recipientID).Msg("recipient id is not a chat id")
		return false
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return false
	}

	if _, err := c.bot.Send(tele.ChatID(chatID), message); err != nil {
		c.log.Warn().Err(err).Str("recipient_id", recipientID).Msg("telegram send failed")
		return false
	}
	return true
}
