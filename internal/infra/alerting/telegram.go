package alerting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

// botAPI is the subset of *tg.BotAPI the presenter needs.
type botAPI interface {
	Send(c tg.Chattable) (tg.Message, error)
	Request(c tg.Chattable) (*tg.APIResponse, error)
}

// ActionDispatcher receives the user's button presses.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, action domain.UserAction) error
}

// RegistrationReader looks up stored timer registrations.
type RegistrationReader interface {
	Get(ctx context.Context, key domain.TimerKey) (*domain.TimerRegistration, error)
}

type shownAlert struct {
	alert     domain.Alert
	messageID int
	speechID  int
}

// TelegramPresenter posts alerts to a chat with one inline button per
// action. The spoken text follows as a separate message once the alert
// has settled on the device.
type TelegramPresenter struct {
	bot    botAPI
	chatID int64
	settle time.Duration

	registrations RegistrationReader

	mu    sync.Mutex
	shown map[int]shownAlert
}

var _ domain.AlertPresenter = (*TelegramPresenter)(nil)

func NewTelegramPresenter(bot botAPI, chatID int64, settle time.Duration) *TelegramPresenter {
	return &TelegramPresenter{
		bot:    bot,
		chatID: chatID,
		settle: settle,
		shown:  make(map[int]shownAlert),
	}
}

// WithRegistrations lets callbacks for alerts this process did not show,
// such as those posted before a restart, recover the medicine name from the
// reminder's daily registration.
func (p *TelegramPresenter) WithRegistrations(r RegistrationReader) *TelegramPresenter {
	p.registrations = r
	return p
}

// NewTelegramBot authorizes against the Bot API.
func NewTelegramBot(token string) (*tg.BotAPI, error) {
	bot, err := tg.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	slog.Info("telegram bot authorized", slog.String("username", bot.Self.UserName))
	return bot, nil
}

// callbackData packs the action and the reminder it answers. Telegram caps
// callback data at 64 bytes.
func callbackData(action domain.AlertAction, alert domain.Alert) string {
	return fmt.Sprintf("%s:%d:%d:%d", action, alert.ReminderID, alert.Hour, alert.Minute)
}

func parseCallbackData(data string) (domain.AlertAction, int, int, int) {
	parts := strings.Split(data, ":")
	if len(parts) != 4 {
		return domain.AlertAction(data), -1, 0, 0
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		id = -1
	}
	hour, _ := strconv.Atoi(parts[2])
	minute, _ := strconv.Atoi(parts[3])
	return domain.AlertAction(parts[0]), id, hour, minute
}

func keyboardFor(alert domain.Alert) tg.InlineKeyboardMarkup {
	buttons := make([]tg.InlineKeyboardButton, 0, len(alert.Actions))
	for _, a := range alert.Actions {
		buttons = append(buttons, tg.NewInlineKeyboardButtonData(a.Label(), callbackData(a, alert)))
	}
	return tg.NewInlineKeyboardMarkup(tg.NewInlineKeyboardRow(buttons...))
}

func (p *TelegramPresenter) Present(ctx context.Context, alert domain.Alert) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- p.present(ctx, alert)
	}()

	return done
}

func (p *TelegramPresenter) present(ctx context.Context, alert domain.Alert) error {
	// One visible alert per reminder.
	p.removeShown(ctx, alert.ReminderID)

	msg := tg.NewMessage(p.chatID, alert.Title+"\n"+alert.Body)
	msg.ReplyMarkup = keyboardFor(alert)
	sent, err := p.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send alert message: %w", err)
	}

	p.mu.Lock()
	p.shown[alert.ReminderID] = shownAlert{alert: alert, messageID: sent.MessageID}
	p.mu.Unlock()

	if p.settle > 0 {
		t := time.NewTimer(p.settle)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	speech := tg.NewMessage(p.chatID, "🔊 "+alert.Speech)
	speech.ReplyToMessageID = sent.MessageID
	spoken, err := p.bot.Send(speech)
	if err != nil {
		return fmt.Errorf("failed to send speech message: %w", err)
	}

	p.mu.Lock()
	if s, ok := p.shown[alert.ReminderID]; ok && s.messageID == sent.MessageID {
		s.speechID = spoken.MessageID
		p.shown[alert.ReminderID] = s
	}
	p.mu.Unlock()

	return nil
}

func (p *TelegramPresenter) Dismiss(ctx context.Context, reminderID int) error {
	return p.removeShown(ctx, reminderID)
}

func (p *TelegramPresenter) removeShown(ctx context.Context, reminderID int) error {
	p.mu.Lock()
	s, ok := p.shown[reminderID]
	delete(p.shown, reminderID)
	p.mu.Unlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, id := range []int{s.messageID, s.speechID} {
		if id == 0 {
			continue
		}
		if _, err := p.bot.Request(tg.NewDeleteMessage(p.chatID, id)); err != nil {
			slog.WarnContext(ctx, "failed to delete telegram message",
				slog.Int("reminder_id", reminderID),
				slog.Int("message_id", id),
				slog.String("error", err.Error()),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *TelegramPresenter) lookup(reminderID int) (domain.Alert, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.shown[reminderID]
	return s.alert, ok
}

// Listen turns button presses from the update stream into user actions
// until ctx is done or the stream closes.
func (p *TelegramPresenter) Listen(ctx context.Context, updates <-chan tg.Update, dispatcher ActionDispatcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.CallbackQuery == nil {
				continue
			}
			p.handleCallback(ctx, update.CallbackQuery, dispatcher)
		}
	}
}

func (p *TelegramPresenter) handleCallback(ctx context.Context, cbq *tg.CallbackQuery, dispatcher ActionDispatcher) {
	action, reminderID, hour, minute := parseCallbackData(cbq.Data)

	userAction := domain.UserAction{
		ReminderID: reminderID,
		Action:     action,
		Hour:       hour,
		Minute:     minute,
	}
	if alert, ok := p.lookup(reminderID); ok {
		userAction.MedicineName = alert.MedicineName
	} else {
		userAction.MedicineName = p.storedMedicineName(ctx, reminderID)
	}

	if _, err := p.bot.Request(tg.NewCallback(cbq.ID, action.Label())); err != nil {
		slog.WarnContext(ctx, "failed to answer telegram callback",
			slog.String("callback_id", cbq.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := dispatcher.Dispatch(ctx, userAction); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch telegram action",
			slog.Int("reminder_id", reminderID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
	}
}

func (p *TelegramPresenter) storedMedicineName(ctx context.Context, reminderID int) string {
	if p.registrations == nil || reminderID < 0 {
		return ""
	}
	reg, err := p.registrations.Get(ctx, domain.DailyKey(reminderID))
	if err != nil {
		if !errors.Is(err, domain.ErrRegistrationNotFound) {
			slog.WarnContext(ctx, "failed to read reminder registration",
				slog.Int("reminder_id", reminderID),
				slog.String("error", err.Error()),
			)
		}
		return ""
	}
	return reg.Payload.MedicineName
}
