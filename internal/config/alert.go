package config

type PresenterKind string

const (
	PresenterLog      PresenterKind = "log"
	PresenterGateway  PresenterKind = "gateway"
	PresenterTelegram PresenterKind = "telegram"
)

type AlertConfig struct {
	Presenter      PresenterKind `koanf:"presenter"`
	GatewayURL     string        `koanf:"gateway_url"`
	TelegramToken  string        `koanf:"telegram_token"`
	TelegramChatID int64         `koanf:"telegram_chat_id"`
}

func (c *AlertConfig) Validate() error {
	switch c.Presenter {
	case PresenterLog:
		return nil
	case PresenterGateway:
		if c.GatewayURL == "" {
			return ErrAlertGatewayURLMissing
		}
		return nil
	case PresenterTelegram:
		if c.TelegramToken == "" || c.TelegramChatID == 0 {
			return ErrTelegramConfigMissing
		}
		return nil
	}
	return ErrUnknownPresenter
}
