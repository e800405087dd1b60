package app

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// l is shortcut for localization
func (b *Bot) l(key string, data map[string]interface{}) string {
	return b.localizer.MustLocalize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
}
