package i18n_test

import (
	"testing"

	"coursehub/internal/i18n"

	"github.com/stretchr/testify/assert"
)

func TestSprintf(t *testing.T) {
	assert.Equal(t, "Signing in...", i18n.Sprintf("en", i18n.MsgSigningIn))
	assert.Equal(t, "登录中...", i18n.Sprintf("zh", i18n.MsgSigningIn))
	assert.Equal(t, "登录中...", i18n.Sprintf("zh-CN", i18n.MsgSigningIn))
	assert.Equal(t, "Update failed: boom", i18n.Sprintf("", i18n.MsgUpdateFailed, "boom"))
	assert.Equal(t, "更新失败：boom", i18n.Sprintf("zh", i18n.MsgUpdateFailed, "boom"))
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Nickname saved", i18n.Sprintf("xx-invalid-!!", i18n.MsgNicknameSaved))
}
