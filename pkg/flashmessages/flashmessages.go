package flashmessages

import (
	"encoding/json"

	"psikolog.link/utils"

	"github.com/gofiber/fiber/v2"
)

// Flash mesaj anahtarları.
const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	FlashFormDataKey = "flash_form_data"
)

// FlashData bir istekte görüntülenecek flash mesajlarını taşır.
type FlashData struct {
	Success string
	Error   string
}

// SetFlashMessage bir sonraki istekte gösterilmek üzere session'a mesaj yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages session'daki flash mesajlarını okur ve temizler.
func GetFlashMessages(c *fiber.Ctx) FlashData {
	data := FlashData{}
	sess, err := utils.SessionStart(c)
	if err != nil {
		return data
	}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		data.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		data.Error = v
		sess.Delete(FlashErrorKey)
	}
	_ = sess.Save()
	return data
}

// SetFlashFormData hatalı gönderilen form verisini (JSON olarak) session'a yazar.
func SetFlashFormData(c *fiber.Ctx, form interface{}) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(form)
	if err != nil {
		return err
	}
	sess.Set(FlashFormDataKey, string(raw))
	return sess.Save()
}

// GetFlashFormData session'daki form verisini okur, temizler ve map olarak döndürür.
func GetFlashFormData(c *fiber.Ctx) map[string]interface{} {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(FlashFormDataKey).(string)
	if !ok || raw == "" {
		return nil
	}
	sess.Delete(FlashFormDataKey)
	_ = sess.Save()

	var form map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return nil
	}
	return form
}
