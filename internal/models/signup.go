// Package models содержит доменные структуры записи в списке ожидания,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Signup представляет собой запись в списке ожидания, используемую
// в бизнес-логике и хранилище. Необязательные поля представлены
// указателями: nil означает, что клиент значение не передал,
// и в базу уходит явный NULL.
type Signup struct {
	ID          string     // Идентификатор записи, генерируется базой при вставке
	Email       string     // Адрес электронной почты, уникален глобально
	Fid         *int64     // Идентификатор аккаунта внешней платформы
	DisplayName *string    // Отображаемое имя
	Plan        *string    // Выбранный тариф ("Core", "Edge", "One", ...)
	CreatedAt   *time.Time // Время создания записи, выставляется базой
}

// Fid принимает из JSON число, числовую строку или null.
// Клиенты исторически присылали поле в обоих видах.
type Fid struct {
	Value *int64
}

// UnmarshalJSON реализует прием числового и строкового представления fid.
func (f *Fid) UnmarshalJSON(data []byte) error {
	f.Value = nil
	if string(data) == "null" {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		v, err := n.Int64()
		if err != nil {
			return fmt.Errorf("fid is not an integer: %w", err)
		}
		f.Value = &v
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fid must be a number, a numeric string or null")
	}
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("fid is not an integer: %w", err)
	}
	f.Value = &v
	return nil
}

// MarshalJSON сериализует fid обратно в число или null.
func (f Fid) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// SignupRequest используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Signup.
type SignupRequest struct {
	Email       string  `json:"email" validate:"required"`
	Fid         Fid     `json:"fid"`
	DisplayName *string `json:"display_name"`
	Plan        *string `json:"plan"`
}

// SignupEvent публикуется в очередь уведомлений после успешной вставки записи.
type SignupEvent struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name,omitempty"`
	Plan        *string `json:"plan,omitempty"`
}
