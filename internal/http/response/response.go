// Package response содержит типы и функции для формирования JSON-ответов
// HTTP-обработчиков списка ожидания. Формат ответов зафиксирован контрактом
// с фронтендом: успех — {"success": true}, ошибка — {"error": "<сообщение>"}.
package response

// Success описывает тело успешного ответа.
type Success struct {
	Success bool `json:"success"`
}

// ErrorResponse описывает тело ответа с ошибкой.
// Используется также в swagger-аннотациях как возвращаемый тип.
type ErrorResponse struct {
	Error string `json:"error" example:"Email is required"`
}

// Сообщения об ошибках, видимые клиенту. Текст зафиксирован контрактом,
// внутренние детали ошибок в ответы не попадают.
const (
	MsgEmailRequired   = "Email is required"
	MsgEmailRegistered = "Email already registered"
	MsgServerError     = "Server error"
	MsgDBNotConfigured = "Database not configured"
)

// OK возвращает успешный Success-ответ.
func OK() Success {
	return Success{Success: true}
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}
