package sender

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybercentry/waitlist-service/internal/lib/smtp"
	"github.com/cybercentry/waitlist-service/internal/models"
)

// fakeClient реализует smtp.Client и записывает отправленное письмо в буфер.
type fakeClient struct {
	from    string
	rcpts   []string
	body    bytes.Buffer
	mailErr error
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (c *fakeClient) Mail(from string) error {
	if c.mailErr != nil {
		return c.mailErr
	}
	c.from = from
	return nil
}

func (c *fakeClient) Rcpt(to string) error {
	c.rcpts = append(c.rcpts, to)
	return nil
}

func (c *fakeClient) Data() (io.WriteCloser, error) {
	return nopWriteCloser{&c.body}, nil
}

func (c *fakeClient) Quit() error  { return nil }
func (c *fakeClient) Close() error { return nil }

// fakeTransport реализует sender.Transport.
type fakeTransport struct {
	client     *fakeClient
	connectErr error
}

func (t *fakeTransport) Connect() (smtp.Client, error) {
	if t.connectErr != nil {
		return nil, t.connectErr
	}
	return t.client, nil
}

func (t *fakeTransport) GetSMTPUser() string { return "noreply@cybercentry.com" }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func marshalEvent(t *testing.T, event models.SignupEvent) []byte {
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body
}

func TestSendSignupConfirmation(t *testing.T) {
	t.Run("письмо с именем и тарифом", func(t *testing.T) {
		client := &fakeClient{}
		svc := New(&fakeTransport{client: client}, newTestLogger())

		name := "Bob"
		plan := "Edge"
		body := marshalEvent(t, models.SignupEvent{
			ID:          "id-1",
			Email:       "bob@example.com",
			DisplayName: &name,
			Plan:        &plan,
		})

		require.NoError(t, svc.SendSignupConfirmation(body))

		assert.Equal(t, "noreply@cybercentry.com", client.from)
		assert.Equal(t, []string{"bob@example.com"}, client.rcpts)
		assert.Contains(t, client.body.String(), "Hi Bob!")
		assert.Contains(t, client.body.String(), "Edge plan")
		assert.Contains(t, client.body.String(), "Subject: You're on the Cybercentry waitlist")
	})

	t.Run("письмо без необязательных полей", func(t *testing.T) {
		client := &fakeClient{}
		svc := New(&fakeTransport{client: client}, newTestLogger())

		body := marshalEvent(t, models.SignupEvent{ID: "id-2", Email: "alice@example.com"})

		require.NoError(t, svc.SendSignupConfirmation(body))

		assert.Contains(t, client.body.String(), "Hi there!")
		assert.NotContains(t, client.body.String(), "plan")
	})

	t.Run("битое сообщение возвращает ошибку", func(t *testing.T) {
		svc := New(&fakeTransport{client: &fakeClient{}}, newTestLogger())

		err := svc.SendSignupConfirmation([]byte(`{not json`))
		require.Error(t, err)
	})

	t.Run("ошибка подключения к SMTP", func(t *testing.T) {
		svc := New(&fakeTransport{connectErr: errors.New("dial failed")}, newTestLogger())

		body := marshalEvent(t, models.SignupEvent{ID: "id-3", Email: "carol@example.com"})
		err := svc.SendSignupConfirmation(body)
		require.Error(t, err)
	})
}
