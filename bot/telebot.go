package bot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const helpMsg = `조회 명령 목록
/positions
/positions/{pool}
/positions/{pool}/free
/positions/{pool}/hist
/earned
/events
/refresh`

type TeleBot struct {
	bot     *tgbotapi.BotAPI
	chatId  int64
	updates tgbotapi.UpdatesChannel
	client  *http.Client
	lg      zerolog.Logger
}

type TeleBotConfig struct {
	Token  string
	ChatId int64
}

func NewTeleBot(conf *TeleBotConfig) (*TeleBot, error) {

	bot, err := tgbotapi.NewBotAPI(conf.Token) // memo. Go automatically dereferences struct pointers when accessing fields
	if err != nil {
		return nil, err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	return &TeleBot{
		bot:     bot,
		chatId:  conf.ChatId,
		updates: updates,
		client:  &http.Client{Timeout: 40 * time.Second},
		lg:      zerolog.New(os.Stdout).With().Str("Module", "TeleBot").Timestamp().Logger(),
	}, nil
}

// Run forwards every message of ch to the chat and answers commands through the local API.
// authorization is sent as is on /refresh.
func (t TeleBot) Run(ch chan string, port int, authorization string) {
	t.SendMessage("LAUNCHED SUCCESSFULLY")

	go func() {
		t.communicate(ch, port, authorization)
	}()

	for msg := range ch {
		t.SendMessage(msg)
		t.lg.Debug().Str("msg", msg).Msg("message sent")
	}
}

func (t TeleBot) SendMessage(msg string) {
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatId, msg))
	if err != nil {
		t.lg.Error().Err(err).Msg("SendMessage 실패")
	}
}

func (t TeleBot) communicate(ch chan string, port int, authorization string) {

	for update := range t.updates {
		if update.Message == nil || update.Message.Chat == nil || update.Message.Chat.ID != t.chatId {
			continue
		}

		method, path, ok := route(update.Message.Text)
		if !ok {
			continue
		}
		if path == "" {
			ch <- helpMsg
			continue
		}

		rtn, err := httpsend(t.client, method, fmt.Sprintf("http://localhost:%d%s", port, path), authorization)
		if err != nil {
			ch <- err.Error()
		} else {
			ch <- rtn
		}
	}
}

// route maps a chat command to a local API call. An empty path means help.
func route(txt string) (method string, path string, ok bool) {
	txt = strings.TrimSpace(txt)
	if txt == "" || txt[0] != '/' {
		return "", "", false
	}

	switch {
	case txt == "/help" || txt == "/start":
		return "", "", true
	case txt == "/refresh":
		return http.MethodPost, "/admin/refresh", true
	case txt == "/earned", txt == "/events", strings.HasPrefix(txt, "/positions"):
		return http.MethodGet, txt, true
	}
	return "", "", false
}

func httpsend(client *http.Client, method string, url string, authorization string) (string, error) {

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return "", err
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return "", err
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%d %s", res.StatusCode, string(body))
	}

	var jsonData interface{}
	err = json.Unmarshal(body, &jsonData)
	if err != nil {
		return string(body), nil // text 응답은 그대로 전달
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false) // memo. 단순 MarshalIndent 사용하면, &을 \u0026로 바꿔버림.
	encoder.SetIndent("", "\t")
	err = encoder.Encode(jsonData)
	if err != nil {
		return "", err
	}

	return buffer.String(), nil
}
