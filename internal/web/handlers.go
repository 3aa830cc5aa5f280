package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"

	"chat-relay/internal/llm"
	"chat-relay/internal/model"
	"chat-relay/internal/repository"
	"chat-relay/internal/service"
	"chat-relay/internal/telegram"
)

// WebhookController manages the provider-side webhook subscription.
type WebhookController interface {
	Register() (telegram.State, error)
	Unregister() (telegram.State, error)
}

// UpdateDispatcher hands an inbound update to the relay pipeline.
type UpdateDispatcher interface {
	DispatchUpdate(update tgbotapi.Update)
}

type server struct {
	roster     *service.RosterService
	completer  service.Completer
	controller WebhookController
	dispatcher UpdateDispatcher
}

func NewServer(roster *service.RosterService, completer service.Completer, controller WebhookController, dispatcher UpdateDispatcher) Server {
	return &server{
		roster:     roster,
		completer:  completer,
		controller: controller,
		dispatcher: dispatcher,
	}
}

func (s *server) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}

type MainData struct {
	Users []model.User
	Flash *Flash
}

func (s *server) Main(c echo.Context) error {
	users, err := s.roster.ListUsers(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	return c.Render(http.StatusOK, "main.html", MainData{
		Users: users,
		Flash: popFlash(c),
	})
}

func (s *server) AddUser(c echo.Context) error {
	_, err := s.roster.AddUser(c.Request().Context(), c.FormValue("username"))
	switch {
	case err == nil:
		setFlash(c, "User added successfully!", flashSuccess)
	case errors.Is(err, service.ErrUsernameRequired):
		setFlash(c, "Username is required!", flashError)
	case errors.Is(err, repository.ErrDuplicateUser):
		setFlash(c, "User already exists!", flashError)
	default:
		return fmt.Errorf("add user: %w", err)
	}

	return c.Redirect(http.StatusFound, "/main")
}

func (s *server) DeleteUser(c echo.Context) error {
	err := s.roster.DeleteUser(c.Request().Context(), c.FormValue("username"))
	switch {
	case err == nil:
		setFlash(c, "User deleted successfully!", flashSuccess)
	case errors.Is(err, service.ErrUsernameRequired):
		setFlash(c, "Username is required!", flashError)
	case errors.Is(err, repository.ErrUserNotFound):
		setFlash(c, "User not found!", flashError)
	default:
		return fmt.Errorf("delete user: %w", err)
	}

	return c.Redirect(http.StatusFound, "/main")
}

type LogsData struct {
	Entries []model.LogEntry
}

func (s *server) Logs(c echo.Context) error {
	entries, err := s.roster.ListLog(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list log entries: %w", err)
	}
	return c.Render(http.StatusOK, "logs.html", LogsData{Entries: entries})
}

type AskData struct {
	Title  string
	Action string
}

type ReplyData struct {
	Title string
	Reply string
	Error string
}

func (s *server) Llama(c echo.Context) error {
	return c.Render(http.StatusOK, "ask.html", AskData{Title: "Llama", Action: "/llama_reply"})
}

func (s *server) LlamaReply(c echo.Context) error {
	return s.completionReply(c, llm.ModelLlama, "Llama")
}

func (s *server) Deepseek(c echo.Context) error {
	return c.Render(http.StatusOK, "ask.html", AskData{Title: "Deepseek", Action: "/deepseek_reply"})
}

func (s *server) DeepseekReply(c echo.Context) error {
	return s.completionReply(c, llm.ModelDeepseek, "Deepseek")
}

func (s *server) completionReply(c echo.Context, modelID, title string) error {
	reply, err := s.completer.Complete(c.Request().Context(), modelID, c.FormValue("q"))
	switch {
	case errors.Is(err, llm.ErrEmptyPrompt):
		return c.Render(http.StatusBadRequest, "reply.html", ReplyData{Title: title, Error: "Please enter a question first."})
	case err != nil:
		log.Printf("%s completion: %v", title, err)
		return c.Render(http.StatusBadGateway, "reply.html", ReplyData{Title: title, Error: "The model could not be reached. Try again later."})
	}

	return c.Render(http.StatusOK, "reply.html", ReplyData{Title: title, Reply: reply})
}

type TelegramData struct {
	Status string
}

func (s *server) StartTelegram(c echo.Context) error {
	status := "The telegram bot is running."
	if _, err := s.controller.Register(); err != nil {
		log.Printf("register webhook: %v", err)
		status = "Failed to start the telegram bot."
	}
	return c.Render(http.StatusOK, "telegram.html", TelegramData{Status: status})
}

func (s *server) StopTelegram(c echo.Context) error {
	status := "The telegram bot has stopped."
	if _, err := s.controller.Unregister(); err != nil {
		log.Printf("unregister webhook: %v", err)
		status = "Failed to stop the telegram bot."
	}
	return c.Render(http.StatusOK, "telegram.html", TelegramData{Status: status})
}

// Webhook receives one provider delivery per call. It always answers
// 200 ok, even for payloads it cannot decode, so the provider never
// retries a poison delivery. Processing happens in the background
// after the acknowledgment.
func (s *server) Webhook(c echo.Context) error {
	var update tgbotapi.Update
	if err := json.NewDecoder(c.Request().Body).Decode(&update); err != nil {
		log.Printf("decode webhook payload: %v", err)
		return c.String(http.StatusOK, "ok")
	}

	s.dispatcher.DispatchUpdate(update)

	return c.String(http.StatusOK, "ok")
}
