package web

import "github.com/labstack/echo/v4"

type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type Server interface {
	Index(c echo.Context) error
	Main(c echo.Context) error
	AddUser(c echo.Context) error
	DeleteUser(c echo.Context) error
	Logs(c echo.Context) error
	Llama(c echo.Context) error
	LlamaReply(c echo.Context) error
	Deepseek(c echo.Context) error
	DeepseekReply(c echo.Context) error
	StartTelegram(c echo.Context) error
	StopTelegram(c echo.Context) error
	Webhook(c echo.Context) error
}

func RegisterHandlers(router EchoRouter, si Server, _ ...echo.MiddlewareFunc) {
	router.GET("/", si.Index).Name = "index"
	router.GET("/main", si.Main).Name = "main"
	router.POST("/add_user", si.AddUser).Name = "add-user"
	router.POST("/delete_user", si.DeleteUser).Name = "delete-user"
	router.GET("/logs", si.Logs).Name = "logs"
	router.GET("/llama", si.Llama)
	router.POST("/llama_reply", si.LlamaReply)
	router.GET("/deepseek", si.Deepseek)
	router.POST("/deepseek_reply", si.DeepseekReply)
	router.GET("/telegram", si.StartTelegram)
	router.POST("/telegram", si.StartTelegram)
	router.GET("/stop_telegram", si.StopTelegram)
	router.POST("/stop_telegram", si.StopTelegram)
	router.POST("/webhook", si.Webhook)
}
