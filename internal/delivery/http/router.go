package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mathbridge/mathbridge-backend/internal/delivery/http/handlers"
	"github.com/mathbridge/mathbridge-backend/internal/delivery/http/middlewares"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Auth         *handlers.AuthHandler
	Webhook      *handlers.WebhookHandler
	Payment      *handlers.PaymentHandler
	Contract     *handlers.ContractHandler
	Reschedule   *handlers.RescheduleHandler
	Notification *handlers.NotificationHandler
	Report       *handlers.ReportHandler
	JWTSecret    string
}

// NewRouter assembles the public surface: unauthenticated webhooks and auth,
// the metrics endpoint, and the bearer-protected API.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/webhooks/sepay", deps.Webhook.HandleSePay)
	r.POST("/webhooks/payos", deps.Webhook.HandlePayOS)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", deps.Auth.Register)
		v1.POST("/auth/login", deps.Auth.Login)

		authed := v1.Group("")
		authed.Use(middlewares.JWTAuth(deps.JWTSecret))
		{
			authed.POST("/payments/deposits", deps.Payment.CreateDeposit)
			authed.POST("/payments/contracts/:id", deps.Payment.CreateContractPayment)
			authed.POST("/payments/withdrawals", deps.Payment.CreateWithdrawal)
			authed.GET("/wallets/me", deps.Payment.GetWallet)
			authed.GET("/wallets/me/transactions", deps.Payment.ListTransactions)

			authed.GET("/packages", deps.Contract.ListPackages)
			authed.POST("/contracts", middlewares.RequireRole(string(domain.RoleParent)), deps.Contract.Create)
			authed.GET("/contracts", deps.Contract.List)
			authed.GET("/contracts/:id", deps.Contract.Get)
			authed.POST("/contracts/:id/activate", middlewares.RequireRole(string(domain.RoleTutor)), deps.Contract.Activate)
			authed.POST("/contracts/:id/cancel", deps.Contract.Cancel)
			authed.GET("/contracts/:id/sessions", deps.Contract.ListSessions)

			authed.POST("/reschedules", deps.Reschedule.Create)
			authed.POST("/reschedules/:id/approve", deps.Reschedule.Approve)
			authed.POST("/reschedules/:id/reject", deps.Reschedule.Reject)

			authed.GET("/notifications", deps.Notification.List)
			authed.POST("/notifications/:id/read", deps.Notification.MarkRead)
			authed.GET("/notifications/stream", deps.Notification.Stream)

			reports := authed.Group("/reports")
			reports.GET("/tutors/:id/earnings", deps.Report.TutorEarnings)
			reports.GET("/summary", middlewares.RequireRole(string(domain.RoleAdmin)), deps.Report.PlatformSummary)
		}
	}

	return r
}
