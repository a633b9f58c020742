package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"harambee-backend/internal/security"
	"harambee-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth          service.AuthService
	OTP           service.OTPService
	Contributions service.ContributionService
	Groups        service.GroupService
	Projects      service.ProjectService
	Ledger        service.LedgerService
	Notifications service.NotificationService
	Links         service.LinkService
	Tokens        security.TokenManager
	EchoOTPCodes  bool
}

func NewRouter(s Services) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	authHandler := NewAuthHandler(s.Auth, s.OTP, s.EchoOTPCodes)
	api.HandleFunc("/auth/otp/request", authHandler.RequestOTPHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/otp/verify", authHandler.VerifyOTPHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.RegisterHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.LoginHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.RefreshHandler).Methods(http.MethodPost)

	// Link resolution serves visitors who may not be signed in yet.
	linkHandler := NewLinkHandler(s.Links)
	links := api.PathPrefix("/links").Subrouter()
	links.Use(OptionalAuthMiddleware(s.Tokens))
	links.HandleFunc("/{identifier:.+}", linkHandler.ResolveHandler).Methods(http.MethodGet)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(AuthMiddleware(s.Tokens))

	groupHandler := NewGroupHandler(s.Groups, s.Ledger)
	protected.HandleFunc("/groups", groupHandler.CreateHandler).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id:[0-9]+}", groupHandler.GetHandler).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id:[0-9]+}/join", groupHandler.JoinHandler).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id:[0-9]+}/members", groupHandler.ListMembersHandler).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id:[0-9]+}/summary", groupHandler.SummaryHandler).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id:[0-9]+}/members/{userID:[0-9]+}/promote", groupHandler.PromotePartnerHandler).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id:[0-9]+}/members/{userID:[0-9]+}", groupHandler.RemoveMemberHandler).Methods(http.MethodDelete)

	projectHandler := NewProjectHandler(s.Projects)
	protected.HandleFunc("/groups/{id:[0-9]+}/projects", projectHandler.CreateHandler).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id:[0-9]+}/projects", projectHandler.ListByGroupHandler).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{id:[0-9]+}", projectHandler.GetHandler).Methods(http.MethodGet)

	contributionHandler := NewContributionHandler(s.Contributions)
	protected.HandleFunc("/groups/{id:[0-9]+}/contributions", contributionHandler.SubmitHandler).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id:[0-9]+}/contributions", contributionHandler.ListByGroupHandler).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id:[0-9]+}/members/{userID:[0-9]+}/contributions", contributionHandler.ListByMemberHandler).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{id:[0-9]+}/contributions", contributionHandler.ListByProjectHandler).Methods(http.MethodGet)
	protected.HandleFunc("/contributions/{id:[0-9]+}", contributionHandler.GetHandler).Methods(http.MethodGet)
	protected.HandleFunc("/contributions/{id:[0-9]+}/confirm", contributionHandler.ConfirmHandler).Methods(http.MethodPatch)
	protected.HandleFunc("/contributions/{id:[0-9]+}/reject", contributionHandler.RejectHandler).Methods(http.MethodPatch)

	notificationHandler := NewNotificationHandler(s.Notifications)
	protected.HandleFunc("/notifications", notificationHandler.ListHandler).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkAsReadHandler).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/{id:[0-9]+}", notificationHandler.DismissHandler).Methods(http.MethodDelete)

	return r
}
