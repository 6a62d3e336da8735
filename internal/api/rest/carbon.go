package carbon

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	auth "github.com/glkeru/carbon/internal/api/auth"
	interf "github.com/glkeru/carbon/internal/interfaces"
	model "github.com/glkeru/carbon/internal/models"
	service "github.com/glkeru/carbon/internal/services"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// максимальный размер тела запроса
const maxBody = 1 << 20

type CarbonHandler struct {
	router *mux.Router
	carbon interf.CarbonCredits
	rules  interf.RuleCatalog
	logger *zap.Logger
	dev    bool
}

func NewHandler(carbon interf.CarbonCredits, rules interf.RuleCatalog, authn *auth.Authenticator, logger *zap.Logger, dev bool) *CarbonHandler {
	router := mux.NewRouter()
	handler := &CarbonHandler{router, carbon, rules, logger, dev}
	router.Use(MiddlewareLog(logger))

	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// админка
	admin := router.PathPrefix("/admin/carbon").Subrouter()
	admin.Use(MiddlewareAuth(authn, dev))
	admin.HandleFunc("/adjust", handler.AdjustHandler).Methods(http.MethodPost)
	admin.HandleFunc("/stats", handler.StatsHandler).Methods(http.MethodGet)
	admin.HandleFunc("/transactions", handler.TransactionsHandler).Methods(http.MethodGet)
	admin.HandleFunc("/users", handler.UsersHandler).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}/balance", handler.UserBalanceHandler).Methods(http.MethodGet)
	admin.HandleFunc("/rules", handler.GetRulesHandler).Methods(http.MethodGet)
	admin.HandleFunc("/rules", handler.SaveRuleHandler).Methods(http.MethodPost)
	admin.HandleFunc("/rules/{activity}", handler.GetRuleHandler).Methods(http.MethodGet)

	// пользователь
	userAuth := MiddlewareAuth(authn, dev)
	router.Handle("/user/carbon-credits", userAuth(http.HandlerFunc(handler.BalanceHandler))).Methods(http.MethodGet)
	router.Handle("/user/carbon-credits/transactions", userAuth(http.HandlerFunc(handler.OwnTransactionsHandler))).Methods(http.MethodGet)

	return handler
}

func (h *CarbonHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.router.ServeHTTP(w, req)
}

func (h *CarbonHandler) Log(msg string, service string, err error) {
	h.logger.Error(msg,
		zap.String("service", service),
		zap.Error(err),
	)
}

// ответ с ошибкой, внутренние ошибки логируем
func (h *CarbonHandler) fail(w http.ResponseWriter, service string, err error) {
	if StatusCode(err) == http.StatusInternalServerError {
		h.Log("Internal error", service, err)
	}
	writeError(w, err, h.dev)
}

func (h *CarbonHandler) HealthHandler(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type adjustRequest struct {
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Reason      string          `json:"reason"`
	Description string          `json:"description"`
	Metadata    map[string]any  `json:"metadata"`
}

// Ручное изменение баланса
func (h *CarbonHandler) AdjustHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxBody))
	if err != nil {
		h.fail(w, "AdjustHandler", fmt.Errorf("read body: %w", model.ErrValidation))
		return
	}
	defer req.Body.Close()

	request := &adjustRequest{}
	err = json.Unmarshal(body, request)
	if err != nil {
		h.fail(w, "AdjustHandler", fmt.Errorf("body is not correct: %w", model.ErrValidation))
		return
	}
	typeTnx, err := model.ParseTxType(request.Type)
	if err != nil {
		h.fail(w, "AdjustHandler", err)
		return
	}

	res, err := h.carbon.ApplyAdjustment(req.Context(), auth.IdentityFromContext(req.Context()), model.Adjustment{
		UserID:      request.UserID,
		Amount:      request.Amount,
		Type:        typeTnx,
		Reason:      request.Reason,
		Description: request.Description,
		Metadata:    request.Metadata,
	})
	if err != nil {
		h.fail(w, "AdjustHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Статистика
func (h *CarbonHandler) StatsHandler(w http.ResponseWriter, req *http.Request) {
	stats, err := h.carbon.ComputeStats(req.Context(), auth.IdentityFromContext(req.Context()))
	if err != nil {
		h.fail(w, "StatsHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// фильтр из query: type, limit
func txFilter(req *http.Request) (filter model.TxFilter, err error) {
	query := req.URL.Query()
	filter.Type, err = model.ParseTxType(query.Get("type"))
	if err != nil {
		return filter, err
	}
	filter.Limit, err = service.ParseLimit(query.Get("limit"))
	if err != nil {
		return filter, err
	}
	return filter, nil
}

// Транзакции всех пользователей
func (h *CarbonHandler) TransactionsHandler(w http.ResponseWriter, req *http.Request) {
	filter, err := txFilter(req)
	if err != nil {
		h.fail(w, "TransactionsHandler", err)
		return
	}
	filter.UserID = req.URL.Query().Get("userId")

	tnxs, err := h.carbon.ListTransactions(req.Context(), auth.IdentityFromContext(req.Context()), filter)
	if err != nil {
		h.fail(w, "TransactionsHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, tnxs)
}

// Сводка по пользователям
func (h *CarbonHandler) UsersHandler(w http.ResponseWriter, req *http.Request) {
	summaries, err := h.carbon.ListUserSummaries(req.Context(), auth.IdentityFromContext(req.Context()))
	if err != nil {
		h.fail(w, "UsersHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Баланс пользователя (админ)
func (h *CarbonHandler) UserBalanceHandler(w http.ResponseWriter, req *http.Request) {
	user := mux.Vars(req)["userId"]
	balance, err := h.carbon.GetBalance(req.Context(), auth.IdentityFromContext(req.Context()), user)
	if err != nil {
		h.fail(w, "UserBalanceHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// Свой баланс
func (h *CarbonHandler) BalanceHandler(w http.ResponseWriter, req *http.Request) {
	caller := auth.IdentityFromContext(req.Context())
	balance, err := h.carbon.GetBalance(req.Context(), caller, caller.UserID)
	if err != nil {
		h.fail(w, "BalanceHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// Свои транзакции
func (h *CarbonHandler) OwnTransactionsHandler(w http.ResponseWriter, req *http.Request) {
	filter, err := txFilter(req)
	if err != nil {
		h.fail(w, "OwnTransactionsHandler", err)
		return
	}
	tnxs, err := h.carbon.ListOwnTransactions(req.Context(), auth.IdentityFromContext(req.Context()), filter)
	if err != nil {
		h.fail(w, "OwnTransactionsHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, tnxs)
}

// Все правила начисления
func (h *CarbonHandler) GetRulesHandler(w http.ResponseWriter, req *http.Request) {
	rules, err := h.rules.ListRules(req.Context(), auth.IdentityFromContext(req.Context()))
	if err != nil {
		h.fail(w, "GetRulesHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

// Правило по активности
func (h *CarbonHandler) GetRuleHandler(w http.ResponseWriter, req *http.Request) {
	activity := mux.Vars(req)["activity"]
	rule, err := h.rules.GetRule(req.Context(), auth.IdentityFromContext(req.Context()), activity)
	if err != nil {
		h.fail(w, "GetRuleHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// Создать/обновить правило
func (h *CarbonHandler) SaveRuleHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxBody))
	if err != nil {
		h.fail(w, "SaveRuleHandler", fmt.Errorf("read body: %w", model.ErrValidation))
		return
	}
	defer req.Body.Close()

	rule := model.EarnRule{}
	err = json.Unmarshal(body, &rule)
	if err != nil {
		h.fail(w, "SaveRuleHandler", fmt.Errorf("body is not correct: %w", model.ErrValidation))
		return
	}
	rule, err = h.rules.SaveRule(req.Context(), auth.IdentityFromContext(req.Context()), rule)
	if err != nil {
		h.fail(w, "SaveRuleHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}
