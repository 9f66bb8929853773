package handler

import (
	"net/http"
	"strings"

	"github.com/Lutefd/frankfurter-service/internal/commons"
	"github.com/Lutefd/frankfurter-service/internal/logger"
	"github.com/Lutefd/frankfurter-service/internal/model"
	"github.com/Lutefd/frankfurter-service/internal/service"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

type CurrencyHandler struct {
	currencyService service.CurrencyServiceInterface
}

func NewCurrencyHandler(currencyService service.CurrencyServiceInterface) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
	}
}

type rateResponse struct {
	Base  string          `json:"base"`
	Quote string          `json:"quote"`
	Rate  decimal.Decimal `json:"rate"`
	Date  civil.Date      `json:"date"`
}

type conversionResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Result decimal.Decimal `json:"result"`
	Date   civil.Date      `json:"date"`
}

func (h *CurrencyHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(r.URL.Query().Get("base"))
	quote := strings.ToUpper(r.URL.Query().Get("quote"))

	if base == "" || quote == "" {
		commons.RespondWithError(w, http.StatusBadRequest, "missing required parameters")
		return
	}
	if !validCurrencyCode(base) || !validCurrencyCode(quote) {
		commons.RespondWithError(w, http.StatusBadRequest, "invalid currency code")
		return
	}
	date, ok := parseDate(w, r)
	if !ok {
		return
	}

	result, err := h.currencyService.Rate(r.Context(), base, quote, date)
	if err != nil {
		logger.Errorf("rate lookup %s/%s failed: %v", base, quote, err)
		commons.RespondWithError(w, http.StatusBadGateway, "failed to fetch exchange rates")
		return
	}

	switch res := result.(type) {
	case model.RateResult:
		commons.RespondWithJSON(w, http.StatusOK, rateResponse{
			Base:  base,
			Quote: quote,
			Rate:  res.Rate,
			Date:  res.Date,
		})
	case model.ErrorResult:
		respondWithErrorResult(w, res)
	default:
		commons.RespondWithError(w, http.StatusInternalServerError, "unexpected rate result")
	}
}

func (h *CurrencyHandler) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(r.URL.Query().Get("from"))
	to := strings.ToUpper(r.URL.Query().Get("to"))
	amountStr := r.URL.Query().Get("amount")

	if from == "" || to == "" || amountStr == "" {
		commons.RespondWithError(w, http.StatusBadRequest, "missing required parameters")
		return
	}
	if !validCurrencyCode(from) || !validCurrencyCode(to) {
		commons.RespondWithError(w, http.StatusBadRequest, "invalid currency code")
		return
	}
	amount, err := decimal.NewFromString(strings.Replace(amountStr, ",", ".", 1))
	if err != nil {
		commons.RespondWithError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	if amount.IsNegative() {
		commons.RespondWithError(w, http.StatusBadRequest, "amount must be non-negative")
		return
	}
	date, ok := parseDate(w, r)
	if !ok {
		return
	}

	result, err := h.currencyService.Convert(r.Context(), from, to, amount, date)
	if err != nil {
		logger.Errorf("conversion %s -> %s failed: %v", from, to, err)
		commons.RespondWithError(w, http.StatusBadGateway, "failed to fetch exchange rates")
		return
	}

	switch res := result.(type) {
	case model.ConversionResult:
		commons.RespondWithJSON(w, http.StatusOK, conversionResponse{
			From:   from,
			To:     to,
			Amount: amount,
			Result: res.Amount,
			Date:   res.Date,
		})
	case model.ErrorResult:
		respondWithErrorResult(w, res)
	default:
		commons.RespondWithError(w, http.StatusInternalServerError, "unexpected conversion result")
	}
}

func respondWithErrorResult(w http.ResponseWriter, res model.ErrorResult) {
	if res.IsNotFound() {
		commons.RespondWithError(w, http.StatusNotFound, res.Message)
		return
	}
	commons.RespondWithError(w, http.StatusBadRequest, res.Message)
}

func validCurrencyCode(code string) bool {
	return len(code) >= commons.MinimumCurrencyLength && len(code) <= commons.AllowedCurrencyLength
}

func parseDate(w http.ResponseWriter, r *http.Request) (*civil.Date, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return nil, true
	}
	date, err := civil.ParseDate(raw)
	if err != nil {
		commons.RespondWithError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return nil, false
	}
	return &date, true
}
