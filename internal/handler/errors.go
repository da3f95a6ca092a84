package handler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"dopc/internal/domain"
)

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	ErrorText     string   `json:"error,omitempty"` // application-level error message
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      "missing or invalid query parameters",
		ErrValidation:  vv,
	}
}

// ErrQuote maps a quote failure to its HTTP status.
func ErrQuote(err error) render.Renderer {
	resp := &ErrResponse{Err: err, ErrorText: err.Error()}
	var de *domain.Error
	if errors.As(err, &de) {
		resp.ErrorText = de.Message()
	}

	switch {
	case errors.Is(err, domain.ErrDeliveryNotPossible):
		resp.HTTPStatusCode = http.StatusBadRequest
		resp.StatusText = "Delivery not possible."
	case errors.Is(err, domain.ErrInvalidInput):
		resp.HTTPStatusCode = http.StatusBadRequest
		resp.StatusText = "Invalid request."
		resp.ErrorText = err.Error()
	case errors.Is(err, domain.ErrVenueNotFound):
		resp.HTTPStatusCode = http.StatusNotFound
		resp.StatusText = "Venue not found."
	case isTimeout(err):
		resp.HTTPStatusCode = http.StatusGatewayTimeout
		resp.StatusText = "Upstream timeout."
		resp.ErrorText = "venue api did not answer in time"
	case errors.Is(err, domain.ErrMalformedVenueData), errors.Is(err, domain.ErrUpstream):
		resp.HTTPStatusCode = http.StatusBadGateway
		resp.StatusText = "Venue data unavailable."
	default:
		resp.HTTPStatusCode = http.StatusInternalServerError
		resp.StatusText = "Internal server error."
		resp.ErrorText = "internal server error"
	}
	return resp
}

// outcome is the metrics label of a quote result.
// isTimeout covers both the request deadline and http.Client.Timeout, which
// surfaces as a net.Error rather than context.DeadlineExceeded.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrDeliveryNotPossible):
		return "delivery_not_possible"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrVenueNotFound):
		return "venue_not_found"
	default:
		return "upstream_error"
	}
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	return validate, trans
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf("%s", e.Translate(trans)))
	}
	return errs
}
