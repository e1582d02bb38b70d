package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"tokentrip-marketplace/codec"
	"tokentrip-marketplace/config"
	c "tokentrip-marketplace/context"
	"tokentrip-marketplace/logger"
	"tokentrip-marketplace/response"
	"tokentrip-marketplace/submit"
)

var validate = newValidator()

var suiAddressValidator validator.Func = func(fl validator.FieldLevel) bool {
	return codec.IsAddress(fl.Field().String())
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("sui_addr", suiAddressValidator); err != nil {
		panic(err)
	}
	return v
}

// decode reads a JSON body into req and validates it, answering the request
// itself when either step fails.
func decode(ctx context.Context, w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest("invalid request body", fmt.Sprintf("decode: error unmarshalling request body: %+v", err)).Send(ctx, w)
		return false
	}
	if err := validate.Struct(req); err != nil {
		response.InvalidData(err.Error()).Send(ctx, w)
		return false
	}
	return true
}

// wallet returns the connected wallet or answers 401.
func wallet(ctx context.Context, w http.ResponseWriter) (string, bool) {
	addr := c.Wallet(ctx)
	if addr == "" {
		response.WalletRequired().Send(ctx, w)
		return "", false
	}
	return addr, true
}

// admin is wallet plus the configured admin check. With no admin address
// configured the chain's capability check is the only gate.
func admin(ctx context.Context, w http.ResponseWriter) (string, bool) {
	addr, ok := wallet(ctx, w)
	if !ok {
		return "", false
	}
	want := viper.GetString(config.AdminAddress)
	if want == "" {
		return addr, true
	}
	if norm, err := codec.NormalizeAddress(want); err != nil || norm != addr {
		response.Forbidden().Send(ctx, w)
		return "", false
	}
	return addr, true
}

func fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	res := response.FromError(err)
	if res.StatusCode >= http.StatusInternalServerError {
		logger.Errorf(ctx, "%s: %+v", op, err)
	}
	res.Send(ctx, w)
}

func respond(ctx context.Context, w http.ResponseWriter, op string, data interface{}, err error) {
	if err != nil {
		fail(ctx, w, op, err)
		return
	}
	response.OK(w, data)
}

func submitted(ctx context.Context, w http.ResponseWriter, op string, out *submit.Outcome, err error) {
	if err != nil {
		fail(ctx, w, op, err)
		return
	}
	logger.Infof(ctx, "%s: submitted %s", op, out.Digest)
	response.OK(w, out)
}
