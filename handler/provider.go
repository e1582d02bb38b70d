package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"tokentrip-marketplace/provider"
	"tokentrip-marketplace/txbuilder"
)

func ProviderPage(service *provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		p, err := service.Page(ctx, mux.Vars(r)["id"])
		respond(ctx, w, "providerPage", p, err)
	}
}

func Dashboard(service *provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		d, err := service.Dashboard(ctx, addr)
		respond(ctx, w, "dashboard", d, err)
	}
}

func RegisterProvider(service *provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.RegisterProvider
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.Register(ctx, addr, req)
		submitted(ctx, w, "registerProvider", out, err)
	}
}

func AddReview(service *provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req provider.ReviewRequest
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.Review(ctx, addr, mux.Vars(r)["id"], req)
		submitted(ctx, w, "addReview", out, err)
	}
}

func VIP(service *provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := admin(ctx, w)
		if !ok {
			return
		}
		var req provider.VIPRequest
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.VIP(ctx, addr, req)
		submitted(ctx, w, "vip", out, err)
	}
}
