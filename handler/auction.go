package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"tokentrip-marketplace/auction"
	"tokentrip-marketplace/txbuilder"
)

func Auctions(service *auction.Auctions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		as, err := service.List(ctx)
		respond(ctx, w, "auctions", as, err)
	}
}

func Auction(service *auction.Auctions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		a, err := service.Get(ctx, mux.Vars(r)["id"])
		respond(ctx, w, "auction", a, err)
	}
}

func CreateAuction(service *auction.Auctions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.CreateAuction
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.Create(ctx, addr, req)
		submitted(ctx, w, "createAuction", out, err)
	}
}

func PlaceBid(service *auction.Auctions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req auction.BidRequest
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.Bid(ctx, addr, mux.Vars(r)["id"], req.Amount)
		submitted(ctx, w, "placeBid", out, err)
	}
}

func SettleAuction(service *auction.Auctions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		out, err := service.Settle(ctx, addr, mux.Vars(r)["id"])
		submitted(ctx, w, "settleAuction", out, err)
	}
}
