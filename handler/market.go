package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"tokentrip-marketplace/market"
	"tokentrip-marketplace/txbuilder"
)

func Listings(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ls, err := service.Listings(ctx)
		respond(ctx, w, "listings", ls, err)
	}
}

func Listing(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		l, err := service.Listing(ctx, mux.Vars(r)["id"])
		respond(ctx, w, "listing", l, err)
	}
}

func Experience(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		n, err := service.NFT(ctx, mux.Vars(r)["id"])
		respond(ctx, w, "experience", n, err)
	}
}

func OwnedNFTs(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ns, err := service.OwnedNFTs(ctx, mux.Vars(r)["owner"])
		respond(ctx, w, "ownedNFTs", ns, err)
	}
}

func MyAssets(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		a, err := service.MyAssets(ctx, mux.Vars(r)["owner"])
		respond(ctx, w, "myAssets", a, err)
	}
}

func ListForSale(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.ListForSale
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.ListForSale(ctx, addr, req)
		submitted(ctx, w, "listForSale", out, err)
	}
}

func ListForResale(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.ListForResale
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.ListForResale(ctx, addr, req)
		submitted(ctx, w, "listForResale", out, err)
	}
}

func UpdateDescription(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.UpdateDescription
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.UpdateDescription(ctx, addr, req)
		submitted(ctx, w, "updateDescription", out, err)
	}
}

func Purchase(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		out, err := service.Purchase(ctx, addr, mux.Vars(r)["id"])
		submitted(ctx, w, "purchase", out, err)
	}
}

func Fractionalize(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.Fractionalize
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.Fractionalize(ctx, addr, req)
		submitted(ctx, w, "fractionalize", out, err)
	}
}

func TransferNFT(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.TransferNFT
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.TransferNFT(ctx, addr, req)
		submitted(ctx, w, "transferNFT", out, err)
	}
}

func MintExperience(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := admin(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.MintExperience
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.Mint(ctx, addr, req)
		submitted(ctx, w, "mintExperience", out, err)
	}
}

func MintTKT(service *market.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := admin(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.MintTKT
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.MintTKT(ctx, addr, req)
		submitted(ctx, w, "mintTKT", out, err)
	}
}
